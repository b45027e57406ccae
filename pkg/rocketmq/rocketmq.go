package rocketmq

import (
	"Vidhub/config"
	"Vidhub/pkg/log"
	"context"
	"encoding/json"
	"time"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

const (
	TagVideoCreated   = "video.created"
	TagVideoDeleted   = "video.deleted"
	TagAccountDeleted = "account.deleted"
)

func init() {
	rlog.SetLogLevel("error")
}

// Event 领域事件
type Event struct {
	Type      string    `json:"type"`
	UserID    uint64    `json:"user_id"`
	VideoID   uint64    `json:"video_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher 事件投递, 在数据库提交之后调用, 失败只记日志
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// NewPublisher 未配置 nameserver 时返回空实现
func NewPublisher(cfg *config.RocketMQConfig) Publisher {
	if !cfg.Enabled() {
		return NoopPublisher{}
	}
	p, err := InitProducer(cfg)
	if err != nil {
		log.L.Error("init producer failed, events disabled", zap.Error(err))
		return NoopPublisher{}
	}
	return &Rocketmq{RocketmqProducer: p, Topic: cfg.Topic, Timeout: cfg.SendTimeout()}
}

func InitProducer(cfg *config.RocketMQConfig) (rocketmq.Producer, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
		producer.WithSendMsgTimeout(cfg.SendTimeout()),
	)
	if err != nil {
		return nil, err
	}
	if err = p.Start(); err != nil {
		return nil, err
	}
	log.L.Info("init producer success")
	return p, nil
}

type Rocketmq struct {
	RocketmqProducer rocketmq.Producer
	Topic            string
	Timeout          time.Duration
}

func (p *Rocketmq) Publish(ctx context.Context, ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.L.Error("marshal event", zap.Error(err))
		return
	}
	// 请求可能已结束, 不沿用其取消信号
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
	defer cancel()
	if err := p.SendMsg(sendCtx, ev.Type, body); err != nil {
		log.L.Warn("publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func (p *Rocketmq) SendMsg(ctx context.Context, tag string, body []byte) error {
	msg := primitive.NewMessage(p.Topic, body).WithTag(tag)

	// 发送同步消息
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("msg_id", res.MsgID))
	return nil
}

func (p *Rocketmq) Shutdown() error {
	return p.RocketmqProducer.Shutdown()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}
