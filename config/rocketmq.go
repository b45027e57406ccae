package config

import "time"

// RocketMQConfig 领域事件投递, nameserver 为空时不投递
type RocketMQConfig struct {
	NameServer []string       `yaml:"nameserver"`
	Topic      string         `yaml:"topic"`
	Producer   EventsProducer `yaml:"producer"`
}

type EventsProducer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
	// Timeout 单条发送超时(秒)
	Timeout int `yaml:"timeout"`
}

func (r *RocketMQConfig) Enabled() bool {
	return r != nil && len(r.NameServer) > 0
}

func (r *RocketMQConfig) withDefaults() {
	if r.Topic == "" {
		r.Topic = "vidhub_events"
	}
	if r.Producer.Group == "" {
		r.Producer.Group = "vidhub_producer"
	}
	if r.Producer.Retry == 0 {
		r.Producer.Retry = 2
	}
	if r.Producer.Timeout == 0 {
		r.Producer.Timeout = 3
	}
}

func (r *RocketMQConfig) SendTimeout() time.Duration {
	return time.Duration(r.Producer.Timeout) * time.Second
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
