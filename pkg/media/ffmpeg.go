package media

import (
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	ThumbnailAt   = "1"
	ThumbnailSize = "1280x720"
)

// Prober 读取视频时长并截取封面
type Prober interface {
	// Duration 返回四舍五入后的秒数
	Duration(path string) (int64, error)
	// Thumbnail 截取第 1 秒的画面写入 out
	Thumbnail(path, out string) error
}

type FFmpegProber struct{}

func NewProber() Prober {
	return &FFmpegProber{}
}

func (p *FFmpegProber) Duration(path string) (int64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	return parseDuration(out)
}

// parseDuration 读取 ffprobe JSON 中的 format.duration, ffprobe 以字符串输出
func parseDuration(probe string) (int64, error) {
	d := gjson.Get(probe, "format.duration")
	var seconds float64
	switch d.Type {
	case gjson.Number:
		seconds = d.Num
	case gjson.String:
		v, err := strconv.ParseFloat(d.Str, 64)
		if err != nil {
			return 0, errors.Errorf("ffprobe: invalid duration %q", d.Str)
		}
		seconds = v
	default:
		return 0, errors.New("ffprobe: duration missing")
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, errors.Errorf("ffprobe: invalid duration %v", seconds)
	}
	return int64(math.Round(seconds)), nil
}

func (p *FFmpegProber) Thumbnail(path, out string) error {
	if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return errors.WithMessage(err, "Failed to create folders")
	}
	err := ffmpeg.Input(path, ffmpeg.KwArgs{"ss": ThumbnailAt}).
		Output(out, ffmpeg.KwArgs{
			"vframes": "1",
			"s":       ThumbnailSize,
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return errors.WithMessage(err, "Failed to generate the thumbnail")
	}
	return nil
}
