package log

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const projectName = "Vidhub"

var (
	L     *zap.Logger
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeCaller = trimCaller
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)
	L = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// SetDebug 打开 debug 日志(流中断等)
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}
}

// trimCaller 调用位置从项目目录开始
func trimCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	if i := strings.Index(caller.File, projectName+"/"); i != -1 {
		enc.AppendString(caller.File[i:] + ":" + strconv.Itoa(caller.Line))
		return
	}
	enc.AppendString(caller.TrimmedPath())
}
