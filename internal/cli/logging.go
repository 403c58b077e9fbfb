package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes structured run logs to w. Warnings and errors are always
// shown; info level is enabled by verbose.
func newLogger(w io.Writer, jsonOutput, verbose bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	level := zapcore.WarnLevel
	if verbose || jsonOutput {
		level = zapcore.InfoLevel
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}
