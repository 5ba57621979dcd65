// Package logging builds the console logger and the progress reporter used
// by the CLI.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by New.
const (
	LevelQuiet  = "quiet"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns a console logger writing to w.
//
// The level names match those accepted by config.Validate: "quiet" keeps
// errors only, "debug" enables debug entries, and "normal" or "" logs info
// and above.
func New(level string, w io.Writer) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	var threshold zapcore.Level
	switch strings.ToLower(level) {
	case LevelQuiet:
		threshold = zapcore.ErrorLevel
	case LevelDebug:
		threshold = zapcore.DebugLevel
	default:
		threshold = zapcore.InfoLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), threshold)
	return zap.New(core).Named("md2pdf")
}

// Printf adapts l to printf-style callbacks (automaxprocs, chromedp).
func Printf(l *zap.Logger) func(format string, args ...any) {
	s := l.Sugar()
	return func(format string, args ...any) {
		s.Debugf(format, args...)
	}
}
