// Package logging builds the zap logger used for saferenv's diagnostic
// output on stderr.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel sits below Debug for per-rule evaluation detail.
const TraceLevel = zapcore.Level(-2)

// MaxVerbosity is the highest accepted -v count.
const MaxVerbosity = 3

// LevelForVerbosity maps a -v count to a log level:
// 0 warn, 1 info, 2 debug, 3 trace.
func LevelForVerbosity(verbosity int) (zapcore.Level, error) {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel, nil
	case verbosity == 1:
		return zapcore.InfoLevel, nil
	case verbosity == 2:
		return zapcore.DebugLevel, nil
	case verbosity == MaxVerbosity:
		return TraceLevel, nil
	}
	return zapcore.WarnLevel, fmt.Errorf("verbosity level cannot be greater than %d (-vvv)", MaxVerbosity)
}

// New returns a console logger writing to w at the level selected by
// verbosity. Entries carry no timestamps.
func New(w io.Writer, verbosity int) (*zap.Logger, error) {
	level, err := LevelForVerbosity(verbosity)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoderCfg.EncodeLevel = encodeLevel

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("saferenv"), nil
}

// encodeLevel renders TraceLevel as TRACE; zap has no name for it.
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}
