package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes diagnostics to stderr. Normal operation only shows warnings
// and errors; verbose mode adds debug messages.
type Logger struct {
	z     *zap.Logger
	s     *zap.SugaredLogger
	level zap.AtomicLevel
}

var std = New(os.Stderr, false)

// Default returns the standard logger used by the package-level output functions.
func Default() *Logger { return std }

func New(out io.Writer, verbose bool) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(out)), level)

	return newLogger(zap.New(core).Named("gocut"), level)
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return newLogger(zap.NewNop(), zap.NewAtomicLevelAt(zapcore.FatalLevel))
}

func newLogger(z *zap.Logger, level zap.AtomicLevel) *Logger {
	return &Logger{z: z, s: z.Sugar(), level: level}
}

// SetVerbose toggles debug messages.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.WarnLevel)
	}
}

// With returns a child logger that adds fields to every message. Children
// share the parent's level.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return newLogger(l.z.With(fields...), l.level)
}

func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.z.Debug(msg, fields...)
}

// Debugf is handled in the manner of [fmt.Sprintf] at debug level.
func (l *Logger) Debugf(format string, v ...any) {
	l.s.Debugf(format, v...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, v ...any) {
	l.s.Warnf(format, v...)
}

// These functions write to the standard logger.

func Debugf(format string, v ...any) {
	std.Debugf(format, v...)
}

func Warnf(format string, v ...any) {
	std.Warnf(format, v...)
}
