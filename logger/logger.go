package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Log
	File string `config:"file" default:"private/logs/serde.log"`
	// trace | debug | info | warn | error | fatal
	Level string `config:"level" default:"error"`
	// 30 day
	MaxAge int `config:"maxAge" default:"30"`
	// 128 MB
	MaxSize    int `config:"maxSize" default:"128"`
	MaxBackups int `config:"maxBackups" default:"32"`
}

type Logger struct {
	zerolog.Logger
	Writer io.Writer
}

func New(c *Config) *Logger {
	lumberjackLogger := lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
	}

	// async writer
	logWriter := &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(&lumberjackLogger),
		FlushInterval: time.Second,
	}

	log := zerolog.New(logWriter).
		Level(GetLogLevel(c.Level)).
		With().Timestamp().Logger()

	return &Logger{Logger: log, Writer: logWriter}
}

func NewConsole(c *Config) *Logger {
	logWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.Kitchen,
	}

	log := zerolog.New(logWriter).
		Level(GetLogLevel(c.Level)).
		With().Timestamp().Logger()

	return &Logger{Logger: log, Writer: os.Stdout}
}

func GetLogLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Sync flushes the buffered writer, if any.
func (l *Logger) Sync() error {
	if ws, ok := l.Writer.(*zapcore.BufferedWriteSyncer); ok {
		return ws.Stop()
	}
	return nil
}
