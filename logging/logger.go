// Package logging builds the application logger
// The terminal belongs to the screen, so output only ever goes to a file
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/stalker-eyes/config"
)

// ServiceName names the root logger
const ServiceName = "stalker-eyes"

// Logger is the application logger and its file sink
type Logger struct {
	*zap.Logger
	sink    *lumberjack.Logger
	restore func()
}

// New builds a JSON file logger, or a no-op logger when no file is configured
// Standard library log output follows the same sink
func New(cfg config.LoggerConfig) (*Logger, error) {
	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return &Logger{Logger: zap.NewNop(), restore: func() {}}, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	sink := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(sink), level)
	logger := zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named(ServiceName)

	return &Logger{
		Logger:  logger,
		sink:    sink,
		restore: zap.RedirectStdLog(logger),
	}, nil
}

// Close flushes buffered entries and releases the file
func (l *Logger) Close() error {
	_ = l.Sync()
	l.restore()
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}
