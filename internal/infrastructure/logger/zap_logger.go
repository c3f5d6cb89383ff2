package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vehicletax/internal/domain/ports"
)

// ZapLogger реализует интерфейс ports.Logger поверх zap.SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewZapLogger создает логгер с заданным уровнем ("debug", "info", ...) и кодировкой ("json" или "console").
// Нераспознанный уровень заменяется на info.
func NewZapLogger(level, encoding string) (ports.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	if encoding != "json" {
		encoding = "console"
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: logger.Sugar()}, nil
}

// NewZap оборачивает готовый *zap.Logger.
func NewZap(l *zap.Logger) ports.Logger {
	return &ZapLogger{logger: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// NewNop возвращает логгер, который ничего не выводит.
func NewNop() ports.Logger {
	return &ZapLogger{logger: zap.NewNop().Sugar()}
}

// Debug выводит отладочную информацию.
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debugf(msg, args...)
}

// Info выводит информационные сообщения.
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.logger.Infof(msg, args...)
}

// Warn выводит предупреждения.
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warnf(msg, args...)
}

// Error выводит ошибки.
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.logger.Errorf(msg, args...)
}

// Fatal выводит критические ошибки и завершает программу.
func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.logger.Fatalf(msg, args...)
}

// Printf форматированный вывод (для совместимости).
func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Sync сбрасывает буферы логгера.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
