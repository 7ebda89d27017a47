package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options - настройки логгера процесса
type Options struct {
	// Name - имя бинарника (api, placesctl), попадает в поле logger
	Name string
	// Level - debug, info, warn, error. Неизвестное значение = info
	Level string
	// Output - stdout по умолчанию. CLI пишет в stderr: stdout занят результатом
	Output string
}

// New собирает zap логгер: JSON в production, цветной console на уровне debug
func New(opts Options) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if zapLevel == zapcore.DebugLevel {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	if opts.Name != "" {
		log = log.Named(opts.Name)
	}
	return log, nil
}
