package logging

import (
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/env"
)

type Logger interface {
	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)

	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatalf(template string, args ...any)

	Sync() error
}

type LoggerConfig struct {
	FilePath string
	Level    string
	Console  bool
}

func NewDefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		FilePath: env.GetString("LOGGER_FILE_PATH", "./logs/scenario-tracker.log"),
		Level:    env.GetString("LOGGER_LEVEL", "info"),
		Console:  env.GetBool("LOGGER_CONSOLE", true),
	}
}

func NewLogger(cfg *LoggerConfig) Logger {
	return newZapLogger(cfg)
}
