package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var zapLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

type zapLogger struct {
	cfg    *LoggerConfig
	logger *zap.SugaredLogger
}

func newZapLogger(cfg *LoggerConfig) *zapLogger {
	level, ok := zapLevelMap[cfg.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    10, // megabytes
		MaxAge:     30, // days
		MaxBackups: 5,
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileWriter, level),
	}

	if cfg.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).Sugar()

	return &zapLogger{
		cfg:    cfg,
		logger: logger,
	}
}

func (l *zapLogger) withExtra(cat Category, sub SubCategory, extra map[ExtraKey]any) []any {
	params := logParamsToZapParams(extra)
	params = append(params, "Category", string(cat), "SubCategory", string(sub))
	return params
}

func (l *zapLogger) Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Debugw(msg, l.withExtra(cat, sub, extra)...)
}

func (l *zapLogger) Debugf(template string, args ...any) {
	l.logger.Debugf(template, args...)
}

func (l *zapLogger) Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Infow(msg, l.withExtra(cat, sub, extra)...)
}

func (l *zapLogger) Infof(template string, args ...any) {
	l.logger.Infof(template, args...)
}

func (l *zapLogger) Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Warnw(msg, l.withExtra(cat, sub, extra)...)
}

func (l *zapLogger) Warnf(template string, args ...any) {
	l.logger.Warnf(template, args...)
}

func (l *zapLogger) Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Errorw(msg, l.withExtra(cat, sub, extra)...)
}

func (l *zapLogger) Errorf(template string, args ...any) {
	l.logger.Errorf(template, args...)
}

func (l *zapLogger) Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Fatalw(msg, l.withExtra(cat, sub, extra)...)
}

func (l *zapLogger) Fatalf(template string, args ...any) {
	l.logger.Fatalf(template, args...)
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}
