package log

import (
	"context"
	"fmt"

	confv1 "connect-register/internal/conf/v1"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Module 提供 *zap.Logger
var Module = fx.Module("log",
	fx.Provide(NewLogger),
)

// NewLogger 根据配置创建 zap 日志，并在应用停止时刷新缓冲
func NewLogger(lc fx.Lifecycle, conf *confv1.Bootstrap) (*zap.Logger, error) {
	logger, err := New(conf.Log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stdout 上的 Sync 在部分平台会返回 EINVAL，忽略
			_ = logger.Sync()
			return nil
		},
	})

	return logger, nil
}

// New 创建 zap 日志；format 为 console 时使用开发模式输出
func New(c *confv1.Log) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	format := "json"
	if c != nil {
		if c.Level != "" {
			if err := level.UnmarshalText([]byte(c.Level)); err != nil {
				return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
			}
		}
		if c.Format != "" {
			format = c.Format
		}
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
