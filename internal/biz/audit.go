package biz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connect-register/internal/biz/model"
	"connect-register/internal/pkg/hook"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "connect-register/internal/biz"

// auditOrder 让审计拦截器位于 create_user 链路最外层
const auditOrder = -100

// registerAudit 在 create_user 上注册审计拦截器：记录注册数、耗时，并输出一条 otel 日志
func registerAudit(hooks *RegisterHooks, logger *zap.Logger) error {
	meter := otel.GetMeterProvider().Meter(instrumentationName)

	created, err := meter.Int64Counter(
		"users.created.count",
		metric.WithDescription("创建用户总数"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create user counter: %w", err)
	}
	failed, err := meter.Int64Counter(
		"users.create.error.count",
		metric.WithDescription("创建用户失败总数"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create user error counter: %w", err)
	}

	audit := func(ctx context.Context, in model.CreateUserInput, next hook.Action[model.CreateUserInput, *model.User]) (*model.User, error) {
		start := time.Now()
		user, err := next(ctx, in)
		if err != nil {
			failed.Add(ctx, 1, metric.WithAttributes(
				attribute.Bool("conflict", errors.Is(err, model.ErrUserAlreadyExists)),
			))
			logger.Warn("Create user failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
			return nil, err
		}

		if user == nil {
			return nil, nil
		}
		created.Add(ctx, 1)
		emitUserCreated(ctx, user)
		logger.Info("User created",
			zap.Int64("user_id", user.ID),
			zap.String("name", user.Name),
			zap.Duration("duration", time.Since(start)),
		)
		return user, nil
	}

	return hooks.CreateUser.Register(audit, auditOrder)
}

func emitUserCreated(ctx context.Context, user *model.User) {
	var rec otellog.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetSeverityText("INFO")
	rec.SetBody(otellog.StringValue("user created"))
	rec.AddAttributes(
		otellog.Int64("user.id", user.ID),
		otellog.String("user.slug", user.Slug),
		otellog.Int("user.extra.keys", len(user.Extra)),
	)
	global.Logger(instrumentationName).Emit(ctx, rec)
}
