package data

import (
	"context"

	"connect-register/internal/biz/model"

	"connectrpc.com/connect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type checkRepo struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	l    *zap.Logger
}

// CheckRepo 检查用户存储与令牌存储是否可用
type CheckRepo interface {
	Ready(context.Context, model.HealthCheckReq) (model.HealthCheckReply, error)
}

func NewCheckRepo(pool *pgxpool.Pool, rdb *redis.Client,
	l *zap.Logger,
) CheckRepo {
	return &checkRepo{
		pool: pool,
		rdb:  rdb,
		l:    l,
	}
}

func (c checkRepo) Ready(ctx context.Context, _ model.HealthCheckReq) (model.HealthCheckReply, error) {
	if err := c.pool.Ping(ctx); err != nil {
		c.l.Warn("User store unavailable", zap.Error(err))
		return model.HealthCheckReply{
			Status: model.StatusUnhealthy,
			Details: map[string]string{
				"Components": "Postgres",
				"Message":    err.Error(),
			},
		}, connect.NewError(connect.CodeUnavailable, err)
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.l.Warn("Token store unavailable", zap.Error(err))
		return model.HealthCheckReply{
			Status: model.StatusUnhealthy,
			Details: map[string]string{
				"Components": "Redis",
				"Message":    err.Error(),
			},
		}, connect.NewError(connect.CodeUnavailable, err)
	}
	return model.HealthCheckReply{
		Status:  model.StatusReady,
		Details: nil,
	}, nil
}
