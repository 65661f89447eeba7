package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrTokenNotFound 表示令牌不存在或已过期
var ErrTokenNotFound = errors.New("auth token not found")

// TokenRepo 记录已签发令牌（jti -> 用户 ID），过期时间与令牌一致
type TokenRepo interface {
	StoreToken(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	TokenUser(ctx context.Context, tokenID string) (int64, error)
}

// redisCmdable 是 TokenRepo 用到的 redis 命令子集
type redisCmdable interface {
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type tokenRepo struct {
	rdb redisCmdable
	l   *zap.Logger
}

func NewTokenRepo(data *Data, logger *zap.Logger) TokenRepo {
	return &tokenRepo{
		rdb: data.rdb,
		l:   logger,
	}
}

func tokenKey(tokenID string) string {
	return fmt.Sprintf("auth_token:%s", tokenID)
}

func (r *tokenRepo) StoreToken(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if err := r.rdb.SetEx(ctx, tokenKey(tokenID), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("store auth token: %w", err)
	}
	return nil
}

func (r *tokenRepo) TokenUser(ctx context.Context, tokenID string) (int64, error) {
	value, err := r.rdb.Get(ctx, tokenKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load auth token: %w", err)
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse auth token owner: %w", err)
	}
	return userID, nil
}
