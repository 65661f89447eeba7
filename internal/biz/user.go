package biz

import (
	"context"
	"fmt"
	"strings"

	"connect-register/internal/biz/model"
	conf "connect-register/internal/conf/v1"
	"connect-register/internal/data"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserCreator 负责把已校验的注册数据写入用户存储
type UserCreator struct {
	repo data.UserRepo
	cost int
	l    *zap.Logger
}

func NewUserCreator(repo data.UserRepo, cfg *conf.Bootstrap, logger *zap.Logger) *UserCreator {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = int(cfg.Auth.BcryptCost)
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &UserCreator{repo: repo, cost: cost, l: logger}
}

// Create 创建用户。唯一约束冲突时返回 *model.ConflictError。
func (c *UserCreator) Create(ctx context.Context, in model.CreateUserInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), c.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	extra := in.Extra
	if extra == nil {
		extra = map[string]any{}
	}

	user, err := c.repo.CreateUser(ctx, &model.User{
		Name:      name,
		Slug:      Slugify(name),
		Email:     email,
		EmailHash: EmailHash(email),
		Password:  string(hashed),
		Extra:     extra,
	})
	if err != nil {
		return nil, err
	}

	c.l.Debug("User row inserted", zap.Int64("user_id", user.ID), zap.String("slug", user.Slug))
	return user, nil
}
