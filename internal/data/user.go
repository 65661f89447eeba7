package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"connect-register/internal/biz/model"
	"connect-register/internal/data/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pgUniqueViolation 是 PostgreSQL 唯一约束冲突的 SQLSTATE
const pgUniqueViolation = "23505"

// UserRepo 用户数据访问接口。查询未命中时返回 (nil, nil)。
type UserRepo interface {
	FindByNormalizedName(ctx context.Context, slug string) (*model.User, error)
	FindByEmailHash(ctx context.Context, emailHash string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// CreateUser 插入用户；唯一约束冲突时返回 *model.ConflictError
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
}

// userQuerier 是 models.Queries 中本仓库用到的方法
type userQuerier interface {
	GetUserBySlug(ctx context.Context, slug string) (models.User, error)
	GetUserByEmailHash(ctx context.Context, emailHash string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	CreateUser(ctx context.Context, arg models.CreateUserParams) (models.User, error)
}

type userRepo struct {
	queries userQuerier
	l       *zap.Logger
}

func NewUserRepo(data *Data, logger *zap.Logger) UserRepo {
	return &userRepo{
		queries: models.New(data.db),
		l:       logger,
	}
}

func (r *userRepo) FindByNormalizedName(ctx context.Context, slug string) (*model.User, error) {
	return r.find(r.queries.GetUserBySlug(ctx, slug))
}

func (r *userRepo) FindByEmailHash(ctx context.Context, emailHash string) (*model.User, error) {
	return r.find(r.queries.GetUserByEmailHash(ctx, emailHash))
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.find(r.queries.GetUserByID(ctx, id))
}

func (r *userRepo) find(dbUser models.User, err error) (*model.User, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return toUser(dbUser)
}

func (r *userRepo) CreateUser(ctx context.Context, req *model.User) (*model.User, error) {
	extra := req.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	extraJSON, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("encode user extra: %w", err)
	}

	dbUser, err := r.queries.CreateUser(ctx, models.CreateUserParams{
		Name:      req.Name,
		Slug:      req.Slug,
		Email:     req.Email,
		EmailHash: req.EmailHash,
		Password:  req.Password,
		Extra:     extraJSON,
	})
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			r.l.Info("User insert rejected by unique constraint",
				zap.String("field", conflict.Field),
				zap.String("slug", req.Slug),
			)
			return nil, conflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return toUser(dbUser)
}

// asConflict 将唯一约束冲突转换为 ConflictError，其它错误返回 nil
func asConflict(err error) *model.ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	field := "name"
	if pgErr.ConstraintName == "users_email_hash_key" {
		field = "email"
	}
	return &model.ConflictError{Field: field, Err: err}
}

func toUser(dbUser models.User) (*model.User, error) {
	extra := map[string]any{}
	if len(dbUser.Extra) > 0 {
		if err := json.Unmarshal(dbUser.Extra, &extra); err != nil {
			return nil, fmt.Errorf("decode user extra: %w", err)
		}
	}

	return &model.User{
		ID:        dbUser.ID,
		Name:      dbUser.Name,
		Slug:      dbUser.Slug,
		Email:     dbUser.Email,
		EmailHash: dbUser.EmailHash,
		Password:  dbUser.Password,
		Extra:     extra,
		JoinedAt:  dbUser.JoinedAt.Time,
	}, nil
}
