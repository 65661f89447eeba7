package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connect-register/internal/pkg/validation"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid token")
)

// User 业务层用户模型
type User struct {
	ID        int64
	Name      string
	Slug      string
	Email     string
	EmailHash string
	// Password 为 bcrypt 哈希
	Password string
	Extra    map[string]any
	JoinedAt time.Time
}

// AuthToken 认证令牌，绑定已持久化的用户
type AuthToken struct {
	Token     string
	ID        string
	UserID    int64
	ExpiresAt time.Time
}

// Settings 是注册约束的运行时配置
type Settings struct {
	UsernameMinLength    int
	UsernameMaxLength    int
	PasswordMinLength    int
	PasswordMaxLength    int
	PasswordAllowNumeric bool
}

// RegisterInput 为客户端原始输入；缺失的键与空字符串含义不同
type RegisterInput map[string]any

// RegisterResult 要么只有 Errors，要么同时有 User 和 Token
type RegisterResult struct {
	Errors validation.ErrorsList
	User   *User
	Token  *AuthToken
}

func (r *RegisterResult) Failed() bool {
	return len(r.Errors) > 0
}

// CreateUserInput 是创建用户的参数；Extra 可由扩展点填充
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Extra    map[string]any
}

// ConflictError 表示存储层唯一约束冲突（校验通过后的并发注册）
type ConflictError struct {
	// Field 为冲突字段：name 或 email
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user %s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrUserAlreadyExists
}

// ValidationError 将冲突转换为与语义校验一致的错误码
func (e *ConflictError) ValidationError() validation.Error {
	code := validation.CodeNameNotAvailable
	if e.Field == "email" {
		code = validation.CodeEmailNotAvailable
	}
	return validation.NewFieldError(e.Field, code)
}

// RegisterUseCase 注册用例接口
type RegisterUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
}

// UserLookupUseCase 用户查询用例接口
type UserLookupUseCase interface {
	GetUser(ctx context.Context, id int64, nameOrEmail string) (*User, error)
	GetUserByToken(ctx context.Context, token string) (*User, error)
}
