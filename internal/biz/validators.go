package biz

import (
	"context"
	"fmt"

	"connect-register/internal/biz/model"
	"connect-register/internal/pkg/validation"
)

// UserLookup 是唯一性校验与用户查询依赖的只读接口。未命中返回 (nil, nil)。
type UserLookup interface {
	FindByNormalizedName(ctx context.Context, slug string) (*model.User, error)
	FindByEmailHash(ctx context.Context, emailHash string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// ValidateUsernameIsAvailable 检查用户名（规范化后）是否已被占用
func ValidateUsernameIsAvailable(lookup UserLookup) validation.Validator {
	return func(ctx context.Context, value any, _ validation.CleanedData) error {
		name, _ := value.(string)
		user, err := lookup.FindByNormalizedName(ctx, Slugify(name))
		if err != nil {
			return fmt.Errorf("check name availability: %w", err)
		}
		if user != nil {
			return validation.NewError(validation.CodeNameNotAvailable, "")
		}
		return nil
	}
}

// ValidateEmailIsAvailable 检查邮箱（按哈希）是否已被占用
func ValidateEmailIsAvailable(lookup UserLookup) validation.Validator {
	return func(ctx context.Context, value any, _ validation.CleanedData) error {
		email, _ := value.(string)
		user, err := lookup.FindByEmailHash(ctx, EmailHash(email))
		if err != nil {
			return fmt.Errorf("check email availability: %w", err)
		}
		if user != nil {
			return validation.NewError(validation.CodeEmailNotAvailable, "")
		}
		return nil
	}
}
