package biz

import (
	"context"
	"strings"

	"connect-register/internal/biz/model"
	"connect-register/internal/data"
)

// TokenVerifier 校验注册时签发的令牌并返回用户 ID
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

type UserLookupUseCase struct {
	lookup UserLookup
	tokens TokenVerifier
}

func NewUserLookupUseCase(repo data.UserRepo, tokens *TokenIssuer) model.UserLookupUseCase {
	return &UserLookupUseCase{lookup: repo, tokens: tokens}
}

// GetUser 按 ID 查询；ID 为 0 时按用户名或邮箱（含 @）查询
func (uc *UserLookupUseCase) GetUser(ctx context.Context, id int64, nameOrEmail string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case id != 0:
		user, err = uc.lookup.FindByID(ctx, id)
	case strings.Contains(nameOrEmail, "@"):
		user, err = uc.lookup.FindByEmailHash(ctx, EmailHash(nameOrEmail))
	case strings.TrimSpace(nameOrEmail) != "":
		user, err = uc.lookup.FindByNormalizedName(ctx, Slugify(nameOrEmail))
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// GetUserByToken 返回令牌所属的用户。令牌无效时返回 ErrInvalidToken。
func (uc *UserLookupUseCase) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}
	userID, err := uc.tokens.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return uc.GetUser(ctx, userID, "")
}
