package biz

import (
	"context"
	"errors"
	"fmt"

	"connect-register/internal/biz/model"
	"connect-register/internal/data"
	"connect-register/internal/pkg/validation"

	"go.uber.org/zap"
)

// RegisterUseCase 编排注册流程：构造 schema、结构校验、语义校验、创建用户、签发令牌。
// 每个阶段都通过扩展点调用，可被拦截或替换。
type RegisterUseCase struct {
	hooks    *RegisterHooks
	settings model.Settings
	lookup   UserLookup
	users    *UserCreator
	tokens   *TokenIssuer
	l        *zap.Logger
}

func NewRegisterUseCase(
	hooks *RegisterHooks,
	settings model.Settings,
	repo data.UserRepo,
	users *UserCreator,
	tokens *TokenIssuer,
	logger *zap.Logger,
) model.RegisterUseCase {
	return &RegisterUseCase{
		hooks:    hooks,
		settings: settings,
		lookup:   repo,
		users:    users,
		tokens:   tokens,
		l:        logger,
	}
}

// ErrIncompleteResult 表示扩展点返回了既无错误也无用户或令牌的结果
var ErrIncompleteResult = errors.New("incomplete registration result")

func (uc *RegisterUseCase) Register(ctx context.Context, input model.RegisterInput) (*model.RegisterResult, error) {
	result, err := uc.hooks.Register.CallAction(ctx, uc.register, input)
	if err != nil {
		return nil, err
	}
	if err := checkResult(result); err != nil {
		return nil, fmt.Errorf("hook %q: %w", HookRegister, err)
	}
	return result, nil
}

// checkResult 保证结果要么只有 Errors，要么同时有 User 与 Token
func checkResult(result *model.RegisterResult) error {
	switch {
	case result == nil:
		return fmt.Errorf("%w: nil result", ErrIncompleteResult)
	case result.Failed():
		if result.User != nil || result.Token != nil {
			return fmt.Errorf("%w: errors together with user", ErrIncompleteResult)
		}
	case result.User == nil || result.Token == nil:
		return fmt.Errorf("%w: missing user or token", ErrIncompleteResult)
	}
	return nil
}

func (uc *RegisterUseCase) register(ctx context.Context, input model.RegisterInput) (*model.RegisterResult, error) {
	schema, err := uc.hooks.InputModel.CallAction(ctx, buildSchema, uc.settings)
	if err != nil {
		return nil, fmt.Errorf("build register schema: %w", err)
	}

	cleaned, errs := validation.ValidateModel(schema, input)

	if len(cleaned) > 0 {
		out, err := uc.hooks.Input.CallAction(ctx, validateInput, ValidateInput{
			Data:       cleaned,
			Errors:     errs,
			Validators: uc.validators(),
		})
		if err != nil {
			return nil, fmt.Errorf("validate register input: %w", err)
		}
		cleaned, errs = out.Data, out.Errors
	}

	if len(errs) > 0 {
		uc.l.Debug("Registration rejected", zap.Strings("fields", errorFields(errs)))
		return &model.RegisterResult{Errors: errs}, nil
	}

	user, err := uc.hooks.RegisterUser.CallAction(ctx, uc.registerUser, cleaned)
	if err != nil {
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			uc.l.Info("Registration lost uniqueness race", zap.String("field", conflict.Field))
			return &model.RegisterResult{
				Errors: validation.ErrorsList{conflict.ValidationError()},
			}, nil
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("hook %q: %w: nil user", HookRegisterUser, ErrIncompleteResult)
	}

	token, err := uc.hooks.CreateUserToken.CallAction(ctx, uc.tokens.Create, user)
	if err != nil {
		return nil, fmt.Errorf("create user token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("hook %q: %w: nil token", HookCreateUserToken, ErrIncompleteResult)
	}

	uc.l.Info("User registered", zap.Int64("user_id", user.ID), zap.String("slug", user.Slug))
	return &model.RegisterResult{User: user, Token: token}, nil
}

// validators 返回默认的语义校验器；每个请求新建，拦截器可以安全地修改
func (uc *RegisterUseCase) validators() *validation.ValidatorSet {
	return validation.NewValidatorSet().
		Add("name", ValidateUsernameIsAvailable(uc.lookup)).
		Add("email", ValidateEmailIsAvailable(uc.lookup))
}

func (uc *RegisterUseCase) registerUser(ctx context.Context, data validation.CleanedData) (*model.User, error) {
	return uc.hooks.CreateUser.CallAction(ctx, uc.users.Create, model.CreateUserInput{
		Name:     data.String("name"),
		Email:    data.String("email"),
		Password: data.String("password"),
		Extra:    map[string]any{},
	})
}

func buildSchema(_ context.Context, s model.Settings) (validation.Schema, error) {
	return BuildRegisterSchema(s), nil
}

func validateInput(ctx context.Context, in ValidateInput) (ValidateInput, error) {
	errs, err := validation.ValidateData(ctx, in.Data, in.Validators, in.Errors)
	if err != nil {
		return ValidateInput{}, err
	}
	in.Errors = errs
	return in, nil
}

func errorFields(errs validation.ErrorsList) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}
