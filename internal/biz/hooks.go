package biz

import (
	"context"
	"fmt"

	"connect-register/internal/biz/model"
	"connect-register/internal/pkg/hook"
	"connect-register/internal/pkg/validation"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// 注册流程的扩展点名称
const (
	HookRegister           = "register"
	HookRegisterInputModel = "register_input_model"
	HookRegisterInput      = "register_input"
	HookRegisterUser       = "register_user"
	HookCreateUser         = "create_user"
	HookCreateUserToken    = "create_user_token"
)

// ValidateInput 是 register_input 扩展点的参数，也是其返回值。
// 拦截器可以追加校验器、改写数据或在默认校验之后补充错误。
type ValidateInput struct {
	Data       validation.CleanedData
	Errors     validation.ErrorsList
	Validators *validation.ValidatorSet
}

// RegisterHooks 是注册流程用到的全部扩展点
type RegisterHooks struct {
	Register        *hook.Point[model.RegisterInput, *model.RegisterResult]
	InputModel      *hook.Point[model.Settings, validation.Schema]
	Input           *hook.Point[ValidateInput, ValidateInput]
	RegisterUser    *hook.Point[validation.CleanedData, *model.User]
	CreateUser      *hook.Point[model.CreateUserInput, *model.User]
	CreateUserToken *hook.Point[*model.User, *model.AuthToken]
}

func NewRegisterHooks(r *hook.Registry) (*RegisterHooks, error) {
	var (
		h   RegisterHooks
		err error
	)
	if h.Register, err = hook.Define[model.RegisterInput, *model.RegisterResult](r, HookRegister); err != nil {
		return nil, err
	}
	if h.InputModel, err = hook.Define[model.Settings, validation.Schema](r, HookRegisterInputModel); err != nil {
		return nil, err
	}
	if h.Input, err = hook.Define[ValidateInput, ValidateInput](r, HookRegisterInput); err != nil {
		return nil, err
	}
	if h.RegisterUser, err = hook.Define[validation.CleanedData, *model.User](r, HookRegisterUser); err != nil {
		return nil, err
	}
	if h.CreateUser, err = hook.Define[model.CreateUserInput, *model.User](r, HookCreateUser); err != nil {
		return nil, err
	}
	if h.CreateUserToken, err = hook.Define[*model.User, *model.AuthToken](r, HookCreateUserToken); err != nil {
		return nil, err
	}
	return &h, nil
}

// freezeHooks 在启动时冻结扩展点，之后的注册都会失败
func freezeHooks(lc fx.Lifecycle, r *hook.Registry, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			r.Freeze()
			for _, name := range r.Names() {
				logger.Info("Hook point ready",
					zap.String("hook", name),
					zap.Int("interceptors", r.Counts()[name]),
				)
			}
			return nil
		},
	})
}

// hookDetails 返回各扩展点的拦截器数量，用于就绪检查
func hookDetails(r *hook.Registry) map[string]string {
	counts := r.Counts()
	details := make(map[string]string, len(counts))
	for name, n := range counts {
		details["hook."+name] = fmt.Sprint(n)
	}
	return details
}
