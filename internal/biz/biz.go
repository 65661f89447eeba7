package biz

import (
	"connect-register/internal/pkg/hook"

	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(hook.NewRegistry),
	fx.Provide(NewRegisterHooks),
	fx.Provide(NewSettings),
	fx.Provide(NewUserCreator),
	fx.Provide(NewTokenIssuer),
	fx.Provide(NewRegisterUseCase),
	fx.Provide(NewUserLookupUseCase),
	fx.Provide(NewCheckUseCase),
	fx.Invoke(registerAudit),
	fx.Invoke(freezeHooks),
)
