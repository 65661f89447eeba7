package biz

import (
	"context"

	"connect-register/internal/biz/model"
	"connect-register/internal/data"
	"connect-register/internal/pkg/hook"
)

type CheckUseCase struct {
	repo  data.CheckRepo
	hooks *hook.Registry
}

func NewCheckUseCase(repo data.CheckRepo, hooks *hook.Registry) (model.CheckUseCase, error) {
	return &CheckUseCase{
		repo:  repo,
		hooks: hooks,
	}, nil
}

func (c CheckUseCase) Ready(ctx context.Context, req model.HealthCheckReq) (model.HealthCheckReply, error) {
	reply, err := c.repo.Ready(ctx, req)
	if err != nil {
		return reply, err
	}
	// 就绪时附带扩展点概况，便于确认插件是否已加载
	details := hookDetails(c.hooks)
	for k, v := range reply.Details {
		details[k] = v
	}
	return model.HealthCheckReply{
		Status:  reply.Status,
		Details: details,
	}, nil
}
