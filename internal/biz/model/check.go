package model

import "context"

const (
	StatusReady     = "Ready"
	StatusUnhealthy = "Unhealthy"
)

// CheckUseCase 就绪检查用例接口
type CheckUseCase interface {
	Ready(ctx context.Context, req HealthCheckReq) (HealthCheckReply, error)
}

type (
	HealthCheckReq   struct{}
	HealthCheckReply struct {
		Status string
		// Details 在不健康时说明出错的组件；就绪时附带扩展点概况
		Details map[string]string
	}
)
