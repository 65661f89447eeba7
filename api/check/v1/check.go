// Package checkv1 定义 check.v1 的请求与响应消息。
package checkv1

type ReadyCheckReq struct{}

type ReadyCheckReply struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}
