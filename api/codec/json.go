// Package codec 提供 connect 使用的 JSON 编解码器。
// API 消息是普通 Go 结构体，不依赖 protobuf 反射。
package codec

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Name 与 connect 内置的 JSON 编解码器同名，替换后 application/json 请求由它处理
const Name = "json"

var _ connect.Codec = JSON{}

type JSON struct{}

func (JSON) Name() string {
	return Name
}

func (JSON) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, msg any) error {
	// connect 对空请求体也会调用 Unmarshal
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

// Option 返回同时适用于客户端与服务端的 connect 选项
func Option() connect.Option {
	return connect.WithCodec(JSON{})
}
