package checkv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	v1 "connect-register/api/check/v1"
	"connect-register/api/codec"

	"connectrpc.com/connect"
)

const (
	// CheckServiceName is the fully-qualified name of the CheckService service.
	CheckServiceName = "check.v1.CheckService"
)

const (
	CheckServiceReadyProcedure = "/check.v1.CheckService/Ready"
)

// CheckServiceClient is a client for the check.v1.CheckService service.
type CheckServiceClient interface {
	Ready(context.Context, *connect.Request[v1.ReadyCheckReq]) (*connect.Response[v1.ReadyCheckReply], error)
}

func NewCheckServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CheckServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{codec.Option()}, opts...)
	return &checkServiceClient{
		ready: connect.NewClient[v1.ReadyCheckReq, v1.ReadyCheckReply](
			httpClient,
			baseURL+CheckServiceReadyProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

type checkServiceClient struct {
	ready *connect.Client[v1.ReadyCheckReq, v1.ReadyCheckReply]
}

func (c *checkServiceClient) Ready(ctx context.Context, req *connect.Request[v1.ReadyCheckReq]) (*connect.Response[v1.ReadyCheckReply], error) {
	return c.ready.CallUnary(ctx, req)
}

// CheckServiceHandler is an implementation of the check.v1.CheckService service.
type CheckServiceHandler interface {
	Ready(context.Context, *connect.Request[v1.ReadyCheckReq]) (*connect.Response[v1.ReadyCheckReply], error)
}

func NewCheckServiceHandler(svc CheckServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{codec.Option()}, opts...)
	readyHandler := connect.NewUnaryHandler(
		CheckServiceReadyProcedure,
		svc.Ready,
		connect.WithHandlerOptions(opts...),
	)
	return "/check.v1.CheckService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CheckServiceReadyProcedure:
			readyHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedCheckServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCheckServiceHandler struct{}

func (UnimplementedCheckServiceHandler) Ready(context.Context, *connect.Request[v1.ReadyCheckReq]) (*connect.Response[v1.ReadyCheckReply], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("check.v1.CheckService.Ready is not implemented"))
}
