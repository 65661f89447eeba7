package registerv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connect-register/api/codec"
	v1 "connect-register/api/register/v1"

	"connectrpc.com/connect"
)

const (
	// RegistrationServiceName is the fully-qualified name of the RegistrationService service.
	RegistrationServiceName = "register.v1.RegistrationService"
)

const (
	RegistrationServiceRegisterProcedure = "/register.v1.RegistrationService/Register"
	RegistrationServiceGetUserProcedure  = "/register.v1.RegistrationService/GetUser"
)

// RegistrationServiceClient is a client for the register.v1.RegistrationService service.
type RegistrationServiceClient interface {
	Register(context.Context, *connect.Request[v1.RegisterRequest]) (*connect.Response[v1.RegisterResponse], error)
	GetUser(context.Context, *connect.Request[v1.GetUserRequest]) (*connect.Response[v1.GetUserResponse], error)
}

// NewRegistrationServiceClient 构造客户端，默认使用 JSON 编解码
func NewRegistrationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RegistrationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{codec.Option()}, opts...)
	return &registrationServiceClient{
		register: connect.NewClient[v1.RegisterRequest, v1.RegisterResponse](
			httpClient,
			baseURL+RegistrationServiceRegisterProcedure,
			connect.WithClientOptions(opts...),
		),
		getUser: connect.NewClient[v1.GetUserRequest, v1.GetUserResponse](
			httpClient,
			baseURL+RegistrationServiceGetUserProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

type registrationServiceClient struct {
	register *connect.Client[v1.RegisterRequest, v1.RegisterResponse]
	getUser  *connect.Client[v1.GetUserRequest, v1.GetUserResponse]
}

func (c *registrationServiceClient) Register(ctx context.Context, req *connect.Request[v1.RegisterRequest]) (*connect.Response[v1.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *registrationServiceClient) GetUser(ctx context.Context, req *connect.Request[v1.GetUserRequest]) (*connect.Response[v1.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

// RegistrationServiceHandler is an implementation of the register.v1.RegistrationService service.
type RegistrationServiceHandler interface {
	Register(context.Context, *connect.Request[v1.RegisterRequest]) (*connect.Response[v1.RegisterResponse], error)
	GetUser(context.Context, *connect.Request[v1.GetUserRequest]) (*connect.Response[v1.GetUserResponse], error)
}

// NewRegistrationServiceHandler 返回挂载路径与 handler
func NewRegistrationServiceHandler(svc RegistrationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{codec.Option()}, opts...)
	registerHandler := connect.NewUnaryHandler(
		RegistrationServiceRegisterProcedure,
		svc.Register,
		connect.WithHandlerOptions(opts...),
	)
	getUserHandler := connect.NewUnaryHandler(
		RegistrationServiceGetUserProcedure,
		svc.GetUser,
		connect.WithHandlerOptions(opts...),
	)
	return "/register.v1.RegistrationService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RegistrationServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case RegistrationServiceGetUserProcedure:
			getUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedRegistrationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRegistrationServiceHandler struct{}

func (UnimplementedRegistrationServiceHandler) Register(context.Context, *connect.Request[v1.RegisterRequest]) (*connect.Response[v1.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("register.v1.RegistrationService.Register is not implemented"))
}

func (UnimplementedRegistrationServiceHandler) GetUser(context.Context, *connect.Request[v1.GetUserRequest]) (*connect.Response[v1.GetUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("register.v1.RegistrationService.GetUser is not implemented"))
}
