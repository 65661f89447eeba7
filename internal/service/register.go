package service

import (
	"context"
	"errors"
	"time"

	v1 "connect-register/api/register/v1"
	"connect-register/api/register/v1/registerv1connect"
	"connect-register/internal/biz/model"
	"connect-register/internal/pkg/validation"

	"connectrpc.com/connect"
	"go.uber.org/zap"
)

// RegistrationService 实现 Connect 服务
type RegistrationService struct {
	register model.RegisterUseCase
	lookup   model.UserLookupUseCase
	l        *zap.Logger
}

// 显式接口检查
var _ registerv1connect.RegistrationServiceHandler = (*RegistrationService)(nil)

func NewRegistrationService(
	register model.RegisterUseCase,
	lookup model.UserLookupUseCase,
	logger *zap.Logger,
) registerv1connect.RegistrationServiceHandler {
	return &RegistrationService{
		register: register,
		lookup:   lookup,
		l:        logger,
	}
}

// Register 校验错误作为正常响应返回；只有流程本身失败才返回 connect 错误
func (s *RegistrationService) Register(ctx context.Context, req *connect.Request[v1.RegisterRequest]) (*connect.Response[v1.RegisterResponse], error) {
	result, err := s.register.Register(ctx, toRegisterInput(req.Msg))
	if err != nil {
		s.l.Error("Registration failed", zap.Error(err))
		return nil, connect.NewError(connect.CodeInternal, errors.New("registration failed"))
	}

	if result == nil || (!result.Failed() && (result.User == nil || result.Token == nil)) {
		s.l.Error("Registration returned incomplete result")
		return nil, connect.NewError(connect.CodeInternal, errors.New("registration failed"))
	}

	if result.Failed() {
		return connect.NewResponse(&v1.RegisterResponse{
			Errors: toFieldErrors(result.Errors),
		}), nil
	}

	return connect.NewResponse(&v1.RegisterResponse{
		User:           toUser(result.User),
		Token:          result.Token.Token,
		TokenExpiresAt: result.Token.ExpiresAt.UTC().Format(time.RFC3339),
	}), nil
}

func (s *RegistrationService) GetUser(ctx context.Context, req *connect.Request[v1.GetUserRequest]) (*connect.Response[v1.GetUserResponse], error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case req.Msg.GetToken() != "":
		user, err = s.lookup.GetUserByToken(ctx, req.Msg.GetToken())
		if errors.Is(err, model.ErrInvalidToken) {
			s.l.Debug("Rejected user token", zap.Error(err))
			return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("invalid token"))
		}
	case req.Msg.GetId() != 0 || req.Msg.GetNameOrEmail() != "":
		user, err = s.lookup.GetUser(ctx, req.Msg.GetId(), req.Msg.GetNameOrEmail())
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("token, id or name_or_email is required"))
	}

	if errors.Is(err, model.ErrUserNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		s.l.Error("Get user failed", zap.Error(err))
		return nil, connect.NewError(connect.CodeInternal, errors.New("get user failed"))
	}

	return connect.NewResponse(&v1.GetUserResponse{User: toUser(user)}), nil
}

// toRegisterInput 只放入客户端实际提供的字段
func toRegisterInput(msg *v1.RegisterRequest) model.RegisterInput {
	input := model.RegisterInput{}
	if v := msg.GetName(); v != nil {
		input["name"] = *v
	}
	if v := msg.GetEmail(); v != nil {
		input["email"] = *v
	}
	if v := msg.GetPassword(); v != nil {
		input["password"] = *v
	}
	return input
}

func toFieldErrors(errs validation.ErrorsList) []*v1.FieldError {
	out := make([]*v1.FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, &v1.FieldError{
			Field:   e.Field,
			Code:    e.Code,
			Message: e.Message,
		})
	}
	return out
}

func toUser(u *model.User) *v1.User {
	if u == nil {
		return nil
	}
	user := &v1.User{
		Id:    u.ID,
		Name:  u.Name,
		Slug:  u.Slug,
		Email: u.Email,
		Extra: u.Extra,
	}
	if !u.JoinedAt.IsZero() {
		user.JoinedAt = u.JoinedAt.UTC().Format(time.RFC3339)
	}
	return user
}
