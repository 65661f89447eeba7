package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "connect-register/api/check/v1"
	"connect-register/api/check/v1/checkv1connect"
	v1register "connect-register/api/register/v1"
	"connect-register/api/register/v1/registerv1connect"
	"connect-register/internal/biz/model"
	"connect-register/internal/pkg/validation"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockRegisterUseCase 是 RegisterUseCase 的模拟实现
type MockRegisterUseCase struct {
	mock.Mock
}

func (m *MockRegisterUseCase) Register(ctx context.Context, input model.RegisterInput) (*model.RegisterResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterResult), args.Error(1)
}

// MockUserLookupUseCase 是 UserLookupUseCase 的模拟实现
type MockUserLookupUseCase struct {
	mock.Mock
}

func (m *MockUserLookupUseCase) GetUser(ctx context.Context, id int64, nameOrEmail string) (*model.User, error) {
	args := m.Called(ctx, id, nameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserLookupUseCase) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCheckUseCase 是 CheckUseCase 的模拟实现
type MockCheckUseCase struct {
	mock.Mock
}

func (m *MockCheckUseCase) Ready(ctx context.Context, req model.HealthCheckReq) (model.HealthCheckReply, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.HealthCheckReply), args.Error(1)
}

func ptr(s string) *string {
	return &s
}

func testUser() *model.User {
	return &model.User{
		ID:       1,
		Name:     "bob",
		Slug:     "bob",
		Email:    "bob@example.com",
		Extra:    map[string]any{},
		JoinedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// RegistrationServiceTestSuite 是 RegistrationService 的测试套件
type RegistrationServiceTestSuite struct {
	suite.Suite
	registerUseCase *MockRegisterUseCase
	lookupUseCase   *MockUserLookupUseCase
	service         registerv1connect.RegistrationServiceHandler
}

func (suite *RegistrationServiceTestSuite) SetupTest() {
	suite.registerUseCase = new(MockRegisterUseCase)
	suite.lookupUseCase = new(MockUserLookupUseCase)
	suite.service = NewRegistrationService(suite.registerUseCase, suite.lookupUseCase, zap.NewNop())
}

func (suite *RegistrationServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := connect.NewRequest(&v1register.RegisterRequest{
		Name:     ptr("bob"),
		Email:    ptr("bob@example.com"),
		Password: ptr("secret123"),
	})

	expiresAt := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	suite.registerUseCase.On("Register", ctx, model.RegisterInput{
		"name":     "bob",
		"email":    "bob@example.com",
		"password": "secret123",
	}).Return(&model.RegisterResult{
		User:  testUser(),
		Token: &model.AuthToken{Token: "jwt.token.here", UserID: 1, ExpiresAt: expiresAt},
	}, nil)

	resp, err := suite.service.Register(ctx, req)

	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), resp)
	assert.Empty(suite.T(), resp.Msg.Errors)
	assert.Equal(suite.T(), int64(1), resp.Msg.User.Id)
	assert.Equal(suite.T(), "bob", resp.Msg.User.Name)
	assert.Equal(suite.T(), "2024-05-01T12:00:00Z", resp.Msg.User.JoinedAt)
	assert.Equal(suite.T(), "jwt.token.here", resp.Msg.Token)
	assert.Equal(suite.T(), "2024-05-02T12:00:00Z", resp.Msg.TokenExpiresAt)
}

func (suite *RegistrationServiceTestSuite) TestRegister_ValidationErrors() {
	ctx := context.Background()
	req := connect.NewRequest(&v1register.RegisterRequest{
		Name:  ptr(""),
		Email: ptr("bob@example.com"),
	})

	// 未提供的字段不能出现在输入中
	suite.registerUseCase.On("Register", ctx, model.RegisterInput{
		"name":  "",
		"email": "bob@example.com",
	}).Return(&model.RegisterResult{
		Errors: validation.ErrorsList{
			validation.NewFieldError("name", validation.CodeTooShort),
			validation.NewFieldError("password", validation.CodeRequired),
		},
	}, nil)

	resp, err := suite.service.Register(ctx, req)

	assert.NoError(suite.T(), err)
	require.Len(suite.T(), resp.Msg.Errors, 2)
	assert.Equal(suite.T(), "name", resp.Msg.Errors[0].Field)
	assert.Equal(suite.T(), validation.CodeTooShort, resp.Msg.Errors[0].Code)
	assert.Equal(suite.T(), "password is required", resp.Msg.Errors[1].Message)
	assert.Nil(suite.T(), resp.Msg.User)
	assert.Empty(suite.T(), resp.Msg.Token)
}

func (suite *RegistrationServiceTestSuite) TestRegister_Internal() {
	ctx := context.Background()
	req := connect.NewRequest(&v1register.RegisterRequest{Name: ptr("bob")})

	suite.registerUseCase.On("Register", ctx, model.RegisterInput{"name": "bob"}).Return(nil, errors.New("db down"))

	resp, err := suite.service.Register(ctx, req)

	assert.Nil(suite.T(), resp)
	assert.IsType(suite.T(), &connect.Error{}, err)
	assert.Equal(suite.T(), connect.CodeInternal, connect.CodeOf(err))
	// 内部错误细节不返回给客户端
	assert.NotContains(suite.T(), err.Error(), "db down")
}

func (suite *RegistrationServiceTestSuite) TestRegister_IncompleteResult() {
	tests := []struct {
		name   string
		result *model.RegisterResult
	}{
		{name: "nil", result: nil},
		{name: "empty", result: &model.RegisterResult{}},
		{name: "user without token", result: &model.RegisterResult{User: testUser()}},
		{name: "token without user", result: &model.RegisterResult{Token: &model.AuthToken{Token: "t"}}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			if tt.result == nil {
				suite.registerUseCase.On("Register", ctx, model.RegisterInput{"name": "bob"}).Return(nil, nil)
			} else {
				suite.registerUseCase.On("Register", ctx, model.RegisterInput{"name": "bob"}).Return(tt.result, nil)
			}

			var (
				resp *connect.Response[v1register.RegisterResponse]
				err  error
			)
			assert.NotPanics(suite.T(), func() {
				resp, err = suite.service.Register(ctx, connect.NewRequest(&v1register.RegisterRequest{Name: ptr("bob")}))
			})

			assert.Nil(suite.T(), resp)
			assert.Equal(suite.T(), connect.CodeInternal, connect.CodeOf(err))
		})
	}
}

func (suite *RegistrationServiceTestSuite) TestGetUser_Success() {
	ctx := context.Background()
	suite.lookupUseCase.On("GetUser", ctx, int64(0), "bob@example.com").Return(testUser(), nil)

	resp, err := suite.service.GetUser(ctx, connect.NewRequest(&v1register.GetUserRequest{NameOrEmail: "bob@example.com"}))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "bob", resp.Msg.User.Slug)
}

func (suite *RegistrationServiceTestSuite) TestGetUser_NotFound() {
	ctx := context.Background()
	suite.lookupUseCase.On("GetUser", ctx, int64(9), "").Return(nil, model.ErrUserNotFound)

	resp, err := suite.service.GetUser(ctx, connect.NewRequest(&v1register.GetUserRequest{Id: 9}))

	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), connect.CodeNotFound, connect.CodeOf(err))
}

func (suite *RegistrationServiceTestSuite) TestGetUser_InvalidArgument() {
	resp, err := suite.service.GetUser(context.Background(), connect.NewRequest(&v1register.GetUserRequest{}))

	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), connect.CodeInvalidArgument, connect.CodeOf(err))
	suite.lookupUseCase.AssertNotCalled(suite.T(), "GetUser", mock.Anything, mock.Anything, mock.Anything)
	suite.lookupUseCase.AssertNotCalled(suite.T(), "GetUserByToken", mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestGetUser_ByToken() {
	ctx := context.Background()
	suite.lookupUseCase.On("GetUserByToken", ctx, "jwt.token.here").Return(testUser(), nil)

	// 令牌优先于其他查询条件
	resp, err := suite.service.GetUser(ctx, connect.NewRequest(&v1register.GetUserRequest{
		Token: "jwt.token.here",
		Id:    9,
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), resp.Msg.User.Id)
	suite.lookupUseCase.AssertNotCalled(suite.T(), "GetUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegistrationServiceTestSuite) TestGetUser_TokenErrors() {
	tests := []struct {
		name     string
		err      error
		wantCode connect.Code
	}{
		{name: "invalid", err: fmt.Errorf("%w: token revoked or expired", model.ErrInvalidToken), wantCode: connect.CodeUnauthenticated},
		{name: "user gone", err: model.ErrUserNotFound, wantCode: connect.CodeNotFound},
		{name: "store down", err: errors.New("redis down"), wantCode: connect.CodeInternal},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			suite.lookupUseCase.On("GetUserByToken", ctx, "stale").Return(nil, tt.err)

			resp, err := suite.service.GetUser(ctx, connect.NewRequest(&v1register.GetUserRequest{Token: "stale"}))

			assert.Nil(suite.T(), resp)
			assert.Equal(suite.T(), tt.wantCode, connect.CodeOf(err))
			assert.NotContains(suite.T(), err.Error(), "redis down")
		})
	}
}

func (suite *RegistrationServiceTestSuite) TestGetUser_Internal() {
	ctx := context.Background()
	suite.lookupUseCase.On("GetUser", ctx, int64(3), "").Return(nil, errors.New("timeout"))

	_, err := suite.service.GetUser(ctx, connect.NewRequest(&v1register.GetUserRequest{Id: 3}))

	assert.Equal(suite.T(), connect.CodeInternal, connect.CodeOf(err))
}

// TestRegister_OverHTTP 通过真实的 connect 客户端与 JSON 编解码调用
func (suite *RegistrationServiceTestSuite) TestRegister_OverHTTP() {
	path, handler := registerv1connect.NewRegistrationServiceHandler(suite.service)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	suite.registerUseCase.On("Register", mock.Anything, model.RegisterInput{"name": "bob", "password": "secret123"}).
		Return(&model.RegisterResult{
			Errors: validation.ErrorsList{validation.NewFieldError("email", validation.CodeRequired)},
		}, nil)

	client := registerv1connect.NewRegistrationServiceClient(srv.Client(), srv.URL)
	resp, err := client.Register(context.Background(), connect.NewRequest(&v1register.RegisterRequest{
		Name:     ptr("bob"),
		Password: ptr("secret123"),
	}))

	require.NoError(suite.T(), err)
	require.Len(suite.T(), resp.Msg.Errors, 1)
	assert.Equal(suite.T(), "email", resp.Msg.Errors[0].Field)
	assert.Equal(suite.T(), validation.CodeRequired, resp.Msg.Errors[0].Code)
}

// CheckServiceTestSuite 是 CheckService 的测试套件
type CheckServiceTestSuite struct {
	suite.Suite
	checkUseCase *MockCheckUseCase
	checkService checkv1connect.CheckServiceHandler
}

func (suite *CheckServiceTestSuite) SetupTest() {
	suite.checkUseCase = new(MockCheckUseCase)
	suite.checkService = NewCheckService(suite.checkUseCase)
}

func (suite *CheckServiceTestSuite) TestReady_Success() {
	ctx := context.Background()
	req := &connect.Request[v1.ReadyCheckReq]{}

	expectedReply := model.HealthCheckReply{
		Status:  model.StatusReady,
		Details: map[string]string{"hook.register": "0"},
	}
	suite.checkUseCase.On("Ready", ctx, model.HealthCheckReq{}).Return(expectedReply, nil)

	resp, err := suite.checkService.Ready(ctx, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp)
	assert.Equal(suite.T(), model.StatusReady, resp.Msg.Status)
	assert.Equal(suite.T(), "0", resp.Msg.Details["hook.register"])
}

func (suite *CheckServiceTestSuite) TestReady_Error() {
	ctx := context.Background()
	req := &connect.Request[v1.ReadyCheckReq]{}

	expectedError := connect.NewError(connect.CodeUnavailable, errors.New("service unavailable"))
	suite.checkUseCase.On("Ready", ctx, model.HealthCheckReq{}).Return(model.HealthCheckReply{}, expectedError)

	resp, err := suite.checkService.Ready(ctx, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), expectedError, err)
}

func (suite *CheckServiceTestSuite) TestReady_OverHTTP() {
	path, handler := checkv1connect.NewCheckServiceHandler(suite.checkService)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	suite.checkUseCase.On("Ready", mock.Anything, model.HealthCheckReq{}).
		Return(model.HealthCheckReply{Status: model.StatusReady}, nil)

	client := checkv1connect.NewCheckServiceClient(srv.Client(), srv.URL)
	resp, err := client.Ready(context.Background(), connect.NewRequest(&v1.ReadyCheckReq{}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.StatusReady, resp.Msg.Status)
}

// 运行测试套件
func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}

func TestCheckServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckServiceTestSuite))
}

func TestNewRegistrationService(t *testing.T) {
	service := NewRegistrationService(new(MockRegisterUseCase), new(MockUserLookupUseCase), zap.NewNop())

	assert.NotNil(t, service)
	assert.IsType(t, &RegistrationService{}, service)
}

func TestNewCheckService(t *testing.T) {
	service := NewCheckService(new(MockCheckUseCase))

	assert.NotNil(t, service)
	assert.IsType(t, &CheckService{}, service)
}
