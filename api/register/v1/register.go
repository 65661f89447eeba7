// Package registerv1 定义 register.v1 的请求与响应消息。
package registerv1

// RegisterRequest 字段为指针，以区分"未提供"与"空字符串"
type RegisterRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type FieldError struct {
	// Field 为空表示根级错误
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type User struct {
	Id       int64          `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Email    string         `json:"email"`
	JoinedAt string         `json:"joined_at,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// RegisterResponse 要么只有 Errors，要么同时有 User 与 Token
type RegisterResponse struct {
	Errors         []*FieldError `json:"errors,omitempty"`
	User           *User         `json:"user,omitempty"`
	Token          string        `json:"token,omitempty"`
	TokenExpiresAt string        `json:"token_expires_at,omitempty"`
}

// GetUserRequest 提供 Token 时返回令牌所属用户；否则优先按 Id，再按 NameOrEmail 查询
type GetUserRequest struct {
	Id          int64  `json:"id,omitempty"`
	NameOrEmail string `json:"name_or_email,omitempty"`
	Token       string `json:"token,omitempty"`
}

type GetUserResponse struct {
	User *User `json:"user,omitempty"`
}

func (x *RegisterRequest) GetName() *string {
	if x != nil {
		return x.Name
	}
	return nil
}

func (x *RegisterRequest) GetEmail() *string {
	if x != nil {
		return x.Email
	}
	return nil
}

func (x *RegisterRequest) GetPassword() *string {
	if x != nil {
		return x.Password
	}
	return nil
}

func (x *GetUserRequest) GetId() int64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *GetUserRequest) GetNameOrEmail() string {
	if x != nil {
		return x.NameOrEmail
	}
	return ""
}

func (x *GetUserRequest) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}
