package biz

import (
	"connect-register/internal/biz/model"
	conf "connect-register/internal/conf/v1"
	"connect-register/internal/pkg/validation"
)

const emailMaxLength = 255

// DefaultSettings 返回默认注册约束
func DefaultSettings() model.Settings {
	return model.Settings{
		UsernameMinLength:    3,
		UsernameMaxLength:    14,
		PasswordMinLength:    7,
		PasswordMaxLength:    40,
		PasswordAllowNumeric: false,
	}
}

// NewSettings 从配置读取注册约束，未配置的项使用默认值
func NewSettings(cfg *conf.Bootstrap) model.Settings {
	s := DefaultSettings()
	if cfg == nil || cfg.Users == nil {
		return s
	}
	u := cfg.Users
	if u.UsernameMinLength > 0 {
		s.UsernameMinLength = int(u.UsernameMinLength)
	}
	if u.UsernameMaxLength > 0 {
		s.UsernameMaxLength = int(u.UsernameMaxLength)
	}
	if u.PasswordMinLength > 0 {
		s.PasswordMinLength = int(u.PasswordMinLength)
	}
	if u.PasswordMaxLength > 0 {
		s.PasswordMaxLength = int(u.PasswordMaxLength)
	}
	s.PasswordAllowNumeric = u.PasswordAllowNumeric
	return s
}

// BuildRegisterSchema 根据当前配置构造注册输入的结构约束
func BuildRegisterSchema(s model.Settings) validation.Schema {
	password := validation.Field{
		Name:      "password",
		Type:      validation.TypeString,
		Required:  true,
		MinLength: s.PasswordMinLength,
		MaxLength: s.PasswordMaxLength,
	}
	if !s.PasswordAllowNumeric {
		password.Rules = []string{"notnumeric"}
	}

	return validation.Schema{
		{
			Name:      "name",
			Type:      validation.TypeString,
			Required:  true,
			Trim:      true,
			MinLength: s.UsernameMinLength,
			MaxLength: s.UsernameMaxLength,
			Charset:   "alphanum",
		},
		{
			Name:      "email",
			Type:      validation.TypeEmail,
			Required:  true,
			Trim:      true,
			MaxLength: emailMaxLength,
		},
		password,
	}
}
