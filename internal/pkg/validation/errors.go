package validation

import (
	"fmt"
	"strings"
)

// 错误码，客户端依赖这些字符串，不可随意修改
const (
	CodeRequired          = "required"
	CodeInvalid           = "invalid"
	CodeTooShort          = "too_short"
	CodeTooLong           = "too_long"
	CodeInvalidEmail      = "invalid_email"
	CodeEntirelyNumeric   = "entirely_numeric"
	CodeNameNotAvailable  = "name_not_available"
	CodeEmailNotAvailable = "email_not_available"
)

// RootField 是根级校验器在 ValidatorSet 中使用的键，产生的错误 Field 为空
const RootField = "__root__"

// Error 是一条字段级（或根级）校验错误
type Error struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// NewError 创建校验错误，Field 由引擎按所在字段填充
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewFieldError 创建带默认提示信息的字段错误
func NewFieldError(field, code string) Error {
	return Error{Field: field, Code: code, Message: defaultMessage(field, code)}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Code, e.Message)
}

// ErrorsList 是有序的错误集合；实现 error 以便校验器一次返回多条
type ErrorsList []Error

func (l ErrorsList) Error() string {
	parts := make([]string, 0, len(l))
	for i := range l {
		parts = append(parts, l[i].Error())
	}
	return strings.Join(parts, "; ")
}

func (l ErrorsList) Empty() bool {
	return len(l) == 0
}

// HasField 判断某字段是否已有错误
func (l ErrorsList) HasField(field string) bool {
	for _, e := range l {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Codes 返回某字段的全部错误码
func (l ErrorsList) Codes(field string) []string {
	var codes []string
	for _, e := range l {
		if e.Field == field {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

func (l ErrorsList) add(field, code string) ErrorsList {
	return append(l, NewFieldError(field, code))
}

func defaultMessage(field, code string) string {
	switch code {
	case CodeRequired:
		return fmt.Sprintf("%s is required", field)
	case CodeTooShort:
		return fmt.Sprintf("%s is too short", field)
	case CodeTooLong:
		return fmt.Sprintf("%s is too long", field)
	case CodeInvalidEmail:
		return "value is not a valid email address"
	case CodeEntirelyNumeric:
		return fmt.Sprintf("%s can't be entirely numeric", field)
	case CodeNameNotAvailable:
		return "this name is not available"
	case CodeEmailNotAvailable:
		return "this email is not available"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
