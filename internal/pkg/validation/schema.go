package validation

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type FieldType string

const (
	TypeString FieldType = "string"
	TypeEmail  FieldType = "email"
)

// Field 描述一个输入字段的结构约束。
// 约束在请求期间由配置生成，最终编译为 validator 的 tag 字符串。
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	Trim      bool
	MinLength int
	MaxLength int
	// Charset 是字符集规则，例如 "alphanum"
	Charset string
	// Rules 是附加的 validator tag，按顺序执行
	Rules []string
}

// Tag 返回该字段对应的 validator tag
func (f Field) Tag() string {
	var parts []string
	if f.Type == TypeEmail {
		parts = append(parts, "email")
	}
	if f.MinLength > 0 {
		parts = append(parts, "min="+strconv.Itoa(f.MinLength))
	}
	if f.MaxLength > 0 {
		parts = append(parts, "max="+strconv.Itoa(f.MaxLength))
	}
	if f.Charset != "" {
		parts = append(parts, f.Charset)
	}
	parts = append(parts, f.Rules...)
	return strings.Join(parts, ",")
}

// Schema 是有序字段列表
type Schema []Field

// Field 按名称查找字段
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// With 返回替换（或追加）同名字段后的新 Schema
func (s Schema) With(field Field) Schema {
	out := make(Schema, 0, len(s)+1)
	replaced := false
	for _, f := range s {
		if f.Name == field.Name {
			out = append(out, field)
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, field)
	}
	return out
}

// Without 返回去掉指定字段后的新 Schema
func (s Schema) Without(name string) Schema {
	out := make(Schema, 0, len(s))
	for _, f := range s {
		if f.Name != name {
			out = append(out, f)
		}
	}
	return out
}

// tagCodes 将 validator tag 映射为对外错误码
var tagCodes = map[string]string{
	"min":        CodeTooShort,
	"max":        CodeTooLong,
	"email":      CodeInvalidEmail,
	"notnumeric": CodeEntirelyNumeric,
}

func codeForTag(tag string) string {
	if code, ok := tagCodes[tag]; ok {
		return code
	}
	return CodeInvalid
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine 返回共享的 validator 实例，初始化后只读
func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("notnumeric", notNumeric); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func notNumeric(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
