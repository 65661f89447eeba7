// Package validation 实现两阶段输入校验：
// 结构校验（类型、格式、长度）与语义校验（依赖外部状态的异步校验器）。
// 校验错误作为数据累积返回，不会中断其它字段的校验。
package validation

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// CleanedData 只包含通过结构校验的字段
type CleanedData map[string]any

// String 返回字符串字段，不存在时返回空串
func (d CleanedData) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Clone 返回浅拷贝
func (d CleanedData) Clone() CleanedData {
	out := make(CleanedData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ValidateModel 执行结构校验。每个无效字段最多产生一条错误，且不会出现在 CleanedData 中。
func ValidateModel(schema Schema, input map[string]any) (CleanedData, ErrorsList) {
	cleaned := make(CleanedData, len(schema))
	var errs ErrorsList

	for _, field := range schema {
		raw, ok := input[field.Name]
		if !ok || raw == nil {
			if field.Required {
				errs = errs.add(field.Name, CodeRequired)
			}
			continue
		}

		value, ok := raw.(string)
		if !ok {
			errs = errs.add(field.Name, CodeInvalid)
			continue
		}
		if field.Trim {
			value = strings.TrimSpace(value)
		}

		if err := engine().Var(value, field.Tag()); err != nil {
			errs = errs.add(field.Name, structuralCode(err))
			continue
		}
		cleaned[field.Name] = value
	}

	return cleaned, errs
}

func structuralCode(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return codeForTag(verrs[0].Tag())
	}
	return CodeInvalid
}

// Validator 是语义校验器。
// 返回 nil 表示通过；返回 *Error 或 ErrorsList 表示校验失败（记入错误列表并终止该字段的后续校验）；
// 返回其它错误则终止整个请求。
type Validator func(ctx context.Context, value any, data CleanedData) error

// ValidatorSet 是字段到校验器链的有序映射
type ValidatorSet struct {
	fields     []string
	validators map[string][]Validator
}

func NewValidatorSet() *ValidatorSet {
	return &ValidatorSet{validators: make(map[string][]Validator)}
}

// Add 为字段追加校验器，字段首次出现的顺序决定错误的输出顺序
func (s *ValidatorSet) Add(field string, validators ...Validator) *ValidatorSet {
	if _, ok := s.validators[field]; !ok {
		s.fields = append(s.fields, field)
	}
	s.validators[field] = append(s.validators[field], validators...)
	return s
}

func (s *ValidatorSet) Fields() []string {
	return append([]string(nil), s.fields...)
}

func (s *ValidatorSet) For(field string) []Validator {
	return s.validators[field]
}

// ValidateData 执行语义校验，返回在 errs 之后追加了新错误的列表。
// 未通过结构校验的字段（不在 data 中）会被跳过。各字段并发执行，错误按字段顺序合并。
func ValidateData(ctx context.Context, data CleanedData, set *ValidatorSet, errs ErrorsList) (ErrorsList, error) {
	out := append(ErrorsList(nil), errs...)
	if set == nil {
		return out, nil
	}

	fields := set.Fields()
	results := make([]ErrorsList, len(fields))
	g, gctx := errgroup.WithContext(ctx)

	for i, field := range fields {
		var value any
		if field == RootField {
			value = data
		} else {
			v, ok := data[field]
			if !ok {
				continue
			}
			value = v
		}

		chain := set.For(field)
		g.Go(func() error {
			fieldErrs, err := runChain(gctx, field, value, data, chain)
			if err != nil {
				return err
			}
			results[i] = fieldErrs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// runChain 按顺序执行单个字段的校验器，遇到首个失败即停止
func runChain(ctx context.Context, field string, value any, data CleanedData, chain []Validator) (ErrorsList, error) {
	for _, v := range chain {
		err := v(ctx, value, data)
		if err == nil {
			continue
		}

		var list ErrorsList
		if errors.As(err, &list) {
			return withField(field, list...), nil
		}
		var verr *Error
		if errors.As(err, &verr) {
			return withField(field, *verr), nil
		}
		return nil, err
	}
	return nil, nil
}

func withField(field string, errs ...Error) ErrorsList {
	out := make(ErrorsList, 0, len(errs))
	for _, e := range errs {
		if e.Field == "" && field != RootField {
			e.Field = field
		}
		if e.Message == "" {
			e.Message = defaultMessage(e.Field, e.Code)
		}
		out = append(out, e)
	}
	return out
}
