package biz

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify 返回用户名的规范形式，用于唯一性判断
func Slugify(name string) string {
	// cases.Caser 有状态，不能跨 goroutine 共享
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// NormalizeEmail 去除空白并转小写
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// EmailHash 返回规范化邮箱的 SHA-256 十六进制摘要
func EmailHash(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
