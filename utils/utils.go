/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package utils

import (
	"strings"
	"unicode"
)

// Must panic when err is not nil, otherwise return v
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// LowerCase converts a Go field name to lower snake case: TenantID -> tenant_id
func LowerCase(name string) string {
	return strings.ToLower(snake(name))
}

// UpperCase converts a Go field name to upper snake case: TenantID -> TENANT_ID
func UpperCase(name string) string {
	return strings.ToUpper(snake(name))
}

func snake(name string) string {
	runes := []rune(name)
	sb := strings.Builder{}
	sb.Grow(len(name) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// 前一个字符为小写/数字，或者处于缩写词末尾（HTTPServer -> http_server）
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Escape escapes a string literal for use between single quotes
func Escape(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return s
	}
	return strings.ReplaceAll(s, "'", "''")
}

// LastIndexFold like strings.LastIndex, ASCII case-insensitive. Byte offsets
// of the result always refer to s.
func LastIndexFold(s, substr string) int {
	n := len(substr)
	for i := len(s) - n; i >= 0; i-- {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
