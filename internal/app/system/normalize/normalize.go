// internal/app/system/normalize/normalize.go
//
// Package normalize holds the canonical spellings of user-supplied values.
// Stores call these before writing so lookups never depend on how a value
// was typed.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Reason trims a free-text reason and collapses internal runs of
// whitespace to single spaces.
func Reason(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
