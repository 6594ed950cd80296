// Package strings holds small string helpers shared across modules
package strings

import std "strings"

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /reports or /dashboard
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Fold lower-cases and trims s, the form status and category values are compared in
func Fold(s string) string {
	return std.ToLower(std.TrimSpace(s))
}

// EqualFold reports whether a and b match after Fold
func EqualFold(a, b string) bool {
	return std.EqualFold(std.TrimSpace(a), std.TrimSpace(b))
}

// ContainsFold reports whether sub occurs in s ignoring case
func ContainsFold(s, sub string) bool {
	return std.Contains(std.ToUpper(s), std.ToUpper(sub))
}

// SQLNull returns nil if s is blank/whitespace, else the original string
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}
