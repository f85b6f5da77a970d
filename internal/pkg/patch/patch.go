// Package patch reads optional fields of partial request bodies.
package patch

import "strings"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Text is the trimmed value of an optional string field; absent and blank both give "".
func Text(ptr *string) string {
	return strings.TrimSpace(Coalesce(ptr, ""))
}
