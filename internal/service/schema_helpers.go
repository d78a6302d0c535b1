package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AvatarInitials returns the upper-cased first letter of each word of name,
// truncated to two letters. "Priya Patel" gives "PP".
func AvatarInitials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

// SplitFeatures turns comma separated text into a trimmed list without empty
// entries.
func SplitFeatures(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinFeatures is the inverse of SplitFeatures for edit forms.
func JoinFeatures(features []string) string {
	return strings.Join(features, ", ")
}

// Search keeps the items whose fields contain query, ignoring case. An empty
// query keeps everything.
func Search[T any](items []T, query string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func nullable(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func strPtr(value string) *string {
	return &value
}
