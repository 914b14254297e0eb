package storage

import (
	"path"
	"strings"
)

const documentExtension = "json"

func sanitizePathSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

// DocumentKey maps a collection name to the key of its backing document,
// e.g. "accounts" -> "accounts.json". Returns "" for names with no usable
// characters.
func DocumentKey(collection string) string {
	replaced := strings.ReplaceAll(strings.TrimSpace(collection), " ", "-")
	base := strings.Trim(sanitizePathSegment(replaced), "-_")
	if base == "" {
		return ""
	}
	return base + "." + documentExtension
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}
