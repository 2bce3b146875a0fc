package validate

import (
	"regexp"
	"strings"
)

const maxNameLen = 80

var (
	reQ  = regexp.MustCompile(`^[\p{L}\p{N} _'\-\.]{1,50}$`)
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Errors is a structured field -> message set produced by a draft's
// Validate. An empty set means the draft is writable.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Ok reports whether the set is empty.
func (e Errors) Ok() bool { return len(e) == 0 }

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID validates a simple resource identifier (product/variant/asset ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name trims and caps a displayable name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNameLen {
		return "", false
	}
	return s, true
}

// Clamp forces a quantity or cost to be non-negative.
func Clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
