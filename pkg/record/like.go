package record

import (
	"regexp"
	"strings"
)

// ContainsLike reports whether s matches the SQL pattern '%' || substring || '%'. Inside substring '%'
// matches any run of characters, '_' any single character and a backslash escapes the next character.
func ContainsLike(s, substring string) bool {
	var b strings.Builder
	b.WriteString("(?s)")
	escaped := false
	for _, r := range substring {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.MustCompile(b.String()).MatchString(s)
}
