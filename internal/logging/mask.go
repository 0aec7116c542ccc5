package logging

import "strings"

// MaskEmail hides most of an address for log output: "jane@example.com"
// becomes "j…@e….com".
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexByte(s, '@')
	if i <= 0 {
		if s == "" {
			return ""
		}
		if len(s) <= 3 {
			return "***"
		}
		return s[:1] + "…" + s[len(s)-1:]
	}
	user, dom := s[:i], s[i+1:]
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	parts := strings.Split(dom, ".")
	if len(parts) > 0 && len(parts[0]) > 1 {
		parts[0] = parts[0][:1] + "…"
	}
	return user + "@" + strings.Join(parts, ".")
}

// MaskSecret replaces a non-empty secret with a fixed placeholder.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
