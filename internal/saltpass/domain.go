package saltpass

import "strings"

// StandardizeDomain reduces a pasted URL to the bare domain name so that
// "https://www.example.com/login" and "example.com" salt identically.
//
// It strips a leading scheme, everything from the first '/', '?' or '#',
// and a leading "www." in any case. Other text, including ports and
// letter case, is left as is. Derive never calls this on its own.
func StandardizeDomain(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+len("://"):]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		s = s[4:]
	}
	return s
}
