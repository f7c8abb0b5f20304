package app

import (
	"net/url"
	"strings"
)

// originHost strips the scheme from an origin, leaving "host[:port]".
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// originAllowed reports whether host matches pattern. Patterns may lead
// with "*." to match any subdomain, or end with ":*" to match any port.
func originAllowed(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
