// Package urlcheck screens user-supplied URLs before they reach the
// headless browser. The check is lexical only: a public hostname that
// resolves to a private address at request time is not caught.
package urlcheck

import (
	"net"
	"net/url"
	"strings"
)

// Allowed reports whether raw is a fetchable http(s) URL whose host is
// not an obvious internal target. It never returns an error; anything
// unparsable is simply not allowed.
func Allowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}

	if ip := net.ParseIP(host); ip != nil {
		// Loopback, 0.0.0.0, RFC1918 ranges, and link-local targets.
		if ip.IsLoopback() || ip.IsUnspecified() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return false
		}
	}

	return true
}
