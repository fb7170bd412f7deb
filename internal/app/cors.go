package app

import (
	"net/url"
	"strings"
)

// originMatcher decides which browser origins may call the API. Patterns come
// from allowed_origins in the config file and may be exact hosts, "*.domain"
// suffixes or "host:*" port wildcards.
type originMatcher struct {
	patterns []string
}

func newOriginMatcher(patterns []string) *originMatcher {
	return &originMatcher{patterns: patterns}
}

func (m *originMatcher) Allow(origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, p := range m.patterns {
		if matchesOrigin(p, host) {
			return true
		}
	}
	return false
}

func matchesOrigin(pattern, host string) bool {
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
