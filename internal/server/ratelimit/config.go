package ratelimit

import (
	"strings"
	"time"
)

// Rule limits requests whose path starts with Prefix.
type Rule struct {
	Method string
	Prefix string
	Limit  int           // requests per Window
	Window time.Duration // refill period
	Burst  int           // bucket size, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Rules   []Rule
}

// DefaultConfig limits document rendering, which calls the remote API
// three times per request and may start a headless browser.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Rules: []Rule{
			{Method: "GET", Prefix: "/documents/", Limit: 30, Window: time.Minute, Burst: 10},
			{Method: "GET", Prefix: "/archive", Limit: 120, Window: time.Minute, Burst: 30},
		},
	}
}

// Match returns the rule with the longest prefix matching the request, or
// nil when none applies.
func Match(method, path string, rules []Rule) *Rule {
	var best *Rule
	for i := range rules {
		r := &rules[i]
		if r.Method != method || !strings.HasPrefix(path, r.Prefix) {
			continue
		}
		if best == nil || len(r.Prefix) > len(best.Prefix) {
			best = r
		}
	}
	return best
}
