package config

import (
	"strings"
	"time"
)

// CacheConfig drives the Redis response cache in front of the public
// availability endpoints.  Cached entries go stale the moment a
// booking or block commits, so the TTL stays short: 30 seconds of
// staleness is acceptable for a browsing calendar because the
// authoritative check happens again under lock at confirmation time.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the cache settings from the environment,
// falling back to defaults suited to availability reads.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envStr("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          parseDur(envStr("CACHE_TTL", "30s")),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "avail"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
