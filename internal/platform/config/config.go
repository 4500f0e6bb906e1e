// Package config reads application settings from the environment
//
// A Conf is a prefix view: config.New().Prefix("CORE_API_") reads
// CORE_API_* keys, and module scopes nest further (CORE_API_APPOINTMENTS_)
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rolegate/internal/platform/logger"
)

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a nested view, e.g. New().Prefix("SERVICE_PGSQL_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// MustString returns the trimmed value and panics when it is unset
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// may parses an optional value; malformed input logs a warning and yields def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).Msg("malformed env; using default")
		return def
	}
	return v
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration accepts Go duration syntax (250ms, 2s, 1h)
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayPositiveInt is MayInt where values below 1 also fall back to def
func (c Conf) MayPositiveInt(key string, def int) int {
	if v := c.MayInt(key, def); v >= 1 {
		return v
	}
	logger.Get().Warn().Str("key", c.Key(key)).Int("default", def).Msg("non-positive int; using default")
	return def
}

// MayCSV splits a comma list, dropping blanks; an empty result is def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
