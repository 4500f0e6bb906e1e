// Package logger owns the process root zerolog logger and the request
// scoped fields (request id, principal, role, tenant) that ride on a context
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"rolegate/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // json or console
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw view since config itself logs
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "info"),
		Format:      strings.ToLower(env.Get("FORMAT", "json")),
		Service:     env.Get("SERVICE", "rolegate"),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	mu   sync.RWMutex
	root *Logger
)

// Init installs the root logger. The first call wins; later calls are no-ops
func Init(opt Options) {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		l := build(opt)
		root = &l
	}
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	return Get()
}

func build(opt Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if opt.Component != "" {
		zc = zc.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		zc = zc.Str(k, v)
	}
	if opt.WithCaller {
		zc = zc.Caller()
	}

	l := zc.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel accepts zerolog names plus "warning"; anything else is info
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxField string

const (
	fieldRequestID   ctxField = "request_id"
	fieldPrincipalID ctxField = "principal_id"
	fieldRole        ctxField = "role"
	fieldTenantID    ctxField = "tenant_id"
)

var ctxFields = [...]ctxField{fieldRequestID, fieldPrincipalID, fieldRole, fieldTenantID}

func with(ctx context.Context, f ctxField, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, f, v)
}

// WithRequest stores the request id for C
func WithRequest(ctx context.Context, reqID string) context.Context {
	return with(ctx, fieldRequestID, reqID)
}

// WithPrincipal stores the authenticated caller for C; empty values are skipped
func WithPrincipal(ctx context.Context, principalID, role, tenantID string) context.Context {
	ctx = with(ctx, fieldPrincipalID, principalID)
	ctx = with(ctx, fieldRole, role)
	return with(ctx, fieldTenantID, tenantID)
}

// C returns the root logger carrying whatever request fields ctx holds
func C(ctx context.Context) *Logger {
	zc := Get().With()
	for _, f := range ctxFields {
		if v, _ := ctx.Value(f).(string); v != "" {
			zc = zc.Str(string(f), v)
		}
	}
	l := zc.Logger()
	return &l
}

// Named returns a child logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
