package pg

import (
	"context"
	"fmt"

	"rolegate/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// maxArgLen bounds how much of a single string arg lands in the log line
const maxArgLen = 64

// Tracer returns a tracer that prints every statement when LogSQL=true,
// independent of the process-wide root level. Request fields from ctx are attached
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if ctx != nil {
		if rid, ok := ctx.Value(requestIDKey{}).(string); ok && rid != "" {
			evt = evt.Str("request_id", rid)
		}
	}

	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Strs("args", shortArgs(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

type requestIDKey struct{}

// WithRequestID lets callers tag statements with the originating request
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func shortArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		s := fmt.Sprint(a)
		if len(s) > maxArgLen {
			s = s[:maxArgLen] + "..."
		}
		out[i] = s
	}
	return out
}

func compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
