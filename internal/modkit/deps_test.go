package modkit

import (
	"bytes"
	"testing"

	"rolegate/internal/platform/logger"
	kit "rolegate/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestDeps_ZeroValue_NamedFallsBack(t *testing.T) {
	t.Parallel()
	var d Deps
	if d.Named("diary") == nil {
		t.Fatal("zero-value Deps should still hand out a logger")
	}
}

func TestDeps_Named_UsesInjectedLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logger.Logger(zerolog.New(&buf))
	d := Deps{Log: &base}

	d.Named("billing").Info().Msg("hello")
	kit.MustContain(t, buf.String(), `"component":"billing"`)
}
