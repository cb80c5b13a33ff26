package strict_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/pkgbundle/pkg/manifest"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func parse(t *testing.T, doc string) manifest.Value {
	t.Helper()
	if doc == "" {
		return manifest.Value{}
	}
	v, err := manifest.Parse([]byte(doc), manifest.FormatJSON)
	require.NoError(t, err)
	return v
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		want     strict.Level
		warnings int
	}{
		{"undefined declaration", "", strict.Allow, 0},
		{"explicit warn", `{"externals": "warn"}`, strict.Warn, 0},
		{"catch-all", `{"all.v1": "error"}`, strict.Error, 0},
		{"specific after catch-all wins", `{"all.v1": "error", "externals": "warn"}`, strict.Warn, 0},
		{"catch-all after specific does not override", `{"externals": "warn", "all.v1": "error"}`, strict.Warn, 0},
		{"invalid value falls back to allow", `{"externals": "bogus"}`, strict.Allow, 1},
		{"non-string value falls back to allow", `{"externals": 3}`, strict.Allow, 1},
		{"invalid value then catch-all", `{"externals": "bogus", "all.v1": "error"}`, strict.Error, 1},
		{"invalid specific after catch-all", `{"all.v1": "error", "externals": "nope"}`, strict.Allow, 1},
		{"invalid catch-all", `{"all.v1": "strict"}`, strict.Allow, 1},
		{"unknown dimensions are ignored", `{"imports": "error"}`, strict.Allow, 0},
		{"empty declaration", `{}`, strict.Allow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			result := strict.Resolve("/pkg/root", parse(t, tt.doc))

			assert.Equal(t, strict.Policy{Externals: tt.want}, result.Policy)
			assert.Len(t, result.Defaulted, tt.warnings)
			assert.Equal(t, tt.warnings == 0, result.Clean())

			lines := strings.Count(logs.String(), "\n")
			assert.Equal(t, tt.warnings, lines)
		})
	}
}

func TestResolveWarningContent(t *testing.T) {
	logs := captureLogs(t)

	result := strict.Resolve("/work/pkg", parse(t, `{"externals": "bogus"}`))

	out := logs.String()
	assert.Contains(t, out, `"root":"/work/pkg"`)
	assert.Contains(t, out, `"dimension":"externals"`)
	assert.Contains(t, out, `"value":"bogus"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Equal(t, []strict.Substitution{{Dimension: "externals", Value: "bogus"}}, result.Defaulted)
}

func TestResolverCustomCatchAll(t *testing.T) {
	captureLogs(t)

	r := strict.Resolver{CatchAll: "all"}

	assert.Equal(t, strict.Error, r.Resolve("/x", parse(t, `{"all": "error"}`)).Policy.Externals)
	assert.Equal(t, strict.Allow, r.Resolve("/x", parse(t, `{"all.v1": "error"}`)).Policy.Externals)
}

func TestPolicyForDimension(t *testing.T) {
	p := strict.Policy{Externals: strict.Warn}

	level, ok := p.ForDimension(strict.Externals)
	assert.True(t, ok)
	assert.Equal(t, strict.Warn, level)

	_, ok = p.ForDimension("imports")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"allow", "warn", "error"} {
		level, ok := strict.ParseLevel(s)
		assert.True(t, ok)
		assert.Equal(t, strict.Level(s), level)
	}
	_, ok := strict.ParseLevel("Error")
	assert.False(t, ok)
}
