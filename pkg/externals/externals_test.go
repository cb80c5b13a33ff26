package externals_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/externals"
	"github.com/arthur-debert/pkgbundle/pkg/filesystem"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/rules"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
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

func describe(t *testing.T, manifest string) *packages.Descriptor {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/pkg/package.json", []byte(manifest), 0644))

	desc, err := packages.NewBuilder(filesystem.NewAferoFS(mem), nil).Build("/pkg")
	require.NoError(t, err)
	require.NotNil(t, desc)
	return desc
}

func TestDecide(t *testing.T) {
	desc := describe(t, `{
		"name": "@app/web",
		"main": "index.ts",
		"starbeam:inline": [{"react": "external"}, "lodash-es/*", "(scope)"]
	}`)

	tests := []struct {
		specifier string
		outcome   externals.Outcome
		policy    rules.Policy
	}{
		{"react", externals.Declared, rules.External},
		{"lodash-es/debounce", externals.Declared, rules.Inline},
		{"@app/shared", externals.Declared, rules.Inline},
		{"./local", externals.Local, rules.Inline},
		{"../up", externals.Local, rules.Inline},
		{"node:fs", externals.Builtin, rules.External},
		{"fs/promises", externals.Builtin, rules.External},
		{"zod", externals.Undeclared, rules.External},
		{"tslib", externals.Undeclared, rules.External},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			v := externals.Decide(desc, tt.specifier)
			assert.Equal(t, tt.outcome, v.Outcome)
			assert.Equal(t, tt.policy, v.Policy)
			assert.Equal(t, tt.outcome == externals.Declared, v.Rule != nil)
		})
	}
}

func TestCheckStrictness(t *testing.T) {
	t.Run("allow is silent", func(t *testing.T) {
		logs := captureLogs(t)
		desc := describe(t, `{"name": "p", "main": "index.ts"}`)

		v, err := externals.Check(desc, "zod")
		require.NoError(t, err)
		assert.Equal(t, strict.Allow, v.Level)
		assert.Empty(t, logs.String())
	})

	t.Run("warn logs", func(t *testing.T) {
		logs := captureLogs(t)
		desc := describe(t, `{"name": "p", "main": "index.ts", "starbeam:strict": {"externals": "warn"}}`)

		v, err := externals.Check(desc, "zod")
		require.NoError(t, err)
		assert.Equal(t, externals.Undeclared, v.Outcome)
		assert.Contains(t, logs.String(), `"specifier":"zod"`)
	})

	t.Run("error fails", func(t *testing.T) {
		captureLogs(t)
		desc := describe(t, `{"name": "p", "main": "index.ts", "starbeam:strict": {"all.v1": "error"}}`)

		_, err := externals.Check(desc, "zod")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndeclaredExternal))
		assert.Equal(t, "zod", errors.GetErrorDetails(err)["specifier"])

		_, err = externals.Check(desc, "tslib")
		assert.NoError(t, err)
		_, err = externals.Check(desc, "node:path")
		assert.NoError(t, err)
	})
}

const metafile = `{
  "inputs": {
    "src/index.ts": {"bytes": 120, "imports": [{"path": "zod", "kind": "import-statement", "external": true}]}
  },
  "outputs": {
    "dist/index.js": {
      "bytes": 900,
      "imports": [
        {"path": "zod", "kind": "import-statement", "external": true},
        {"path": "react", "kind": "import-statement", "external": true},
        {"path": "node:fs", "kind": "import-statement", "external": true},
        {"path": "lodash-es/debounce", "kind": "import-statement", "external": true},
        {"path": "src/util.ts", "kind": "import-statement"}
      ],
      "exports": ["default"],
      "entryPoint": "src/index.ts"
    },
    "dist/chunk.js": {
      "bytes": 10,
      "imports": [{"path": "zod", "kind": "dynamic-import", "external": true}],
      "exports": []
    }
  }
}`

func TestAudit(t *testing.T) {
	m, err := externals.ParseMetafile([]byte(metafile))
	require.NoError(t, err)

	t.Run("warn reports without failing", func(t *testing.T) {
		logs := captureLogs(t)
		desc := describe(t, `{
			"name": "p", "main": "index.ts",
			"starbeam": {"inline": [{"react": "external"}, "lodash-es/*"], "strict": {"externals": "warn"}}
		}`)

		report, err := externals.Audit(desc, m)
		require.NoError(t, err)

		specifiers := make([]string, len(report.Imports))
		for i, v := range report.Imports {
			specifiers[i] = v.Specifier
		}
		assert.Equal(t, []string{"lodash-es/debounce", "node:fs", "react", "zod"}, specifiers)
		assert.Equal(t, []string{"zod"}, report.Undeclared)
		assert.Equal(t, []string{"lodash-es/debounce"}, report.Conflicts)
		assert.False(t, report.Failed())
		assert.Contains(t, logs.String(), "zod")
		assert.Contains(t, logs.String(), "lodash-es/debounce")
	})

	t.Run("error fails with the undeclared list", func(t *testing.T) {
		captureLogs(t)
		desc := describe(t, `{"name": "p", "main": "index.ts", "starbeam:strict": {"externals": "error"}}`)

		report, err := externals.Audit(desc, m)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndeclaredExternal))
		assert.True(t, report.Failed())
		assert.Equal(t, []string{"lodash-es/debounce", "react", "zod"}, report.Undeclared)
		assert.Equal(t, report.Undeclared, errors.GetErrorDetails(err)["specifiers"])
	})
}

func TestParseMetafileRejectsGarbage(t *testing.T) {
	_, err := externals.ParseMetafile([]byte(`{"outputs": [`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrMetafileParse))
}

func TestReadMetafile(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/meta.json", []byte(metafile), 0644))
	fsys := filesystem.NewAferoFS(mem)

	m, err := externals.ReadMetafile(fsys, "/out/meta.json")
	require.NoError(t, err)
	assert.Equal(t, "src/index.ts", m.Outputs["dist/index.js"].EntryPoint)

	_, err = externals.ReadMetafile(fsys, "/out/missing.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestIsBuiltin(t *testing.T) {
	assert.True(t, externals.IsBuiltin("fs"))
	assert.True(t, externals.IsBuiltin("node:test"))
	assert.True(t, externals.IsBuiltin("stream/web"))
	assert.False(t, externals.IsBuiltin("react"))
	assert.False(t, externals.IsBuiltin("fsevents"))
}
