package manifest_test

import (
	"testing"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/filesystem"
	"github.com/arthur-debert/pkgbundle/pkg/manifest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSONKeepsMemberOrder(t *testing.T) {
	v, err := manifest.Parse([]byte(`{"z": 1, "a": {"y": "inline", "b": "external"}, "m": [true, null]}`), manifest.FormatJSON)
	require.NoError(t, err)

	keys := []string{}
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	inner := v.Get("a").Members()
	require.Len(t, inner, 2)
	assert.Equal(t, "y", inner[0].Key)
	assert.Equal(t, "b", inner[1].Key)

	items := v.Get("m").Items()
	require.Len(t, items, 2)
	assert.Equal(t, manifest.Bool, items[0].Kind())
	assert.Equal(t, manifest.Null, items[1].Kind())
}

func TestParseJSONDuplicateKeys(t *testing.T) {
	v, err := manifest.Parse([]byte(`{"a": 1, "b": 2, "a": 3}`), manifest.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, `{"a":3,"b":2}`, v.String())
}

func TestParseJSONErrors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a": }`, `{} {}`, `[1,]`} {
		t.Run(input, func(t *testing.T) {
			_, err := manifest.Parse([]byte(input), manifest.FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
name: "@x/y"
private: true
starbeam:
  inline:
    - tslib
    - lodash: external
  strict:
    all.v1: error
version: 1.5
count: 0x10
`
	v, err := manifest.Parse([]byte(doc), manifest.FormatYAML)
	require.NoError(t, err)

	name, _ := v.Get("name").AsString()
	assert.Equal(t, "@x/y", name)
	assert.True(t, v.Get("private").Truthy())
	assert.Equal(t, `["tslib",{"lodash":"external"}]`, v.Get("starbeam").Get("inline").String())
	assert.Equal(t, `{"all.v1":"error"}`, v.Get("starbeam").Get("strict").String())
	assert.Equal(t, "1.5", v.Get("version").String())
	assert.Equal(t, "16", v.Get("count").String())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value manifest.Value
		want  bool
	}{
		{"undefined", manifest.Value{}, false},
		{"null", manifest.NullValue(), false},
		{"empty string", manifest.Str(""), false},
		{"string", manifest.Str("x"), true},
		{"zero", manifest.Num("0"), false},
		{"negative zero float", manifest.Num("-0.0"), false},
		{"number", manifest.Num("2"), true},
		{"false", manifest.Boolean(false), false},
		{"true", manifest.Boolean(true), true},
		{"empty array", manifest.List(), true},
		{"empty object", manifest.Obj(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestValueMarshalYAMLKeepsOrder(t *testing.T) {
	v := manifest.Obj(
		manifest.M("zeta", manifest.Str("external")),
		manifest.M("alpha", manifest.List(manifest.Num("1"), manifest.Boolean(true))),
	)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "zeta: external\nalpha:\n    - 1\n    - true\n", string(out))
}

func TestRead(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := filesystem.NewAferoFS(mem)

	t.Run("reads package.json", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/a/package.json", []byte(`{
			"name": "@x/a",
			"main": "index.ts",
			"private": true,
			"dependencies": {"tslib": "^2.0.0", "bad": 1}
		}`), 0644))

		m, err := manifest.Read(fs, "/a", nil)
		require.NoError(t, err)
		assert.Equal(t, "/a/package.json", m.Path)
		assert.Equal(t, "@x/a", m.Name)
		assert.Equal(t, "index.ts", m.Main)
		assert.True(t, m.Private)
		assert.Equal(t, map[string]string{"tslib": "^2.0.0"}, m.Dependencies)
	})

	t.Run("falls back to package.yaml", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/b/package.yaml", []byte("name: b\nmain: src/b.ts\n"), 0644))

		m, err := manifest.Read(fs, "/b", nil)
		require.NoError(t, err)
		assert.Equal(t, "b", m.Name)
		assert.Equal(t, "src/b.ts", m.Main)
	})

	t.Run("missing manifest is a read error", func(t *testing.T) {
		_, err := manifest.Read(fs, "/missing", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestRead))
	})

	t.Run("malformed manifest is a parse error", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/c/package.json", []byte(`{"name": `), 0644))

		_, err := manifest.Read(fs, "/c", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})

	t.Run("non-object manifest is a parse error", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/d/package.json", []byte(`["x"]`), 0644))

		_, err := manifest.Read(fs, "/d", nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})
}
