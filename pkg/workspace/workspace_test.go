package workspace_test

import (
	"context"
	"path"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/pkgbundle/pkg/config"
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/filesystem"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/types"
	"github.com/arthur-debert/pkgbundle/pkg/workspace"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func newRepo(t *testing.T) types.FS {
	t.Helper()

	mem := afero.NewMemMapFs()
	files := map[string]string{
		"/repo/package.json":                         `{"name": "root", "private": true}`,
		"/repo/packages/a/package.json":              `{"name": "@s/a", "main": "index.ts"}`,
		"/repo/packages/b/package.yaml":              "name: b\nmain: index.mjs\n",
		"/repo/packages/noman/README.md":             "# nothing",
		"/repo/packages/broken/package.json":         `{`,
		"/repo/packages/node_modules/x/package.json": `{"name": "x"}`,
		"/repo/packages/.cache/package.json":         `{"name": "cache"}`,
		"/repo/@scope/c/package.json":                `{"name": "@scope/c", "starbeam:entry": "src/c.ts"}`,
		"/repo/other/d/package.json":                 `{"name": "d", "main": "index.ts"}`,
	}
	for p, content := range files {
		require.NoError(t, mem.MkdirAll(path.Dir(p), 0755))
		require.NoError(t, afero.WriteFile(mem, p, []byte(content), 0644))
	}
	return filesystem.NewAferoFS(mem)
}

func TestDiscover(t *testing.T) {
	fsys := newRepo(t)

	members, err := workspace.Discover(fsys, "/repo", config.Default())
	require.NoError(t, err)

	assert.Equal(t, []workspace.Member{
		{Name: "@s/a", Root: "/repo/packages/a"},
		{Name: "@scope/c", Root: "/repo/@scope/c"},
		{Name: "b", Root: "/repo/packages/b"},
		{Name: "root", Root: "/repo"},
	}, members)
}

func TestDiscoverCustomDirs(t *testing.T) {
	fsys := newRepo(t)
	cfg := config.Default()
	cfg.Workspace.Dirs = []string{"other"}

	members, err := workspace.Discover(fsys, "/repo", cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "root"}, workspace.Names(members))
}

func TestDiscoverErrors(t *testing.T) {
	fsys := newRepo(t)

	_, err := workspace.Discover(fsys, "/missing", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = workspace.Discover(fsys, "/repo/package.json", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSelect(t *testing.T) {
	members := []workspace.Member{
		{Name: "@s/a", Root: "/repo/packages/a"},
		{Name: "b", Root: "/repo/packages/b"},
	}

	t.Run("no names selects all", func(t *testing.T) {
		got, err := workspace.Select(members, nil)
		require.NoError(t, err)
		assert.Equal(t, members, got)
	})

	t.Run("by package name or directory", func(t *testing.T) {
		got, err := workspace.Select(members, []string{"b", "a/"})
		require.NoError(t, err)
		assert.Equal(t, []workspace.Member{members[1], members[0]}, got)
	})

	t.Run("unknown names", func(t *testing.T) {
		_, err := workspace.Select(members, []string{"zzz"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		assert.Equal(t, []string{"zzz"}, errors.GetErrorDetails(err)["notFound"])
	})
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "a", workspace.NormalizeName("a/"))
	assert.Equal(t, "a", workspace.NormalizeName("a//"))
	assert.Equal(t, "@s/a", workspace.NormalizeName("@s/a"))
}

type countingSource struct {
	inner workspace.Source
	calls atomic.Int32
}

func (c *countingSource) Build(location string) (*packages.Descriptor, error) {
	c.calls.Add(1)
	return c.inner.Build(location)
}

func TestBuildAll(t *testing.T) {
	fsys := newRepo(t)
	builder := packages.NewBuilder(fsys, config.Default())
	roots := []string{
		"/repo/packages/a",
		"/repo/packages/b",
		"/repo/packages/broken",
		"/repo/@scope/c",
	}

	for _, parallelism := range []int{1, 3, 0} {
		results, err := workspace.BuildAll(context.Background(), builder, roots, parallelism)
		require.NoError(t, err)
		require.Len(t, results, len(roots))

		for i, r := range results {
			assert.Equal(t, roots[i], r.Root)
		}
		require.NotNil(t, results[0].Descriptor)
		assert.Equal(t, "@s/a", results[0].Descriptor.Name())
		assert.True(t, results[1].Skipped())
		assert.True(t, errors.IsErrorCode(results[2].Err, errors.ErrManifestParse))
		require.NotNil(t, results[3].Descriptor)
		assert.Equal(t, "src/c.ts", results[3].Descriptor.Entry())

		assert.Equal(t, workspace.Summary{Built: 2, Skipped: 1, Failed: 1}, workspace.Summarize(results))
	}
}

func TestBuildAllCancelled(t *testing.T) {
	source := &countingSource{inner: packages.NewBuilder(newRepo(t), nil)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := workspace.BuildAll(ctx, source, []string{"/repo/packages/a", "/repo/packages/b"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, int32(0), source.calls.Load())
}

func TestCache(t *testing.T) {
	source := &countingSource{inner: packages.NewBuilder(newRepo(t), nil)}
	cache, err := workspace.NewCache(source, 2)
	require.NoError(t, err)

	first, err := cache.Build("/repo/packages/a")
	require.NoError(t, err)
	second, err := cache.Build("/repo/packages/a/")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), source.calls.Load())

	t.Run("packages without entry are cached", func(t *testing.T) {
		before := source.calls.Load()
		for i := 0; i < 2; i++ {
			desc, err := cache.Build("/repo/packages/b")
			require.NoError(t, err)
			assert.Nil(t, desc)
		}
		assert.Equal(t, before+1, source.calls.Load())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		before := source.calls.Load()
		for i := 0; i < 2; i++ {
			_, err := cache.Build("/repo/packages/broken")
			require.Error(t, err)
		}
		assert.Equal(t, before+2, source.calls.Load())
	})

	t.Run("invalidate and evict", func(t *testing.T) {
		assert.Equal(t, 2, cache.Len())

		cache.Invalidate("/repo/packages/a")
		assert.Equal(t, 1, cache.Len())

		_, err := cache.Build("/repo/@scope/c")
		require.NoError(t, err)
		_, err = cache.Build("/repo/packages/a")
		require.NoError(t, err)
		assert.Equal(t, 2, cache.Len())
	})
}

func TestNewCacheRejectsInvalidSize(t *testing.T) {
	_, err := workspace.NewCache(packages.NewBuilder(nil, nil), 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
