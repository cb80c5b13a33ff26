package packages

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/config"
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/filesystem"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/manifest"
	"github.com/arthur-debert/pkgbundle/pkg/meta"
	"github.com/arthur-debert/pkgbundle/pkg/rules"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
	"github.com/arthur-debert/pkgbundle/pkg/types"
)

// RootAt resolves a package root from a literal directory path or from a
// file:// URL of a module inside that directory.
func RootAt(location string) (string, error) {
	if location == "" {
		return "", errors.New(errors.ErrInvalidInput, "package location is empty")
	}

	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid module URL %q", location)
		}
		dir := u.Path
		if !strings.HasSuffix(dir, "/") {
			dir = filepath.Dir(filepath.FromSlash(dir))
		}
		return filepath.Clean(filepath.FromSlash(dir)), nil
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %q", location)
	}
	return abs, nil
}

// Builder builds descriptors. Builders hold no mutable state, so one
// Builder may build many packages concurrently.
type Builder struct {
	fs  types.FS
	cfg *config.Config
}

// NewBuilder creates a builder. A nil fs uses the OS, a nil cfg the defaults.
func NewBuilder(fs types.FS, cfg *config.Config) *Builder {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Builder{fs: fs, cfg: cfg}
}

// At builds the package at location with the OS filesystem and defaults.
func At(location string) (*Descriptor, error) {
	return NewBuilder(nil, nil).Build(location)
}

// Build reads the manifest at location and resolves its settings.
//
// Malformed settings and unreadable manifests return an error. A package
// without a usable entry point is not an error: a warning is logged and
// Build returns a nil Descriptor, so callers can skip it and go on.
func (b *Builder) Build(location string) (*Descriptor, error) {
	logger := logging.GetLogger("packages")

	root, err := RootAt(location)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Read(b.fs, root, b.cfg.Manifest.Files)
	if err != nil {
		return nil, err
	}

	access := meta.New(root, b.cfg.Manifest.Namespace, m.Raw)

	inline, err := meta.Map(access, "inline", func(v manifest.Value) ([]rules.Operation, error) {
		return rules.Normalize(v, m.Name), nil
	})
	if err != nil {
		return nil, err
	}

	resolver := strict.Resolver{CatchAll: b.cfg.Strict.CatchAll}
	strictness, err := meta.Map(access, "strict", func(v manifest.Value) (strict.Result, error) {
		return resolver.Resolve(root, v), nil
	})
	if err != nil {
		return nil, err
	}

	pkgType, err := meta.Map(access, "type", func(v manifest.Value) (string, error) {
		return packageType(access, m, v)
	})
	if err != nil {
		return nil, err
	}

	jsx, err := access.Get("jsx")
	if err != nil {
		return nil, err
	}
	source, err := access.Get("source")
	if err != nil {
		return nil, err
	}

	entry, err := meta.Map(access, "entry", func(v manifest.Value) (map[string]string, error) {
		return b.entryPoints(root, m, v), nil
	})
	if err != nil {
		return nil, err
	}

	index := entry[IndexEntry]
	if index == "" {
		logger.Warn().
			Str("package", m.Name).
			Str("root", root).
			Msgf("No main entry point found for %s (in %s)", m.Name, root)
		return nil, nil
	}

	logger.Debug().
		Str("package", m.Name).
		Str("entry", index).
		Int("rules", len(inline)).
		Str("strict.externals", string(strictness.Policy.Externals)).
		Msg("Package descriptor built")

	return &Descriptor{
		name:         m.Name,
		main:         m.Main,
		entry:        index,
		root:         root,
		dependencies: m.Dependencies,
		settings: Settings{
			Inline:         inline,
			Strict:         strictness.Policy,
			StrictDefaults: strictness.Defaulted,
			JSX:            jsx,
			Source:         source,
			Type:           pkgType,
			Entry:          entry,
		},
	}, nil
}

func packageType(access *meta.Accessor, m *manifest.Manifest, v manifest.Value) (string, error) {
	if v.IsUndefined() {
		if m.Private {
			return TypePrivateLibrary, nil
		}
		return TypePublicLibrary, nil
	}

	s, ok := v.AsString()
	if !ok {
		return "", errors.Newf(errors.ErrInvalidTypeValue, "Invalid %s: %s", access.FlatKey("type"), v.String()).
			WithDetail("root", access.Root).
			WithDetail("value", v.String())
	}
	return s, nil
}

// entryPoints resolves named entry points. A string declares the index
// entry, an object is taken as is. Otherwise a TypeScript main, then the
// conventional index file, become the index entry.
func (b *Builder) entryPoints(root string, m *manifest.Manifest, v manifest.Value) map[string]string {
	switch v.Kind() {
	case manifest.String:
		s, _ := v.AsString()
		return map[string]string{IndexEntry: s}
	case manifest.Object:
		entry := map[string]string{}
		for _, member := range v.Members() {
			if path, ok := member.Value.AsString(); ok {
				entry[member.Key] = path
			}
		}
		return entry
	case manifest.Array, manifest.Null:
		return map[string]string{}
	}

	if b.cfg.HasSourceSuffix(m.Main) {
		return map[string]string{IndexEntry: m.Main}
	}

	index := b.cfg.Entry.ConventionalIndex
	if index != "" {
		if _, err := b.fs.Stat(filepath.Join(root, filepath.FromSlash(index))); err == nil {
			return map[string]string{IndexEntry: index}
		}
	}

	return map[string]string{}
}
