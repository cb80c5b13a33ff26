package manifest

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/types"
)

// DefaultFiles are the manifest file names looked up in a package root, in order.
var DefaultFiles = []string{"package.json", "package.yaml"}

// Manifest is a parsed package manifest. Raw keeps the whole document so
// tool settings can be read from it.
type Manifest struct {
	Path         string
	Name         string
	Main         string
	Private      bool
	Dependencies map[string]string
	Raw          Value
}

// FromValue extracts the well-known manifest fields from a parsed document.
// Fields of the wrong shape are treated as absent.
func FromValue(path string, raw Value) *Manifest {
	m := &Manifest{
		Path:         path,
		Raw:          raw,
		Dependencies: map[string]string{},
	}
	m.Name, _ = raw.Get("name").AsString()
	m.Main, _ = raw.Get("main").AsString()
	m.Private = raw.Get("private").Truthy()
	for _, dep := range raw.Get("dependencies").Members() {
		if version, ok := dep.Value.AsString(); ok {
			m.Dependencies[dep.Key] = version
		}
	}
	return m
}

// Read loads the first manifest found in root among files. Missing or
// unreadable manifests fail with MANIFEST_READ, malformed ones with
// MANIFEST_PARSE.
func Read(fs types.FS, root string, files []string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	if len(files) == 0 {
		files = DefaultFiles
	}

	var lastErr error
	for _, name := range files {
		path := filepath.Join(root, name)
		data, err := fs.ReadFile(path)
		if err != nil {
			lastErr = err
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrManifestRead, "cannot read %s", path).
				WithDetail("root", root)
		}

		raw, err := Parse(data, FormatFor(name))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestParse, "cannot parse %s", path).
				WithDetail("root", root)
		}
		if raw.Kind() != Object {
			return nil, errors.Newf(errors.ErrManifestParse, "%s must contain an object, got %s", path, raw.Kind()).
				WithDetail("root", root)
		}

		logger.Trace().Str("path", path).Msg("Manifest loaded")
		return FromValue(path, raw), nil
	}

	return nil, errors.Wrapf(lastErr, errors.ErrManifestRead, "no manifest found in %s", root).
		WithDetail("root", root).
		WithDetail("files", files)
}
