package externals

import (
	"encoding/json"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/types"
)

// Metafile is the subset of an esbuild metafile the audit reads.
type Metafile struct {
	Inputs  map[string]MetafileInput  `json:"inputs"`
	Outputs map[string]MetafileOutput `json:"outputs"`
}

// MetafileInput is a source file of the bundle.
type MetafileInput struct {
	Bytes   int              `json:"bytes"`
	Imports []MetafileImport `json:"imports"`
	Format  string           `json:"format,omitempty"`
}

// MetafileImport is one import statement as resolved by the bundler.
type MetafileImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
	Original string `json:"original,omitempty"`
}

// Specifier is the import as written in source.
func (i MetafileImport) Specifier() string {
	if i.Original != "" {
		return i.Original
	}
	return i.Path
}

// MetafileOutput is a generated bundle file.
type MetafileOutput struct {
	Bytes      int              `json:"bytes"`
	Imports    []MetafileImport `json:"imports"`
	Exports    []string         `json:"exports"`
	EntryPoint string           `json:"entryPoint,omitempty"`
}

// ParseMetafile decodes esbuild metafile JSON.
func ParseMetafile(data []byte) (*Metafile, error) {
	var m Metafile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrMetafileParse, "failed to parse metafile")
	}
	return &m, nil
}

// ReadMetafile reads and decodes the metafile at path.
func ReadMetafile(fsys types.FS, path string) (*Metafile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound, "cannot read metafile").
			WithDetail("path", path)
	}
	m, err := ParseMetafile(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMetafileParse, "invalid metafile").
			WithDetail("path", path)
	}
	return m, nil
}
