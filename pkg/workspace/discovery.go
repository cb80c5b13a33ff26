package workspace

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/config"
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/manifest"
	"github.com/arthur-debert/pkgbundle/pkg/types"
)

// Member is a discovered package.
type Member struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Root string `json:"root" yaml:"root" toml:"root"`
}

// Discover lists the packages of the workspace at root.
//
// Directories whose manifest cannot be read are logged and skipped.
func Discover(fsys types.FS, root string, cfg *config.Config) ([]Member, error) {
	logger := logging.GetLogger("workspace.discovery")
	if cfg == nil {
		cfg = config.Default()
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound, "workspace root does not exist").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "workspace root is not a directory").
			WithDetail("path", root)
	}

	candidates := []string{}
	if hasManifest(fsys, root, cfg.Manifest.Files) {
		candidates = append(candidates, root)
	}

	seen := map[string]bool{root: true}
	for _, pattern := range cfg.Workspace.Dirs {
		for _, container := range expand(fsys, root, pattern, cfg.Workspace.Ignore) {
			for _, dir := range children(fsys, container, cfg.Workspace.Ignore) {
				if seen[dir] || !hasManifest(fsys, dir, cfg.Manifest.Files) {
					continue
				}
				seen[dir] = true
				candidates = append(candidates, dir)
				logger.Trace().Str("path", dir).Msg("Found package candidate")
			}
		}
	}

	members := make([]Member, 0, len(candidates))
	for _, dir := range candidates {
		m, err := manifest.Read(fsys, dir, cfg.Manifest.Files)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("path", dir).
				Msg("Failed to read package manifest, skipping")
			continue
		}
		name := m.Name
		if name == "" {
			name = filepath.Base(dir)
		}
		members = append(members, Member{Name: name, Root: dir})
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Name != members[j].Name {
			return members[i].Name < members[j].Name
		}
		return members[i].Root < members[j].Root
	})

	logger.Info().Int("count", len(members)).Str("root", root).Msg("Discovered packages")
	return members, nil
}

// Roots returns the root directory of each member.
func Roots(members []Member) []string {
	roots := make([]string, len(members))
	for i, m := range members {
		roots[i] = m.Root
	}
	return roots
}

func hasManifest(fsys types.FS, dir string, files []string) bool {
	if len(files) == 0 {
		files = manifest.DefaultFiles
	}
	for _, name := range files {
		if info, err := fsys.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// expand resolves a slash-separated glob relative to root into the
// directories it names.
func expand(fsys types.FS, root, pattern string, ignore []string) []string {
	dirs := []string{root}
	for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
		if segment == "" || segment == "." {
			continue
		}
		var next []string
		for _, dir := range dirs {
			for _, child := range children(fsys, dir, ignore) {
				if matched, _ := filepath.Match(segment, filepath.Base(child)); matched {
					next = append(next, child)
				}
			}
		}
		dirs = next
	}
	return dirs
}

func children(fsys types.FS, dir string, ignore []string) []string {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || ignored(entry.Name(), ignore) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(dirs)
	return dirs
}

func ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
