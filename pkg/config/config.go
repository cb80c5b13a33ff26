package config

import (
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
)

// Config is the resolved tool configuration
type Config struct {
	Manifest  Manifest  `koanf:"manifest" json:"manifest" yaml:"manifest"`
	Entry     Entry     `koanf:"entry" json:"entry" yaml:"entry"`
	Strict    Strict    `koanf:"strict" json:"strict" yaml:"strict"`
	Workspace Workspace `koanf:"workspace" json:"workspace" yaml:"workspace"`
	Cache     Cache     `koanf:"cache" json:"cache" yaml:"cache"`
	Logging   Logging   `koanf:"logging" json:"logging" yaml:"logging"`
}

// Manifest controls how package manifests are found and read
type Manifest struct {
	// Namespace is the reserved key for tool settings
	Namespace string `koanf:"namespace" json:"namespace" yaml:"namespace"`
	// Files are manifest names looked up in a package root, in order
	Files []string `koanf:"files" json:"files" yaml:"files"`
}

// Entry controls entry point resolution
type Entry struct {
	SourceSuffixes    []string `koanf:"source_suffixes" json:"sourceSuffixes" yaml:"sourceSuffixes"`
	ConventionalIndex string   `koanf:"conventional_index" json:"conventionalIndex" yaml:"conventionalIndex"`
}

// Strict controls strictness resolution
type Strict struct {
	CatchAll string `koanf:"catch_all" json:"catchAll" yaml:"catchAll"`
}

// Workspace controls package discovery
type Workspace struct {
	// Dirs are globs, relative to the workspace root, of directories whose
	// children are package candidates
	Dirs []string `koanf:"dirs" json:"dirs" yaml:"dirs"`
	// Ignore are globs of directory names never treated as packages
	Ignore      []string `koanf:"ignore" json:"ignore" yaml:"ignore"`
	Parallelism int      `koanf:"parallelism" json:"parallelism" yaml:"parallelism"`
}

// Cache sizes the descriptor cache used by long-running callers
type Cache struct {
	Size int `koanf:"size" json:"size" yaml:"size"`
}

// Logging holds logging configuration
type Logging struct {
	File string `koanf:"file" json:"file" yaml:"file"`
}

// HasSourceSuffix reports whether path ends in a configured source suffix
func (c *Config) HasSourceSuffix(path string) bool {
	for _, suffix := range c.Entry.SourceSuffixes {
		if suffix != "" && strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Validate checks values that would make resolution meaningless
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Manifest.Namespace) == "" {
		return errors.New(errors.ErrConfigParse, "manifest.namespace must not be empty")
	}
	if strings.Contains(c.Manifest.Namespace, ":") {
		return errors.Newf(errors.ErrConfigParse, "manifest.namespace must not contain ':' (got %q)", c.Manifest.Namespace)
	}
	if len(c.Manifest.Files) == 0 {
		return errors.New(errors.ErrConfigParse, "manifest.files must list at least one file name")
	}
	if c.Strict.CatchAll == "" {
		return errors.New(errors.ErrConfigParse, "strict.catch_all must not be empty")
	}
	if c.Workspace.Parallelism < 1 {
		return errors.Newf(errors.ErrConfigParse, "workspace.parallelism must be at least 1 (got %d)", c.Workspace.Parallelism)
	}
	if c.Cache.Size < 1 {
		return errors.Newf(errors.ErrConfigParse, "cache.size must be at least 1 (got %d)", c.Cache.Size)
	}
	return nil
}
