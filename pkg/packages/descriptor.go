package packages

import (
	"maps"
	"slices"

	"github.com/arthur-debert/pkgbundle/pkg/manifest"
	"github.com/arthur-debert/pkgbundle/pkg/rules"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
)

// Package type classifications used when the manifest does not declare one.
const (
	TypePublicLibrary  = "library:public"
	TypePrivateLibrary = "library:private"
)

// IndexEntry is the entry point name used for the main entry.
const IndexEntry = "index"

// Settings are the resolved tool settings of a package.
type Settings struct {
	Inline []rules.Operation `json:"inline" yaml:"inline" toml:"inline"`
	Strict strict.Policy     `json:"strict" yaml:"strict" toml:"strict"`
	// StrictDefaults lists strictness values replaced by "allow".
	StrictDefaults []strict.Substitution `json:"strictDefaults,omitempty" yaml:"strictDefaults,omitempty" toml:"strictDefaults,omitempty"`
	// JSX and Source are passed through from the manifest unvalidated.
	JSX    manifest.Value    `json:"jsx" yaml:"jsx" toml:"-"`
	Source manifest.Value    `json:"source" yaml:"source" toml:"-"`
	Type   string            `json:"type" yaml:"type" toml:"type"`
	Entry  map[string]string `json:"entry" yaml:"entry" toml:"entry"`
}

// JSXImportSource returns the JSX runtime import source when it is a string.
func (s Settings) JSXImportSource() (string, bool) {
	return s.JSX.AsString()
}

// SourceDir returns the source directory hint when it is a string.
func (s Settings) SourceDir() (string, bool) {
	return s.Source.AsString()
}

func (s Settings) clone() Settings {
	s.Inline = slices.Clone(s.Inline)
	s.StrictDefaults = slices.Clone(s.StrictDefaults)
	s.Entry = maps.Clone(s.Entry)
	return s
}

// Descriptor describes one package. It is immutable: accessors return copies.
type Descriptor struct {
	name         string
	main         string
	entry        string
	root         string
	dependencies map[string]string
	settings     Settings
}

// Name is the package name from the manifest.
func (d *Descriptor) Name() string { return d.name }

// Main is the manifest's declared main file.
func (d *Descriptor) Main() string { return d.main }

// Entry is the resolved index entry point, relative to Root.
func (d *Descriptor) Entry() string { return d.entry }

// Root is the absolute package directory.
func (d *Descriptor) Root() string { return d.root }

// Dependencies maps dependency names to version ranges.
func (d *Descriptor) Dependencies() map[string]string { return maps.Clone(d.dependencies) }

// Settings returns the resolved tool settings.
func (d *Descriptor) Settings() Settings { return d.settings.clone() }

// Inline returns the normalized rule list a bundler consults per import.
func (d *Descriptor) Inline() []rules.Operation { return slices.Clone(d.settings.Inline) }

// Strict returns the resolved strictness policy.
func (d *Descriptor) Strict() strict.Policy { return d.settings.Strict }

// View is a serializable snapshot of a Descriptor.
type View struct {
	Name         string            `json:"name" yaml:"name" toml:"name"`
	Main         string            `json:"main" yaml:"main" toml:"main"`
	Entry        string            `json:"entry" yaml:"entry" toml:"entry"`
	Root         string            `json:"root" yaml:"root" toml:"root"`
	Dependencies map[string]string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Settings     Settings          `json:"settings" yaml:"settings" toml:"settings"`
}

// View returns a serializable copy of the descriptor.
func (d *Descriptor) View() View {
	return View{
		Name:         d.name,
		Main:         d.main,
		Entry:        d.entry,
		Root:         d.root,
		Dependencies: d.Dependencies(),
		Settings:     d.Settings(),
	}
}
