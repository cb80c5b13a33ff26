// Package meta reads tool settings out of a package manifest.
//
// A setting can be given either as a flat key, "<namespace>:<setting>", or as
// a property of a nested object stored under the namespace key:
//
//	{ "starbeam:inline": ["tslib"] }
//	{ "starbeam": { "inline": ["tslib"] } }
//
// A truthy flat key always wins over the nested form.
package meta

import (
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/manifest"
)

// DefaultNamespace is the reserved manifest key holding tool settings.
const DefaultNamespace = "starbeam"

// Accessor resolves settings for the package rooted at Root.
type Accessor struct {
	Root      string
	Namespace string
	Manifest  manifest.Value
}

// New creates an accessor; an empty namespace selects DefaultNamespace.
func New(root, namespace string, doc manifest.Value) *Accessor {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Accessor{Root: root, Namespace: namespace, Manifest: doc}
}

// FlatKey is the manifest key used for the flat form of a setting.
func (a *Accessor) FlatKey(key string) string {
	return a.Namespace + ":" + key
}

// Get returns the effective value of a setting, Undefined when unset.
// A namespace value that is present but not an object fails with
// INVALID_METADATA_SHAPE.
func (a *Accessor) Get(key string) (manifest.Value, error) {
	if flat := a.Manifest.Get(a.FlatKey(key)); flat.Truthy() {
		return flat, nil
	}

	nested := a.Manifest.Get(a.Namespace)
	if !nested.Truthy() {
		return manifest.Value{}, nil
	}

	if nested.Kind() == manifest.Object {
		return nested.Get(key), nil
	}

	return manifest.Value{}, a.invalidShape(nested)
}

func (a *Accessor) invalidShape(value manifest.Value) error {
	got := value.String()
	if value.Kind() == manifest.Array {
		got = "an array"
	}
	return errors.Newf(errors.ErrInvalidMetadata,
		"Invalid value for the %s key (expected an object, got %s) at %s", a.Namespace, got, a.Root).
		WithDetail("root", a.Root).
		WithDetail("value", value.String())
}

// Map selects a setting like Get and passes it through transform, including
// when the setting is Undefined.
func Map[T any](a *Accessor, key string, transform func(manifest.Value) (T, error)) (T, error) {
	value, err := a.Get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return transform(value)
}
