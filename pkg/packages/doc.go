// Package packages builds one immutable Descriptor per package root: its
// name, entry points, dependencies, and resolved bundling settings.
//
// Building is a pure function of the manifest and the files at the root at
// that moment. Descriptors are never cached here; callers that build many
// times keep their own cache (see package workspace).
package packages
