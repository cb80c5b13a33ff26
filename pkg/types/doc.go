// Package types defines interfaces shared across pkgbundle packages.
package types
