// Package filesystem provides filesystem implementations for pkgbundle.
//
// This package contains implementations of the types.FS interface,
// backed either by the OS or by an afero filesystem (used in tests).
package filesystem
