// Package config handles configuration management for pkgbundle.
// It layers the embedded defaults, a workspace .pkgbundle.toml, PKGBUNDLE_
// environment variables, and command-line overrides.
package config
