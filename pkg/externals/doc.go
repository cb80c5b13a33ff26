// Package externals enforces the externals strictness dimension.
//
// A bundler asks Check about every bare import it leaves external. Imports
// covered by one of the package's inline rules are declared. Relative
// imports and Node.js builtins never need a rule. Anything else is
// undeclared, and the package's strictness level for "externals" decides
// whether that passes silently, logs a warning, or fails.
//
// Audit runs the same check over an esbuild metafile after the fact.
package externals
