// Package ui renders command results in the supported output formats.
//
// Structured formats (JSON, YAML, TOML) serialize the result as is. Text
// formats lay results out for reading, with lipgloss styling on terminals.
package ui

import (
	"fmt"
	"io"
	"os"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders one of the result types of this package.
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file, and falls back to
// FormatText for other writers.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTextRenderer(output, true), nil
	case FormatText:
		return newTextRenderer(output, false), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	case FormatYAML:
		return newYAMLRenderer(output), nil
	case FormatTOML:
		return newTOMLRenderer(output), nil
	case FormatJUnit:
		return newJUnitRenderer(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
