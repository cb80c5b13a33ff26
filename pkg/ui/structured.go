package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type errorView struct {
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

func viewError(err error) errorView {
	v := errorView{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		v.Code = string(code)
		v.Details = errors.GetErrorDetails(err)
		if len(v.Details) == 0 {
			v.Details = nil
		}
	}
	return v
}

type messageView struct {
	Message string `json:"message" yaml:"message" toml:"message"`
}

// encoderRenderer renders every value through one encode function.
type encoderRenderer struct {
	encode func(v interface{}) error
}

func (r *encoderRenderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *encoderRenderer) RenderError(err error) error {
	return r.encode(viewError(err))
}

func (r *encoderRenderer) RenderMessage(msg string) error {
	return r.encode(messageView{Message: msg})
}

func newJSONRenderer(output io.Writer) Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &encoderRenderer{encode: encoder.Encode}
}

func newYAMLRenderer(output io.Writer) Renderer {
	return &encoderRenderer{encode: func(v interface{}) error {
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}}
}

func newTOMLRenderer(output io.Writer) Renderer {
	return &encoderRenderer{encode: func(v interface{}) error {
		return toml.NewEncoder(output).Encode(v)
	}}
}
