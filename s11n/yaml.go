package s11n

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlEncoder struct {
	w     io.Writer
	width int
}

func newYAMLEncoder(w io.Writer, cfg *encoderConfig) Encoder {
	width := cfg.width
	if width == 0 {
		width = 2
	}
	return &yamlEncoder{w: w, width: width}
}

// Encode writes v as its own document, starting with a --- marker.
func (e *yamlEncoder) Encode(v any) error {
	if _, err := io.WriteString(e.w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(e.width)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
