package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
)

// WriteLayout encodes p as an indented [layout.Document] and writes it to w.
// The output can be decoded again with [layout.Unmarshal].
func WriteLayout(w io.Writer, p layout.Positioned) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil layout")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layout.Wrap(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s layout", p.Kind())
	}
	return nil
}

// ExportLayout writes p to a JSON file at path.
func ExportLayout(p layout.Positioned, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteLayout(f, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

// WriteConfig encodes cfg in the given format.
func WriteConfig(w io.Writer, cfg layout.Config, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(cfg); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(cfg)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s config", format)
	}
	return nil
}
