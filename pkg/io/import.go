package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
)

// ReadDiagram decodes a diagram document from r and returns the diagram it
// selects.
//
// TOML is not accepted for diagrams: the nested node and edge lists read
// poorly as TOML tables. ReadDiagram does not close r.
func ReadDiagram(r io.Reader, format Format) (diagram.Diagram, error) {
	var doc diagram.Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram JSON")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram YAML")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "diagrams are read from json or yaml, not %q", format)
	}
	return doc.Diagram()
}

// ImportDiagram reads the diagram file at path. The format follows the file
// extension.
func ImportDiagram(path string) (diagram.Diagram, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadDiagram(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return d, nil
}

// ReadConfig decodes a configuration overlay from r.
//
// The theme key, when present, selects the base preset; every other key
// overrides the matching field. Unknown keys and invalid values return an
// INVALID_CONFIG error.
func ReadConfig(r io.Reader, format Format) (layout.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	var head struct {
		Theme string `json:"theme" toml:"theme" yaml:"theme"`
	}
	if err := decodeConfig(data, format, &head, false); err != nil {
		return layout.Config{}, err
	}

	cfg, err := layout.Preset(head.Theme)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	if err := decodeConfig(data, format, &cfg, true); err != nil {
		return layout.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// ImportConfig reads the configuration file at path. The format follows the
// file extension.
func ImportConfig(path string) (layout.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return layout.Config{}, err
	}
	f, err := open(path)
	if err != nil {
		return layout.Config{}, err
	}
	defer f.Close()

	cfg, err := ReadConfig(f, format)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return cfg, nil
}

// decodeConfig decodes data into v. In strict mode unknown keys are errors.
func decodeConfig(data []byte, format Format, v any, strict bool) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode TOML config")
		}
		if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode YAML config")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode JSON config")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
