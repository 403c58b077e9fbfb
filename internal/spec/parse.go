package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig indicates a config file without a YAML document.
var ErrEmptyConfig = errors.New("config is empty")

// ParseConfig decodes exactly one YAML document and rejects unknown fields.
func ParseConfig(data []byte) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("parse config: %w", ErrEmptyConfig)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: %w", ErrEmptyConfig)
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var extra yaml.Node
	switch err := decoder.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("parse config: %w", err)
	default:
		return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
	}
}
