package config

import (
	"bytes"
	"io"

	"github.com/a8m/envsubst"
	"github.com/edaniels/golog"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Read reads a scenario from the given file. Environment variables in the file are expanded
// first.
func Read(filePath string, logger golog.Logger) (*Scenario, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a YAML or JSON scenario from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger golog.Logger) (*Scenario, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// YAML is a superset of JSON, so one parser handles both.
	var attributes map[string]interface{}
	if err := yaml.Unmarshal(buf, &attributes); err != nil {
		return nil, errors.Wrapf(err, "failed to parse scenario %q", originalPath)
	}

	var s Scenario
	if err := decode(attributes, &s); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scenario %q", originalPath)
	}
	s.applyDefaults()
	if err := s.Validate(originalPath); err != nil {
		return nil, err
	}
	logger.Debugw("read scenario", "path", originalPath, "links", []float64(s.Links))
	return &s, nil
}

func decode(attributes map[string]interface{}, s *Scenario) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(attributes)
}
