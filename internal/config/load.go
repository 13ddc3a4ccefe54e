package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads path and returns the validated configuration. Fields absent from
// the file keep their Default values. The format follows the extension:
// .hcl is HCL, anything else is YAML (which covers JSON).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		raw, err = parseHCL(data, path)
	default:
		raw, err = parseYAML(data)
	}
	if err != nil {
		return Config{}, err
	}
	return FromMap(raw)
}

// FromMap decodes raw over Default and validates the result.
func FromMap(raw map[string]any) (Config, error) {
	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseYAML(data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
