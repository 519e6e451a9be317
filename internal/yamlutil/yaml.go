// Package yamlutil wraps YAML parsing for configuration files and YAML
// data payloads, keeping the YAML library behind one import.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxConfigSize limits configuration input (1MB).
var MaxConfigSize = 1 << 20

// MaxDataSize limits YAML data payloads (64MB). The size budget applies
// to the assembled document later; this only bounds parser memory.
var MaxDataSize = 64 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkSize(data []byte, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	return nil
}

// UnmarshalStrict decodes configuration YAML into v, rejecting unknown
// fields so a misspelled key fails loudly instead of being ignored.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkSize(data, MaxConfigSize); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ToJSON converts a YAML data payload to JSON text, keeping mapping order.
func ToJSON(data []byte) ([]byte, error) {
	if err := checkSize(data, MaxDataSize); err != nil {
		return nil, err
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
