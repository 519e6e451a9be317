package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/alnah/go-websummary/internal/slots"
)

// Sentinel errors for data embedding.
var (
	ErrSerialization       = errors.New("payload serialization failed")
	ErrInvalidVariableName = errors.New("invalid data variable name")
)

// DefaultVariable is the global the payload is assigned to by default.
const DefaultVariable = "data"

// identPattern accepts plain ES3 identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reservedWords cannot be used as the data variable.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true,
}

// ValidateVariableName checks name is a usable global identifier.
func ValidateVariableName(name string) error {
	if !identPattern.MatchString(name) || reservedWords[name] {
		return fmt.Errorf("%w: %q", ErrInvalidVariableName, name)
	}
	return nil
}

// EncodeData serializes v as JSON that is safe inside a <script> element.
// "<", ">" and "&" become \u003c, \u003e and \u0026; U+2028 and U+2029 are
// escaped as well. Map keys are sorted. NaN and infinities are rejected.
func EncodeData(v any) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}

// EncodeRawJSON validates and compacts an already-serialized payload and
// applies the same HTML-safe escaping as EncodeData. Key order and number
// text are preserved exactly.
func EncodeRawJSON(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrSerialization)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	var out bytes.Buffer
	out.Grow(compact.Len())
	json.HTMLEscape(&out, compact.Bytes())
	return out.Bytes(), nil
}

// Assignment returns the statement "window.NAME = JSON;".
// jsonData must come from EncodeData or EncodeRawJSON.
func Assignment(name string, jsonData []byte) (string, error) {
	if err := ValidateVariableName(name); err != nil {
		return "", err
	}
	return "window." + name + " = " + string(jsonData) + ";", nil
}

// EmbedData returns v as "<script>window.NAME = JSON;</script>".
func EmbedData(v any, name string) (string, error) {
	data, err := EncodeData(v)
	if err != nil {
		return "", err
	}
	stmt, err := Assignment(name, data)
	if err != nil {
		return "", err
	}
	return slots.Render(slots.KindData, stmt)
}
