package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Sentinel errors for payload extraction.
var (
	ErrDataNotFound  = errors.New("data assignment not found")
	ErrAmbiguousData = errors.New("data assigned more than once")
)

// ExtractData returns the JSON assigned to window.NAME in a finished document.
// Exactly one <script> element must hold the assignment.
func ExtractData(document string, name string) (json.RawMessage, error) {
	if err := ValidateVariableName(name); err != nil {
		return nil, err
	}
	prefix := "window." + name + " = "

	z := html.NewTokenizer(strings.NewReader(document))
	var (
		inScript bool
		found    []string
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrDataNotFound, z.Err())
		}
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if !inScript {
				continue
			}
			text := strings.TrimSpace(string(z.Text()))
			if strings.HasPrefix(text, prefix) && strings.HasSuffix(text, ";") {
				found = append(found, strings.TrimSuffix(strings.TrimPrefix(text, prefix), ";"))
			}
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: window.%s", ErrDataNotFound, name)
	case 1:
	default:
		return nil, fmt.Errorf("%w: window.%s appears %d times", ErrAmbiguousData, name, len(found))
	}

	raw := json.RawMessage(found[0])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: assignment is not valid JSON", ErrSerialization)
	}
	return raw, nil
}
