package websummary

import (
	"encoding/json"

	"github.com/alnah/go-websummary/internal/pipeline"
)

// ExtractData returns the payload embedded as window.<variable> in an
// assembled document. Decoding it yields a value equal to the one that was
// embedded.
func ExtractData(document []byte, variable string) (json.RawMessage, error) {
	return pipeline.ExtractData(string(document), variable)
}
