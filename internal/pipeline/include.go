package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-websummary/internal/assets"
)

// Sentinel errors for include expansion.
var (
	ErrIncludeDepth       = errors.New("include expansion too deep")
	ErrIncludeWithoutRoot = errors.New("include directive without a template directory")
)

// MaxIncludeDepth bounds the number of [[ include FILE ]] expansions in one body.
const MaxIncludeDepth = 100

var includePattern = regexp.MustCompile(`\[\[ include ([a-zA-Z./_\d-]+) \]\]`)

// ExpandIncludes replaces each "[[ include FILE ]]" directive with the
// content of FILE resolved through src. Included files may include
// others; expansion stops with ErrIncludeDepth after maxDepth rounds.
// maxDepth <= 0 means MaxIncludeDepth.
func ExpandIncludes(content string, src assets.ComponentSource, maxDepth int) (string, error) {
	if maxDepth <= 0 {
		maxDepth = MaxIncludeDepth
	}

	for round := 0; ; round++ {
		m := includePattern.FindStringSubmatch(content)
		if m == nil {
			return content, nil
		}
		if round >= maxDepth {
			return "", fmt.Errorf("%w: more than %d expansions", ErrIncludeDepth, maxDepth)
		}
		if src == nil {
			return "", fmt.Errorf("%w: %s", ErrIncludeWithoutRoot, m[0])
		}

		res, err := src.Resolve(m[1])
		if err != nil {
			return "", fmt.Errorf("include %q: %w", m[1], err)
		}
		// Every occurrence of the same directive expands in one round.
		content = strings.ReplaceAll(content, m[0], string(res.Content))
	}
}
