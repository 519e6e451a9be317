package slots

import (
	"fmt"
	"regexp"
	"strings"
)

// scriptClosePattern matches sequences that end or re-enter script data states.
var scriptClosePattern = regexp.MustCompile(`(?i)</script|<!--`)

// Render serializes content for the given kind.
// Every kind has exactly one rendering; unknown kinds are an error.
func Render(kind Kind, content string) (string, error) {
	switch kind {
	case KindScript, KindData:
		return "<script>" + EscapeScript(content) + "</script>", nil
	case KindStyle:
		return "<style>" + EscapeStyle(content) + "</style>", nil
	case KindHTML:
		return content, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// EscapeScript rewrites "</script" as "<\/script" and "<!--" as "<\!--"
// (any case), so inline code can neither close its element early nor enter
// the escaped script data state. Both rewrites are no-ops inside JavaScript
// string, template and regular-expression literals.
func EscapeScript(code string) string {
	if !strings.Contains(code, "<") {
		return code
	}
	return scriptClosePattern.ReplaceAllStringFunc(code, func(m string) string {
		return m[:1] + `\` + m[1:]
	})
}

// EscapeStyle rewrites every "</" as "<\/" so a stylesheet cannot close
// its <style> element.
func EscapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
