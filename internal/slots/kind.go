package slots

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind indicates a slot kind outside the four supported kinds.
var ErrUnknownKind = errors.New("unknown slot kind")

// Kind determines how resolved content is serialized into the document.
type Kind int

const (
	// KindUnset means the kind is inherited from the slot declaration.
	KindUnset Kind = iota
	// KindScript wraps content in <script>…</script>.
	KindScript
	// KindStyle wraps content in <style>…</style>.
	KindStyle
	// KindData wraps an already-serialized data assignment in <script>…</script>.
	KindData
	// KindHTML inserts content verbatim.
	KindHTML
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindStyle:
		return "style"
	case KindData:
		return "data"
	case KindHTML:
		return "html"
	case KindUnset:
		return "unset"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name. Both the short form ("script") and the
// long form ("inline-script", "raw-html") are accepted, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "script", "inline-script", "js":
		return KindScript, nil
	case "style", "inline-style", "css":
		return KindStyle, nil
	case "data", "inline-data", "json":
		return KindData, nil
	case "html", "raw-html":
		return KindHTML, nil
	default:
		return KindUnset, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindForExtension infers a kind from a resource extension (without dot).
// Returns KindUnset when the extension carries no kind.
func KindForExtension(ext string) Kind {
	switch strings.ToLower(ext) {
	case "js", "mjs":
		return KindScript
	case "css":
		return KindStyle
	case "json", "yaml", "yml":
		return KindData
	case "html", "htm", "md", "markdown":
		return KindHTML
	default:
		return KindUnset
	}
}
