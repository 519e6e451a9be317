package websummary

import (
	"github.com/alnah/go-websummary/internal/assets"
	"github.com/alnah/go-websummary/internal/slots"
)

// Resource is a named asset returned by a ComponentSource.
type Resource = assets.Resource

// ComponentSource resolves resources by logical name. It is the seam for
// swapping the filesystem for a build toolchain or a test double.
type ComponentSource = assets.ComponentSource

// MapSource is an in-memory ComponentSource keyed by resource name.
type MapSource = assets.MapSource

// Kind selects how bound content is rendered into its slot.
type Kind = slots.Kind

// Slot kinds.
const (
	KindUnset  = slots.KindUnset  // Inferred from the resource extension or anchor
	KindScript = slots.KindScript // <script>…</script>
	KindStyle  = slots.KindStyle  // <style>…</style>
	KindData   = slots.KindData   // <script>window.NAME = JSON;</script>
	KindHTML   = slots.KindHTML   // Verbatim markup
)

// ParseKind parses a kind name such as "script", "inline-style" or "raw-html".
func ParseKind(s string) (Kind, error) {
	return slots.ParseKind(s)
}

// Reserved slot names filled from Input fields.
const (
	DataSlot    = "data"
	SummarySlot = "summary"
)

// Binding fills one slot from a named resource or from literal content.
type Binding struct {
	Slot     string
	Kind     Kind   // KindUnset infers from the resource extension
	Resource string // Resolved through the component source
	Content  string // Literal content, used when Resource is empty
	Minified string // Smaller resource tried once when the document is over budget
}

// Input holds everything for one assembly. At most one of Data, DataJSON
// and DataYAML may be set; the payload fills the "data" slot.
type Input struct {
	// Template is the skeleton markup. Empty loads template.html from
	// TemplateDir, falling back to the embedded default skeleton.
	Template    string
	TemplateDir string // Also the root for [[ include FILE ]] directives

	Data     any    // Encoded with sorted map keys
	DataJSON []byte // Compacted, key order preserved
	DataYAML []byte // Converted to JSON, key order preserved

	Bindings []Binding

	// Summary is the body bound to the "summary" slot as raw HTML.
	Summary         string
	SummaryMarkdown bool   // Render Summary from Markdown first
	SourceDir       string // Root for relative <img> sources (default TemplateDir)
}

// hasData reports whether any payload field is set.
func (in Input) hasData() bool {
	return in.Data != nil || in.DataJSON != nil || in.DataYAML != nil
}

// Result is a successfully assembled document.
type Result struct {
	HTML []byte
	Size int64
	// SlotSizes holds the rendered byte contribution of each slot.
	SlotSizes map[string]int
	// Warnings lists non-fatal findings (relaxed slots, unused bindings,
	// a size overrun in warn mode) in a stable order.
	Warnings     []string
	UsedMinified bool
}
