package slots

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for substitution.
var (
	ErrUnresolvedSlot = errors.New("unresolved slot")
	ErrDuplicateSlot  = errors.New("duplicate slot")
	ErrResidualSlot   = errors.New("slot declaration left in document")
	ErrKindMismatch   = errors.New("binding kind does not match anchor")
)

// Binding is the content bound to one slot name.
// Kind may be KindUnset for anchors, which carry their own kind.
type Binding struct {
	Kind    Kind
	Content string
}

// Options controls substitution strictness.
type Options struct {
	// Strict turns unresolved and duplicate slots into errors.
	// When false they are reported as warnings: unresolved slots are
	// removed and every duplicate receives the same content.
	Strict bool
}

// Result is a substituted document plus diagnostics.
type Result struct {
	Document string
	// Sizes holds the rendered byte size of each slot, by name.
	Sizes map[string]int
	// Warnings lists non-fatal findings in a stable order.
	Warnings []string
}

// Substitute replaces every slot in skeleton with its rendered binding.
// The skeleton is scanned once; rendered content is copied out without
// being scanned, so it cannot declare further slots.
func Substitute(skeleton string, bindings map[string]Binding, opts Options) (*Result, error) {
	found, err := Scan(skeleton)
	if err != nil {
		return nil, err
	}

	res := &Result{Sizes: make(map[string]int, len(found))}

	if dups := duplicates(found); len(dups) > 0 {
		if opts.Strict {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, quoteAll(dups))
		}
		for _, name := range dups {
			res.Warnings = append(res.Warnings, fmt.Sprintf("slot %q declared more than once", name))
		}
	}

	var missing []string
	for _, name := range Names(found) {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		if opts.Strict {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedSlot, quoteAll(missing))
		}
		for _, name := range missing {
			res.Warnings = append(res.Warnings, fmt.Sprintf("slot %q has no content, removed", name))
		}
	}

	// Each declaration renders with its own kind, so a name shared by a
	// script anchor and a stylesheet anchor gets the right wrapper at each.
	type renderKey struct {
		name string
		kind Kind
	}
	cache := make(map[renderKey]string, len(found))
	pieces := make([]string, len(found))
	for i, s := range found {
		b, ok := bindings[s.Name]
		if !ok {
			continue
		}
		if s.Anchor && b.Kind != KindUnset && b.Kind != s.Kind {
			return nil, fmt.Errorf("%w: slot %q is a %s anchor, bound as %s", ErrKindMismatch, s.Name, s.Kind, b.Kind)
		}
		kind := b.Kind
		if kind == KindUnset {
			kind = s.Kind
		}
		key := renderKey{s.Name, kind}
		out, done := cache[key]
		if !done {
			var err error
			if out, err = Render(kind, b.Content); err != nil {
				return nil, fmt.Errorf("slot %q: %w", s.Name, err)
			}
			cache[key] = out
		}
		pieces[i] = out
		if _, seen := res.Sizes[s.Name]; !seen {
			res.Sizes[s.Name] = len(out)
		}
	}

	var buf strings.Builder
	buf.Grow(len(skeleton) + totalSize(found, pieces))
	last := 0
	for i, s := range found {
		buf.WriteString(skeleton[last:s.Start])
		buf.WriteString(pieces[i])
		last = s.End
	}
	buf.WriteString(skeleton[last:])
	res.Document = buf.String()

	declared := make(map[string]bool, len(found))
	for _, s := range found {
		declared[s.Name] = true
	}
	var unused []string
	for name := range bindings {
		if !declared[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		res.Warnings = append(res.Warnings, fmt.Sprintf("binding %q matches no slot", name))
	}

	return res, nil
}

// CheckResidual fails with ErrResidualSlot if the document still declares slots,
// for instance inside raw HTML content.
func CheckResidual(document string) error {
	found, err := Scan(document)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return fmt.Errorf("%w: %s", ErrResidualSlot, quoteAll(Names(found)))
	}
	return nil
}

func duplicates(found []Slot) []string {
	count := make(map[string]int, len(found))
	var dups []string
	for _, s := range found {
		count[s.Name]++
		if count[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}

func totalSize(found []Slot, pieces []string) int {
	n := 0
	for i, s := range found {
		n += len(pieces[i]) - (s.End - s.Start)
	}
	if n < 0 {
		return 0
	}
	return n
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
