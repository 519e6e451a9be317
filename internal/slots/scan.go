package slots

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Sentinel errors for skeleton scanning.
var (
	ErrInvalidSlotName   = errors.New("invalid slot name")
	ErrMalformedAnchor   = errors.New("malformed slot anchor")
	ErrOverlappingSlots  = errors.New("overlapping slot regions")
	ErrMalformedTemplate = errors.New("malformed template")
)

// markerPrefix starts a slot marker comment body.
const markerPrefix = "SLOT:"

// anchorAttr marks a <script> or <link> element for inlining.
const anchorAttr = "data-inline"

// markerNamePattern restricts marker names.
var markerNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Slot is one slot declaration found in a skeleton.
// Start and End are byte offsets of the declaration: skeleton[Start:End].
type Slot struct {
	Name   string
	Kind   Kind // KindUnset for markers; anchors carry their own kind
	Start  int
	End    int
	Anchor bool
}

// Scan returns every slot declared in the skeleton, in document order.
// Duplicate names are returned as separate entries; Substitute decides
// whether they are an error. Overlapping regions are always an error.
func Scan(skeleton string) ([]Slot, error) {
	z := html.NewTokenizer(strings.NewReader(skeleton))
	var (
		found  []Slot
		offset int
		open   *Slot // anchor <script> waiting for its end tag
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, z.Err())
		}

		raw := len(z.Raw())
		start := offset
		offset += raw
		tok := z.Token()

		if open != nil {
			switch {
			case tt == html.EndTagToken && tok.Data == "script":
				open.End = offset
				found = append(found, *open)
				open = nil
			case tt == html.TextToken && strings.TrimSpace(tok.Data) == "":
				// whitespace between anchor tags
			default:
				return nil, fmt.Errorf("%w: <script %s=%q> must be empty", ErrMalformedAnchor, anchorAttr, open.Name)
			}
			continue
		}

		switch tt {
		case html.CommentToken:
			body := strings.TrimSpace(tok.Data)
			if !strings.HasPrefix(body, markerPrefix) {
				continue
			}
			name := strings.TrimSpace(strings.TrimPrefix(body, markerPrefix))
			if !markerNamePattern.MatchString(name) {
				return nil, fmt.Errorf("%w: %q at byte %d", ErrInvalidSlotName, name, start)
			}
			found = append(found, Slot{Name: name, Start: start, End: offset})

		case html.StartTagToken, html.SelfClosingTagToken:
			slot, ok, err := anchorSlot(tok, tt, start, offset)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if slot.Kind == KindScript && tt == html.StartTagToken {
				open = &slot
				continue
			}
			found = append(found, slot)
		}
	}

	if open != nil {
		return nil, fmt.Errorf("%w: <script %s src=%q> is never closed", ErrMalformedAnchor, anchorAttr, open.Name)
	}
	if err := checkOverlap(found); err != nil {
		return nil, err
	}
	return found, nil
}

// anchorSlot reports whether tok is an inlining anchor and builds its slot.
func anchorSlot(tok html.Token, tt html.TokenType, start, end int) (Slot, bool, error) {
	if tok.Data != "script" && tok.Data != "link" {
		return Slot{}, false, nil
	}
	if _, ok := attr(tok, anchorAttr); !ok {
		return Slot{}, false, nil
	}

	slot := Slot{Start: start, End: end, Anchor: true}
	switch tok.Data {
	case "script":
		src, ok := attr(tok, "src")
		if !ok || src == "" {
			return Slot{}, false, fmt.Errorf("%w: <script %s> needs a src attribute", ErrMalformedAnchor, anchorAttr)
		}
		slot.Name, slot.Kind = src, KindScript
		if tt == html.SelfClosingTagToken {
			return slot, true, nil
		}
	case "link":
		href, ok := attr(tok, "href")
		if !ok || href == "" {
			return Slot{}, false, fmt.Errorf("%w: <link %s> needs an href attribute", ErrMalformedAnchor, anchorAttr)
		}
		slot.Name, slot.Kind = href, KindStyle
	}
	return slot, true, nil
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// checkOverlap confirms slot regions are disjoint and ordered.
func checkOverlap(found []Slot) error {
	for i := 1; i < len(found); i++ {
		if found[i].Start < found[i-1].End {
			return fmt.Errorf("%w: %q and %q", ErrOverlappingSlots, found[i-1].Name, found[i].Name)
		}
	}
	return nil
}

// Names returns the distinct slot names in first-declaration order.
func Names(found []Slot) []string {
	seen := make(map[string]bool, len(found))
	var names []string
	for _, s := range found {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}
