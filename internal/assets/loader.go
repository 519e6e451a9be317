package assets

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Resource is a named asset resolved for one assembly run.
// Content is owned by the caller once returned and must not be mutated.
type Resource struct {
	Name    string // Logical name as requested
	Path    string // Location it was read from ("" for in-memory sources)
	Content []byte
}

// Ext returns the lower-cased extension of the resource name, without the dot.
func (r *Resource) Ext() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(r.Name)), ".")
}

// ComponentSource resolves resources by logical name.
// Implementations may read from disk, memory, or a build toolchain.
type ComponentSource interface {
	// Resolve returns the named resource.
	// Returns ErrResourceNotFound if it doesn't exist.
	// Returns ErrInvalidAssetName if the name is unsafe.
	Resolve(name string) (*Resource, error)
}

// MapSource is an in-memory ComponentSource keyed by resource name.
type MapSource map[string][]byte

// Resolve returns a copy of the named entry.
func (m MapSource) Resolve(name string) (*Resource, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	return &Resource{Name: name, Content: buf}, nil
}

// Names lists the entries in sorted order.
func (m MapSource) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ ComponentSource = MapSource(nil)
