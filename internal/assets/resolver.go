package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Resolver searches an ordered list of roots. The first root holding the
// resource wins. Only "not found" falls through to the next root, and
// after the last root to the bundled components.
type Resolver struct {
	roots    []*FilesystemLoader
	embedded *EmbeddedLoader
}

// NewResolver creates a Resolver over the given roots, in order.
// Returns ErrInvalidBasePath if any root is not a readable directory.
func NewResolver(roots []string) (*Resolver, error) {
	r := &Resolver{
		roots:    make([]*FilesystemLoader, 0, len(roots)),
		embedded: NewEmbeddedLoader(),
	}
	for _, root := range roots {
		loader, err := NewFilesystemLoader(root)
		if err != nil {
			return nil, err
		}
		r.roots = append(r.roots, loader)
	}
	return r, nil
}

// Roots returns the absolute search roots in resolution order.
func (r *Resolver) Roots() []string {
	out := make([]string, len(r.roots))
	for i, l := range r.roots {
		out[i] = l.BasePath()
	}
	return out
}

// Resolve returns the resource from the first root that has it, or the
// bundled component of that name. A root always shadows the bundle.
// Returns ErrResourceNotFound naming every root tried when none has it.
func (r *Resolver) Resolve(name string) (*Resource, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	for _, loader := range r.roots {
		res, err := loader.Resolve(name)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrResourceNotFound) {
			return nil, err
		}
	}

	if res, err := r.embedded.Resolve(name); err == nil {
		return res, nil
	}

	if len(r.roots) == 0 {
		return nil, fmt.Errorf("%w: %q (no search paths configured)", ErrResourceNotFound, name)
	}
	return nil, fmt.Errorf("%w: %q (searched %s)", ErrResourceNotFound, name, strings.Join(r.Roots(), ", "))
}

// Compile-time interface check.
var _ ComponentSource = (*Resolver)(nil)
