// Package assets resolves the named resources a web summary inlines:
// component scripts, stylesheets, summary fragments and data files.
//
// # Loader Architecture
//
//	ComponentSource (interface)
//	    │
//	    ├── FilesystemLoader  - loads from one search root on disk
//	    ├── Resolver          - ordered search roots, first match wins
//	    └── MapSource         - in-memory resources (tests, generated blobs)
//
// EmbeddedLoader holds the bundled default skeleton, used when the caller
// supplies no template, and the bundled components it links to
// (websummary.css, websummary.js). Resolver consults the bundle after its
// last root, so a search path can override either component.
//
// # Resolution Order
//
// Search roots are tried in the order they were configured. The first root
// containing the resource wins; later roots and the bundle are never
// consulted for that name.
// Only "not found" falls through to the next root. Validation and I/O errors
// stop resolution immediately.
//
// # Security
//
// Resource names may contain sub-directories ("vendor/plot.min.js") but never
// ".." segments, absolute paths, backslashes or NUL bytes. FilesystemLoader
// resolves symlinks and verifies the final path stays within its root.
package assets
