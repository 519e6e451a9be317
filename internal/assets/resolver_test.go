package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewResolver(t *testing.T) {
	t.Parallel()

	t.Run("no roots is valid", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver(nil)
		if err != nil {
			t.Fatalf("NewResolver(nil) error = %v", err)
		}
		if len(r.Roots()) != 0 {
			t.Errorf("Roots() = %v, want empty", r.Roots())
		}
	})

	t.Run("invalid root returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewResolver([]string{t.TempDir(), "/nonexistent/path/abc123xyz"})
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "styles.css"), "first")
	writeFile(t, filepath.Join(second, "styles.css"), "second")
	writeFile(t, filepath.Join(second, "lib.js"), "lib")

	r, err := NewResolver([]string{first, second})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	t.Run("first matching root wins", func(t *testing.T) {
		t.Parallel()

		res, err := r.Resolve("styles.css")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if string(res.Content) != "first" {
			t.Errorf("Resolve() content = %q, want %q", res.Content, "first")
		}
	})

	t.Run("falls through to later root", func(t *testing.T) {
		t.Parallel()

		res, err := r.Resolve("lib.js")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if string(res.Content) != "lib" {
			t.Errorf("Resolve() content = %q, want %q", res.Content, "lib")
		}
	})

	t.Run("missing everywhere lists roots", func(t *testing.T) {
		t.Parallel()

		_, err := r.Resolve("missing.js")
		if !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("Resolve() error = %v, want ErrResourceNotFound", err)
		}
		for _, root := range r.Roots() {
			if !strings.Contains(err.Error(), root) {
				t.Errorf("error %q should mention root %q", err, root)
			}
		}
	})

	t.Run("invalid name stops resolution", func(t *testing.T) {
		t.Parallel()

		_, err := r.Resolve("../styles.css")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("Resolve() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestResolver_NoRoots(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	_, err = r.Resolve("lib.js")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Resolve() error = %v, want ErrResourceNotFound", err)
	}
}

func TestResolver_BundledComponents(t *testing.T) {
	t.Parallel()

	t.Run("bundle answers when no root has the name", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver(nil)
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		res, err := r.Resolve("websummary.js")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !strings.Contains(string(res.Content), "window.data") {
			t.Errorf("Resolve() content = %q, want the bundled script", res.Content)
		}
		if res.Path != "" {
			t.Errorf("Resolve() path = %q, want empty for bundled content", res.Path)
		}
	})

	t.Run("root shadows the bundle", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "websummary.css"), "body{color:red}")
		r, err := NewResolver([]string{root})
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		res, err := r.Resolve("websummary.css")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if string(res.Content) != "body{color:red}" {
			t.Errorf("Resolve() content = %q, want the root's file", res.Content)
		}
	})
}
