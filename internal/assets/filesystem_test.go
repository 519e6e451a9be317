package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, filePath, "test")

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("loads existing resource", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, "websummary.min.js"), "console.log(1)")

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		res, err := loader.Resolve("websummary.min.js")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if string(res.Content) != "console.log(1)" {
			t.Errorf("Resolve() content = %q, want %q", res.Content, "console.log(1)")
		}
		if res.Path == "" {
			t.Error("Resolve() should record the file path")
		}
	})

	t.Run("loads from sub-directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, "vendor", "plot.js"), "plot()")

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		res, err := loader.Resolve("vendor/plot.js")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if string(res.Content) != "plot()" {
			t.Errorf("Resolve() content = %q", res.Content)
		}
	})

	t.Run("returns ErrResourceNotFound for nonexistent", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.Resolve("missing.js")
		if !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("Resolve() error = %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("directory is not a resource", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(tmpDir, "vendor"), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.Resolve("vendor")
		if !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("Resolve() error = %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("returns ErrInvalidAssetName for invalid name", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		for _, name := range []string{"", "../secret", "..\\secret", "/etc/passwd"} {
			_, err := loader.Resolve(name)
			if !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("Resolve(%q) error = %v, want ErrInvalidAssetName", name, err)
			}
		}
	})
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	t.Run("rejects symlink escape attempt", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		secretFile := filepath.Join(t.TempDir(), "secret.js")
		writeFile(t, secretFile, "secret content")

		if err := os.Symlink(secretFile, filepath.Join(tmpDir, "evil.js")); err != nil {
			t.Skipf("symlink creation not supported: %v", err)
		}

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.Resolve("evil.js")
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("Resolve() with symlink escape error = %v, want ErrPathTraversal", err)
		}
	})
}

func TestFilesystemLoader_ImplementsComponentSource(t *testing.T) {
	t.Parallel()
	var _ ComponentSource = (*FilesystemLoader)(nil)
}
