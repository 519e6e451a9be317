package hints

// ForBrowserConnect tests use t.Setenv and swap IsInContainer, so they do
// not run in parallel.

import (
	"strings"
	"testing"
)

func TestForBrowserConnect_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserConnect()

	for _, want := range []string{"hint:", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN", "--verify"} {
		if !strings.Contains(hint, want) {
			t.Errorf("ForBrowserConnect() = %q, want to contain %q", hint, want)
		}
	}
}

func TestForBrowserConnect_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	if hint := ForBrowserConnect(); !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Errorf("ForBrowserConnect() = %q, want ROD_NO_SANDBOX suggestion", hint)
	}
}

func TestForBrowserConnect_AlreadyConfigured(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForBrowserConnect()
	if strings.Contains(hint, "ROD_NO_SANDBOX") || strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("ForBrowserConnect() = %q, should not repeat configured variables", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paths []string
		want  string
		not   string
	}{
		{
			name:  "suggests user config path",
			paths: []string{"summary.yaml", "/home/u/.config/go-websummary/summary.yaml"},
			want:  "create /home/u/.config/go-websummary/summary.yaml",
		},
		{
			name:  "windows separators",
			paths: []string{`C:\Users\u\.config\go-websummary\summary.yaml`},
			want:  "or create",
		},
		{
			name:  "local paths only",
			paths: []string{"summary.yaml"},
			want:  "--config",
			not:   "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.paths)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ForConfigNotFound() = %q, want to contain %q", got, tt.want)
			}
			if tt.not != "" && strings.Contains(got, tt.not) {
				t.Errorf("ForConfigNotFound() = %q, should not contain %q", got, tt.not)
			}
		})
	}
}

func TestForResourceNotFound(t *testing.T) {
	t.Parallel()

	if got := ForResourceNotFound(nil); !strings.Contains(got, "--search-path") {
		t.Errorf("ForResourceNotFound(nil) = %q, want --search-path", got)
	}
	got := ForResourceNotFound([]string{"/a", "/b"})
	if !strings.Contains(got, "/a, /b") {
		t.Errorf("ForResourceNotFound() = %q, want roots listed", got)
	}
}

func TestForSizeBudget(t *testing.T) {
	t.Parallel()

	got := ForSizeBudget(11<<20, 10<<20)
	for _, want := range []string{"hint:", "--ceiling", "--warn-size", "10.0 MiB"} {
		if !strings.Contains(got, want) {
			t.Errorf("ForSizeBudget() = %q, want to contain %q", got, want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q, want %q", got, "\n  hint: a; b")
	}
	if got := ForUnresolvedSlot(); !strings.Contains(got, "--no-strict") {
		t.Errorf("ForUnresolvedSlot() = %q, want --no-strict", got)
	}
	if got := ForOutputDirectory(); !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("ForOutputDirectory() = %q, want hint prefix", got)
	}
}
