// Package hints appends actionable advice to CLI error messages.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for verifier browser launch failures.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or drop --verify")

	return formatHints(hints)
}

// ForConfigNotFound suggests --config or creating the user config file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), ".config/go-websummary") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForResourceNotFound lists the search roots that were tried.
func ForResourceNotFound(roots []string) string {
	if len(roots) == 0 {
		return format("add a resource directory with --search-path")
	}
	return format("searched " + strings.Join(roots, ", ") + "; add a directory with --search-path")
}

// ForSizeBudget suggests raising the ceiling or downgrading the check.
func ForSizeBudget(size, ceiling int64) string {
	return format("document is " + budget.FormatBytes(size) + " against " + budget.FormatBytes(ceiling) +
		"; raise --ceiling, pass --warn-size, or bind minified resources")
}

// ForUnresolvedSlot suggests binding the slot or relaxing strict mode.
func ForUnresolvedSlot() string {
	return format("bind the slot in the config slots list, or pass --no-strict to drop it")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// slashPath normalizes separators so Windows paths match too.
func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
