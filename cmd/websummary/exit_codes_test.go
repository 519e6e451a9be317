package main

// Notes:
// - exitCodeFor: we test sentinel errors from every package the CLI
//   surfaces, plus wrapped errors to verify the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	websummary "github.com/alnah/go-websummary"
	"github.com/alnah/go-websummary/internal/config"
	"github.com/alnah/go-websummary/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", websummary.ErrBrowserConnect, ExitBrowser},
		{"page load", websummary.ErrPageLoad, ExitBrowser},
		{"verification failed", ErrVerificationFailed, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("verify: %w", websummary.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"resource not found", websummary.ErrResourceNotFound, ExitIO},
		{"asset read", websummary.ErrAssetRead, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"wrapped resource", fmt.Errorf("slot %q: %w", "script", websummary.ErrResourceNotFound), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"variable name", websummary.ErrInvalidVariableName, ExitUsage},
		{"conflicting data", websummary.ErrConflictingData, ExitUsage},
		{"duplicate binding", websummary.ErrDuplicateBinding, ExitUsage},
		{"include without root", websummary.ErrIncludeWithoutRoot, ExitUsage},
		{"unsupported data", ErrUnsupportedData, ExitUsage},
		{"usage", ErrUsage, ExitUsage},

		// Assembly errors (exit 5)
		{"unresolved slot", websummary.ErrUnresolvedSlot, ExitAssembly},
		{"residual slot", websummary.ErrResidualSlot, ExitAssembly},
		{"serialization", websummary.ErrSerialization, ExitAssembly},
		{"size budget", &websummary.SizeError{Size: 2, Ceiling: 1}, ExitAssembly},
		{"include depth", websummary.ErrIncludeDepth, ExitAssembly},
		{"data not found", websummary.ErrDataNotFound, ExitAssembly},
		{"path not found", ErrPathNotFound, ExitAssembly},

		// General (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitAssembly}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c < 0 || c >= 126 {
			t.Errorf("exit code %d outside 0-125", c)
		}
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must mean success, general, usage")
	}
}
