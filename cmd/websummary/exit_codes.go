package main

import (
	"errors"
	"os"

	websummary "github.com/alnah/go-websummary"
	"github.com/alnah/go-websummary/internal/config"
	"github.com/alnah/go-websummary/internal/dateutil"
	"github.com/alnah/go-websummary/internal/logger"
)

// Exit codes for the websummary CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Summary written
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or input shape
	ExitIO       = 3 // File not found, permission denied, missing resource
	ExitBrowser  = 4 // Verification browser errors or failed checks
	ExitAssembly = 5 // Slot, serialization, or size budget errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, websummary.ErrBrowserConnect) ||
		errors.Is(err, websummary.ErrPageCreate) ||
		errors.Is(err, websummary.ErrPageLoad) ||
		errors.Is(err, websummary.ErrVerificationSetup) ||
		errors.Is(err, ErrVerificationFailed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, websummary.ErrResourceNotFound) ||
		errors.Is(err, websummary.ErrAssetRead) ||
		errors.Is(err, websummary.ErrInvalidBasePath) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, logger.ErrInvalidLevel) ||
		errors.Is(err, logger.ErrInvalidFormat) ||
		errors.Is(err, websummary.ErrInvalidAssetName) ||
		errors.Is(err, websummary.ErrPathTraversal) ||
		errors.Is(err, websummary.ErrInvalidVariableName) ||
		errors.Is(err, websummary.ErrConflictingData) ||
		errors.Is(err, websummary.ErrDuplicateBinding) ||
		errors.Is(err, websummary.ErrMissingBinding) ||
		errors.Is(err, websummary.ErrIncludeWithoutRoot) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedData) {
		return ExitUsage
	}

	// Assembly errors (exit 5)
	if errors.Is(err, websummary.ErrUnresolvedSlot) ||
		errors.Is(err, websummary.ErrDuplicateSlot) ||
		errors.Is(err, websummary.ErrResidualSlot) ||
		errors.Is(err, websummary.ErrKindMismatch) ||
		errors.Is(err, websummary.ErrUnknownKind) ||
		errors.Is(err, websummary.ErrMalformedAnchor) ||
		errors.Is(err, websummary.ErrMalformedTemplate) ||
		errors.Is(err, websummary.ErrInvalidSlotName) ||
		errors.Is(err, websummary.ErrOverlappingSlots) ||
		errors.Is(err, websummary.ErrSerialization) ||
		errors.Is(err, websummary.ErrSizeBudgetExceeded) ||
		errors.Is(err, websummary.ErrIncludeDepth) ||
		errors.Is(err, websummary.ErrSummaryRender) ||
		errors.Is(err, websummary.ErrUnsupportedImage) ||
		errors.Is(err, websummary.ErrEmptyTemplate) ||
		errors.Is(err, websummary.ErrDataNotFound) ||
		errors.Is(err, websummary.ErrAmbiguousData) ||
		errors.Is(err, ErrPathNotFound) {
		return ExitAssembly
	}

	return ExitGeneral
}
