package websummary

import (
	"errors"

	"github.com/alnah/go-websummary/internal/assets"
	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/pipeline"
	"github.com/alnah/go-websummary/internal/slots"
)

// Sentinel errors for library operations. Match with errors.Is.
var (
	ErrEmptyTemplate     = errors.New("template skeleton is empty")
	ErrConflictingData   = errors.New("more than one data payload given")
	ErrDuplicateBinding  = errors.New("slot bound more than once")
	ErrMissingBinding    = errors.New("binding needs a resource or content")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrVerificationSetup = errors.New("verification setup failed")
)

// Resource resolution errors.
var (
	ErrResourceNotFound = assets.ErrResourceNotFound
	ErrAssetRead        = assets.ErrAssetRead
	ErrInvalidAssetName = assets.ErrInvalidAssetName
	ErrInvalidBasePath  = assets.ErrInvalidBasePath
	ErrPathTraversal    = assets.ErrPathTraversal
)

// Slot substitution errors.
var (
	ErrUnresolvedSlot    = slots.ErrUnresolvedSlot
	ErrDuplicateSlot     = slots.ErrDuplicateSlot
	ErrResidualSlot      = slots.ErrResidualSlot
	ErrKindMismatch      = slots.ErrKindMismatch
	ErrUnknownKind       = slots.ErrUnknownKind
	ErrMalformedAnchor   = slots.ErrMalformedAnchor
	ErrInvalidSlotName   = slots.ErrInvalidSlotName
	ErrOverlappingSlots  = slots.ErrOverlappingSlots
	ErrMalformedTemplate = slots.ErrMalformedTemplate
)

// Data and summary errors.
var (
	ErrSerialization       = pipeline.ErrSerialization
	ErrInvalidVariableName = pipeline.ErrInvalidVariableName
	ErrIncludeDepth        = pipeline.ErrIncludeDepth
	ErrIncludeWithoutRoot  = pipeline.ErrIncludeWithoutRoot
	ErrSummaryRender       = pipeline.ErrSummaryRender
	ErrUnsupportedImage    = pipeline.ErrUnsupportedImage
	ErrDataNotFound        = pipeline.ErrDataNotFound
	ErrAmbiguousData       = pipeline.ErrAmbiguousData
)

// ErrSizeBudgetExceeded is wrapped by *budget.ExceededError, which carries
// the measured size and the ceiling. Use errors.As with *SizeError.
var ErrSizeBudgetExceeded = budget.ErrSizeBudgetExceeded

// SizeError reports an assembled document over the size ceiling.
type SizeError = budget.ExceededError
