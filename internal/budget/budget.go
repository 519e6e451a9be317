// Package budget enforces the byte ceiling of an assembled document.
//
// The check runs once, on the complete document: the size of the whole
// can differ from the sum of its parts once wrapping and escaping apply.
package budget

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSizeBudgetExceeded indicates the document is larger than the ceiling.
var ErrSizeBudgetExceeded = errors.New("size budget exceeded")

// ErrInvalidMode indicates an unrecognized enforcement mode name.
var ErrInvalidMode = errors.New("invalid budget mode")

// DefaultCeiling keeps reports small enough for email attachments (10 MiB).
const DefaultCeiling int64 = 10 << 20

// Unlimited disables the check. Any ceiling <= 0 behaves the same.
const Unlimited int64 = 0

// Mode selects what happens when the ceiling is exceeded.
type Mode int

const (
	// ModeFail rejects oversized documents. This is the default.
	ModeFail Mode = iota
	// ModeWarn accepts oversized documents and reports a warning.
	ModeWarn
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == ModeWarn {
		return "warn"
	}
	return "fail"
}

// ParseMode parses "fail" or "warn". Empty selects ModeFail.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return ModeFail, nil
	case "warn":
		return ModeWarn, nil
	default:
		return ModeFail, fmt.Errorf("%w: %q (must be fail or warn)", ErrInvalidMode, s)
	}
}

// ExceededError carries the measured size and the ceiling.
type ExceededError struct {
	Size    int64
	Ceiling int64
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s: document is %s (%d bytes), ceiling is %s (%d bytes), over by %d bytes",
		ErrSizeBudgetExceeded, FormatBytes(e.Size), e.Size, FormatBytes(e.Ceiling), e.Ceiling, e.Size-e.Ceiling)
}

// Unwrap lets errors.Is match ErrSizeBudgetExceeded.
func (e *ExceededError) Unwrap() error {
	return ErrSizeBudgetExceeded
}

// Enforcer checks document sizes against a ceiling.
type Enforcer struct {
	Ceiling int64
	Mode    Mode
}

// New returns an Enforcer. A ceiling <= 0 disables enforcement.
func New(ceiling int64, mode Mode) Enforcer {
	return Enforcer{Ceiling: ceiling, Mode: mode}
}

// Enabled reports whether the ceiling is enforced at all.
func (e Enforcer) Enabled() bool {
	return e.Ceiling > Unlimited
}

// Fits reports whether size is within the ceiling. The boundary is inclusive.
func (e Enforcer) Fits(size int64) bool {
	return !e.Enabled() || size <= e.Ceiling
}

// Check returns nil when size fits. Otherwise it returns an *ExceededError
// in ModeFail, or a warning message in ModeWarn.
func (e Enforcer) Check(size int64) (warning string, err error) {
	if e.Fits(size) {
		return "", nil
	}
	exceeded := &ExceededError{Size: size, Ceiling: e.Ceiling}
	if e.Mode == ModeWarn {
		return exceeded.Error(), nil
	}
	return "", exceeded
}

// FormatBytes renders a byte count with a binary unit, e.g. "9.5 MiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
