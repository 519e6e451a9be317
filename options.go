package websummary

import (
	"go.uber.org/zap"

	"github.com/alnah/go-websummary/internal/budget"
)

// Option configures an Assembler.
type Option func(*assemblerConfig)

// assemblerConfig holds the immutable settings of an Assembler.
type assemblerConfig struct {
	searchPaths  []string
	source       ComponentSource
	ceiling      int64
	mode         budget.Mode
	strict       bool
	dataVariable string
	logger       *zap.Logger
	readWorkers  int
}

// BudgetMode selects what happens when a document is over the ceiling.
type BudgetMode = budget.Mode

// Budget modes.
const (
	BudgetFail = budget.ModeFail
	BudgetWarn = budget.ModeWarn
)

// DefaultSizeCeiling is the default document size ceiling (10 MiB).
const DefaultSizeCeiling = budget.DefaultCeiling

// WithSearchPaths sets the resource library roots, searched in order.
// Ignored when WithComponentSource is also given.
func WithSearchPaths(paths ...string) Option {
	return func(c *assemblerConfig) {
		c.searchPaths = append([]string(nil), paths...)
	}
}

// WithComponentSource replaces filesystem resolution, for instance with an
// in-memory source or a build toolchain adapter.
func WithComponentSource(src ComponentSource) Option {
	return func(c *assemblerConfig) {
		c.source = src
	}
}

// WithSizeCeiling sets the document size ceiling in bytes.
// Zero or negative disables the check.
func WithSizeCeiling(n int64) Option {
	return func(c *assemblerConfig) {
		c.ceiling = n
	}
}

// WithBudgetMode selects failing (default) or warning on a size overrun.
func WithBudgetMode(m BudgetMode) Option {
	return func(c *assemblerConfig) {
		c.mode = m
	}
}

// WithStrictSlots controls whether unresolved and duplicate slots are
// errors (default) or warnings.
func WithStrictSlots(strict bool) Option {
	return func(c *assemblerConfig) {
		c.strict = strict
	}
}

// WithDataVariable sets the global the payload is assigned to (default "data").
func WithDataVariable(name string) Option {
	return func(c *assemblerConfig) {
		c.dataVariable = name
	}
}

// WithLogger sets the logger. Nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(c *assemblerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReadWorkers bounds how many resources are read concurrently.
// Values below 1 mean 1.
func WithReadWorkers(n int) Option {
	return func(c *assemblerConfig) {
		c.readWorkers = n
	}
}
