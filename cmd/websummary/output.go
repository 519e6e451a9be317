package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	websummary "github.com/alnah/go-websummary"
	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/config"
	"github.com/alnah/go-websummary/internal/hints"
)

// Message prefixes. Colors are disabled when the output is not a terminal
// or NO_COLOR is set.
var (
	errorPrefix   = color.New(color.FgRed, color.Bold)
	warningPrefix = color.New(color.FgYellow)
)

// printError prints err with an actionable hint when one applies.
func printError(w io.Writer, err error, roots []string) {
	errorPrefix.Fprint(w, "error:")
	fmt.Fprintf(w, " %v%s\n", err, hintFor(err, roots))
}

// printWarning prints a non-fatal finding.
func printWarning(w io.Writer, msg string) {
	warningPrefix.Fprint(w, "warning:")
	fmt.Fprintf(w, " %s\n", msg)
}

// hintFor picks the hint matching err, or returns "".
func hintFor(err error, roots []string) string {
	var sizeErr *budget.ExceededError
	switch {
	case errors.As(err, &sizeErr):
		return hints.ForSizeBudget(sizeErr.Size, sizeErr.Ceiling)
	case errors.Is(err, config.ErrConfigNotFound):
		var nf *configNotFoundError
		if errors.As(err, &nf) {
			return hints.ForConfigNotFound(config.SearchedPaths(nf.name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, websummary.ErrResourceNotFound):
		return hints.ForResourceNotFound(roots)
	case errors.Is(err, websummary.ErrUnresolvedSlot):
		return hints.ForUnresolvedSlot()
	case errors.Is(err, websummary.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configNotFoundError remembers the config name so the hint can list
// the files that were searched.
type configNotFoundError struct {
	name string
	err  error
}

func (e *configNotFoundError) Error() string { return e.err.Error() }
func (e *configNotFoundError) Unwrap() error { return e.err }
