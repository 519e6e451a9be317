package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ceilingUnset detects if --ceiling was explicitly set.
// Since 0 is a valid ceiling (disabled), we use a negative sentinel.
const ceilingUnset int64 = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common        commonFlags
	data          string
	template      string
	templateDir   string
	outputDir     string
	outputFile    string
	searchPaths   []string
	ceiling       int64
	warnSize      bool
	noStrict      bool
	dataVar       string
	summary       string
	markdown      bool
	stamp         string
	stampSlot     string
	verify        bool
	verifyTimeout time.Duration
	readWorkers   int
}

// extractFlags holds all flags for the extract command.
type extractFlags struct {
	dataVar string
	path    string
	pretty  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, usage io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &generateFlags{}

	// Inputs
	fs.StringVarP(&f.data, "data", "d", "", "data payload file (.json, .yaml, .yml)")
	fs.StringVarP(&f.template, "template", "t", "", "template skeleton file")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory with template.html and include files")
	fs.StringVarP(&f.summary, "summary", "s", "", "summary body file (HTML or Markdown)")
	fs.BoolVar(&f.markdown, "markdown", false, "render the summary file as Markdown")
	fs.StringSliceVarP(&f.searchPaths, "search-path", "I", nil, "resource directory (repeatable, searched in order)")

	// Output
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory")
	fs.StringVar(&f.outputFile, "output-file", "", "output file name (default web_summary.html)")

	// Assembly
	fs.Int64Var(&f.ceiling, "ceiling", ceilingUnset, "size ceiling in bytes (0 = unlimited)")
	fs.BoolVar(&f.warnSize, "warn-size", false, "warn instead of failing when over the ceiling")
	fs.BoolVar(&f.noStrict, "no-strict", false, "drop unresolved slots with a warning")
	fs.StringVar(&f.dataVar, "data-var", "", "data variable name (default data)")
	fs.StringVar(&f.stamp, "stamp", "", "generation date: \"auto\", \"auto:FORMAT\", or literal")
	fs.StringVar(&f.stampSlot, "stamp-slot", "", "slot receiving --stamp (default generated)")
	fs.IntVarP(&f.readWorkers, "workers", "w", 0, "parallel resource reads (0 = auto)")

	// Verification
	fs.BoolVar(&f.verify, "verify", false, "load the result in headless Chrome before writing")
	fs.DurationVar(&f.verifyTimeout, "verify-timeout", 0, "verification timeout (e.g. 30s)")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printGenerateUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExtractFlags parses extract command flags and returns positional args.
func parseExtractFlags(args []string, usage io.Writer) (*extractFlags, []string, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &extractFlags{}

	fs.StringVar(&f.dataVar, "data-var", "", "data variable name (default data)")
	fs.StringVarP(&f.path, "path", "p", "", "query inside the payload (e.g. samples.0.name)")
	fs.BoolVar(&f.pretty, "pretty", false, "indent the output")

	fs.Usage = func() { printExtractUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
