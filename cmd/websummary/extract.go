package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	websummary "github.com/alnah/go-websummary"
	"github.com/alnah/go-websummary/internal/pipeline"
)

// ErrPathNotFound indicates a --path query that matched nothing.
var ErrPathNotFound = errors.New("path not found in payload")

// runExtractCmd prints the payload of an assembled summary to stdout.
func runExtractCmd(args []string, env *Environment) int {
	flags, positional, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		printError(env.Stderr, err, nil)
		return ExitUsage
	}
	if len(positional) != 1 {
		printError(env.Stderr, fmt.Errorf("%w: extract takes exactly one file", ErrUsage), nil)
		return ExitUsage
	}

	out, err := runExtract(positional[0], flags)
	if err != nil {
		printError(env.Stderr, err, nil)
		return exitCodeFor(err)
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}

// runExtract returns the selected JSON, newline-terminated.
func runExtract(path string, flags *extractFlags) ([]byte, error) {
	document, err := readInput("summary", path)
	if err != nil {
		return nil, err
	}

	variable := flags.dataVar
	if variable == "" {
		variable = pipeline.DefaultVariable
	}
	raw, err := websummary.ExtractData(document, variable)
	if err != nil {
		return nil, err
	}

	out := []byte(raw)
	if flags.path != "" {
		result := gjson.GetBytes(raw, flags.path)
		if !result.Exists() {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, flags.path)
		}
		out = []byte(result.Raw)
	}

	if flags.pretty {
		return pretty.Pretty(out), nil
	}
	return append(out, '\n'), nil
}
