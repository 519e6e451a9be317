package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: websummary <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Assemble a self-contained HTML summary")
	fmt.Fprintln(w, "  extract    Print the data payload embedded in a summary")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'websummary help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: websummary generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble a template, resources and a data payload into one HTML file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "  -d, --data <file>          Data payload (.json, .yaml, .yml)")
	fmt.Fprintln(w, "  -t, --template <file>      Template skeleton (default: bundled)")
	fmt.Fprintln(w, "      --template-dir <dir>   Directory with template.html and include files")
	fmt.Fprintln(w, "  -s, --summary <file>       Summary body bound to the summary slot")
	fmt.Fprintln(w, "      --markdown             Render the summary as Markdown (auto for .md)")
	fmt.Fprintln(w, "  -I, --search-path <dir>    Resource directory, repeatable, searched in order")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output-dir <dir>     Output directory")
	fmt.Fprintln(w, "      --output-file <name>   Output file name (default web_summary.html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assembly:")
	fmt.Fprintln(w, "      --ceiling <bytes>      Size ceiling (default 10485760, 0 = unlimited)")
	fmt.Fprintln(w, "      --warn-size            Warn instead of failing when over the ceiling")
	fmt.Fprintln(w, "      --no-strict            Drop unresolved slots with a warning")
	fmt.Fprintln(w, "      --data-var <name>      Data variable name (default data)")
	fmt.Fprintln(w, "      --stamp <date>         Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                             Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm")
	fmt.Fprintln(w, "                             Presets (case-insensitive): iso, european, us, long, datetime")
	fmt.Fprintln(w, "      --stamp-slot <name>    Slot receiving the stamp (default generated)")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel resource reads (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Verification:")
	fmt.Fprintln(w, "      --verify               Load the result in headless Chrome, offline")
	fmt.Fprintln(w, "      --verify-timeout <d>   Verification timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug logs")
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: websummary extract <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the JSON payload embedded in an assembled summary.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --data-var <name>      Data variable name (default data)")
	fmt.Fprintln(w, "  -p, --path <query>         Select a value, e.g. samples.0.name")
	fmt.Fprintln(w, "      --pretty               Indent the output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "extract":
		printExtractUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: websummary version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: websummary help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
