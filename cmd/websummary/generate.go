package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	websummary "github.com/alnah/go-websummary"
	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/config"
	"github.com/alnah/go-websummary/internal/dateutil"
	"github.com/alnah/go-websummary/internal/fileutil"
	"github.com/alnah/go-websummary/internal/logger"
	"github.com/alnah/go-websummary/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrReadInput          = errors.New("failed to read input file")
	ErrUnsupportedData    = errors.New("data file must be .json, .yaml or .yml")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrVerificationFailed = errors.New("verification failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultStampSlot receives --stamp when no slot is named.
const defaultStampSlot = "generated"

// runGenerateCmd parses flags, runs generate and maps the outcome to an exit code.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		printError(env.Stderr, err, nil)
		return ExitUsage
	}
	if len(positional) > 0 {
		printError(env.Stderr, fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0]), nil)
		return ExitUsage
	}

	roots, err := runGenerate(ctx, flags, env)
	if err != nil {
		printError(env.Stderr, err, roots)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate assembles one summary and writes it atomically.
// Returns the resource search roots for error hints.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) ([]string, error) {
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  logger.LevelFor(flags.common.verbose, flags.common.quiet, cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: env.Stderr,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Sync() }()

	in, err := buildInput(cfg, flags, env)
	if err != nil {
		return cfg.SearchPaths, err
	}

	mode, _ := budget.ParseMode(cfg.BudgetMode) // checked by Validate
	workers := flags.readWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	asm, err := websummary.NewAssembler(
		websummary.WithSearchPaths(cfg.SearchPaths...),
		websummary.WithSizeCeiling(cfg.Ceiling()),
		websummary.WithBudgetMode(mode),
		websummary.WithStrictSlots(cfg.Strict()),
		websummary.WithDataVariable(cfg.Variable()),
		websummary.WithReadWorkers(workers),
		websummary.WithLogger(log),
	)
	if err != nil {
		return cfg.SearchPaths, err
	}

	res, err := asm.Assemble(ctx, in)
	if err != nil {
		return cfg.SearchPaths, err
	}
	if !flags.common.quiet {
		for _, w := range res.Warnings {
			printWarning(env.Stderr, w)
		}
	}

	if flags.verify {
		timeout := flags.verifyTimeout
		if timeout <= 0 {
			timeout = envCfg.VerifyTimeout
		}
		if err := verifySummary(ctx, res.HTML, cfg.Variable(), timeout, log, env); err != nil {
			return cfg.SearchPaths, err
		}
	}

	outPath := filepath.Join(cfg.Output.Dir, cfg.OutputFile())
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
			return cfg.SearchPaths, fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
		}
	}
	if err := fileutil.WriteFileAtomic(outPath, res.HTML, filePermissions); err != nil {
		return cfg.SearchPaths, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	log.Debug("wrote summary", zap.String("path", outPath))
	if !flags.common.quiet {
		suffix := ""
		if res.UsedMinified {
			suffix = ", minified"
		}
		fmt.Fprintf(env.Stdout, "%s (%s%s)\n", outPath, budget.FormatBytes(res.Size), suffix)
	}
	return cfg.SearchPaths, nil
}

// loadConfig loads the config named by the flag, then the environment.
// Without either, defaults apply.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, &configNotFoundError{name: name, err: fmt.Errorf("loading config: %w", err)}
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies CLI flags over config values (CLI wins).
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.template != "" {
		cfg.Template = flags.template
	}
	if flags.templateDir != "" {
		cfg.TemplateDir = flags.templateDir
	}
	if len(flags.searchPaths) > 0 {
		cfg.SearchPaths = flags.searchPaths
	}
	if flags.ceiling != ceilingUnset {
		ceiling := flags.ceiling
		cfg.SizeCeilingBytes = &ceiling
	}
	if flags.warnSize {
		cfg.BudgetMode = budget.ModeWarn.String()
	}
	if flags.noStrict {
		strict := false
		cfg.StrictSlots = &strict
	}
	if flags.dataVar != "" {
		cfg.DataVariable = flags.dataVar
	}
	if flags.summary != "" {
		cfg.Summary.Path = flags.summary
	}
	if flags.markdown {
		cfg.Summary.Markdown = true
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.outputFile != "" {
		cfg.Output.File = flags.outputFile
	}
	if flags.stamp != "" {
		cfg.Stamp.Date = flags.stamp
	}
	if flags.stampSlot != "" {
		cfg.Stamp.Slot = flags.stampSlot
	}
	if cfg.Stamp.Date != "" && cfg.Stamp.Slot == "" {
		cfg.Stamp.Slot = defaultStampSlot
	}
}

// buildInput reads the files named in cfg and flags into an Input.
func buildInput(cfg *config.Config, flags *generateFlags, env *Environment) (websummary.Input, error) {
	var in websummary.Input

	if cfg.Template != "" {
		content, err := readInput("template", cfg.Template)
		if err != nil {
			return in, err
		}
		in.Template = string(content)
	}
	in.TemplateDir = cfg.TemplateDir
	if in.TemplateDir == "" && cfg.Template != "" {
		in.TemplateDir = filepath.Dir(cfg.Template)
	}

	if flags.data != "" {
		if err := readDataFile(flags.data, &in); err != nil {
			return in, err
		}
	}

	if cfg.Summary.Path != "" {
		content, err := readInput("summary", cfg.Summary.Path)
		if err != nil {
			return in, err
		}
		in.Summary = string(content)
		ext := strings.ToLower(filepath.Ext(cfg.Summary.Path))
		in.SummaryMarkdown = cfg.Summary.Markdown || ext == ".md" || ext == ".markdown"
		in.SourceDir = filepath.Dir(cfg.Summary.Path)
	}

	for _, s := range cfg.Slots {
		kind := websummary.KindUnset
		if s.Kind != "" {
			var err error
			if kind, err = websummary.ParseKind(s.Kind); err != nil {
				return in, fmt.Errorf("%w: slot %q: %v", config.ErrInvalidConfig, s.Name, err)
			}
		}
		in.Bindings = append(in.Bindings, websummary.Binding{
			Slot:     s.Name,
			Kind:     kind,
			Resource: s.Resource,
			Content:  s.Content,
			Minified: s.Minified,
		})
	}

	if cfg.Stamp.Slot != "" {
		value := cfg.Stamp.Date
		if value == "" {
			value = "auto"
		}
		date, err := dateutil.ResolveDate(value, env.Now())
		if err != nil {
			return in, err
		}
		in.Bindings = append(in.Bindings, websummary.Binding{
			Slot:    cfg.Stamp.Slot,
			Kind:    websummary.KindHTML,
			Content: html.EscapeString(date),
		})
	}

	return in, nil
}

// readDataFile picks the payload field from the file extension.
func readDataFile(path string, in *websummary.Input) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s", ErrUnsupportedData, path)
	}
	content, err := readInput("data", path)
	if err != nil {
		return err
	}
	if len(content) > yamlutil.MaxDataSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrReadInput, path, yamlutil.MaxDataSize)
	}
	if ext == ".json" {
		in.DataJSON = content
	} else {
		in.DataYAML = content
	}
	return nil
}

// readInput reads a user-named file, wrapping failures with ErrReadInput.
func readInput(what, path string) ([]byte, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrReadInput, what, path, err)
	}
	return content, nil
}

// verifySummary loads html in the browser and fails on any problem.
func verifySummary(ctx context.Context, htmlContent []byte, variable string, timeout time.Duration, log *zap.Logger, env *Environment) error {
	opts := []websummary.VerifyOption{
		websummary.WithVerifyDataVariable(variable),
		websummary.WithVerifyLogger(log),
	}
	if timeout > 0 {
		opts = append(opts, websummary.WithVerifyTimeout(timeout))
	}

	v, err := env.NewVerifier(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	report, err := v.Verify(ctx, htmlContent)
	if err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%w:\n  %s", ErrVerificationFailed, strings.Join(report.Problems(), "\n  "))
	}
	log.Info("verification passed")
	return nil
}
