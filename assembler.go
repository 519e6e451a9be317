package websummary

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-websummary/internal/assets"
	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/pipeline"
	"github.com/alnah/go-websummary/internal/slots"
	"github.com/alnah/go-websummary/internal/yamlutil"
)

// Compile-time interface implementation checks.
var (
	_ ComponentSource          = (*assets.Resolver)(nil)
	_ ComponentSource          = MapSource(nil)
	_ pipeline.SummaryRenderer = (*pipeline.GoldmarkRenderer)(nil)
)

// Assembler builds self-contained web summaries.
// It holds only immutable configuration and is safe for concurrent use.
type Assembler struct {
	cfg      assemblerConfig
	source   ComponentSource
	enforcer budget.Enforcer
	renderer pipeline.SummaryRenderer
	log      *zap.Logger
}

// NewAssembler creates an Assembler. Search paths are checked here, so a
// missing resource directory fails before any document is built.
func NewAssembler(opts ...Option) (*Assembler, error) {
	cfg := assemblerConfig{
		ceiling:      DefaultSizeCeiling,
		mode:         BudgetFail,
		strict:       true,
		dataVariable: pipeline.DefaultVariable,
		logger:       zap.NewNop(),
		readWorkers:  1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := pipeline.ValidateVariableName(cfg.dataVariable); err != nil {
		return nil, err
	}
	if cfg.readWorkers < 1 {
		cfg.readWorkers = 1
	}

	a := &Assembler{
		cfg:      cfg,
		source:   cfg.source,
		enforcer: budget.New(cfg.ceiling, cfg.mode),
		renderer: pipeline.NewGoldmarkRenderer(),
		log:      cfg.logger,
	}
	if a.source == nil {
		resolver, err := assets.NewResolver(cfg.searchPaths)
		if err != nil {
			return nil, err
		}
		a.source = resolver
	}
	return a, nil
}

// Assemble runs skeleton loading, resource resolution, data embedding,
// slot substitution and the size check, in that order. It fails on the
// first error and never returns a partial document.
// Recovers from internal panics so they surface as errors.
func (a *Assembler) Assemble(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	skeleton, err := loadSkeleton(in)
	if err != nil {
		return nil, err
	}

	fixed, warnings, err := a.fixedBindings(ctx, in)
	if err != nil {
		return nil, err
	}
	declared, err := a.declaredBindings(ctx, skeleton, in.Bindings, fixed)
	if err != nil {
		return nil, err
	}
	for name, b := range declared {
		fixed[name] = b
	}

	res, err = a.assemble(ctx, skeleton, in.Bindings, fixed, false)
	if err != nil {
		return nil, err
	}

	if !a.enforcer.Fits(res.Size) && hasMinified(in.Bindings) {
		a.log.Info("over size budget, retrying with minified resources",
			zap.Int64("bytes", res.Size), zap.Int64("ceiling", a.enforcer.Ceiling))
		res, err = a.assemble(ctx, skeleton, in.Bindings, fixed, true)
		if err != nil {
			return nil, err
		}
		res.UsedMinified = true
	}

	res.Warnings = append(warnings, res.Warnings...)
	warning, err := a.enforcer.Check(res.Size)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		res.Warnings = append(res.Warnings, warning)
	}

	for _, w := range res.Warnings {
		a.log.Debug("assembly warning", zap.String("warning", w))
	}
	a.log.Info("assembled summary",
		zap.Int64("bytes", res.Size),
		zap.Int("slots", len(res.SlotSizes)),
		zap.Bool("minified", res.UsedMinified))
	return res, nil
}

// assemble resolves the caller's bindings and substitutes them together
// with the fixed data and summary bindings.
func (a *Assembler) assemble(ctx context.Context, skeleton string, bindings []Binding, fixed map[string]slots.Binding, minified bool) (*Result, error) {
	resolved, err := a.resolveBindings(ctx, bindings, minified, false)
	if err != nil {
		return nil, err
	}

	all := make(map[string]slots.Binding, len(bindings)+len(fixed))
	for name, b := range fixed {
		all[name] = b
	}
	for i, b := range bindings {
		all[b.Slot] = *resolved[i]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub, err := slots.Substitute(skeleton, all, slots.Options{Strict: a.cfg.strict})
	if err != nil {
		return nil, err
	}
	if err := slots.CheckResidual(sub.Document); err != nil {
		return nil, err
	}

	return &Result{
		HTML:      []byte(sub.Document),
		Size:      int64(len(sub.Document)),
		SlotSizes: sub.Sizes,
		Warnings:  sub.Warnings,
	}, nil
}

// resolveBindings reads bound resources on at most readWorkers goroutines.
// Results are stored by index so the output never depends on timing.
// With optional set, a resource missing from the source leaves a nil
// entry instead of failing.
func (a *Assembler) resolveBindings(ctx context.Context, bindings []Binding, minified, optional bool) ([]*slots.Binding, error) {
	out := make([]*slots.Binding, len(bindings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.readWorkers)
	for i, b := range bindings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sb, err := a.resolveBinding(gctx, b, minified)
			if optional && errors.Is(err, assets.ErrResourceNotFound) {
				a.log.Debug("declared resource not found", zap.String("slot", b.Slot))
				return nil
			}
			if err != nil {
				return fmt.Errorf("slot %q: %w", b.Slot, err)
			}
			out[i] = &sb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// declaredBindings resolves slots that name their own resource and have no
// binding: anchors always, markers whose name carries a known extension.
// A resource the source does not have leaves its slot unbound, so
// substitution reports it like any other unresolved slot. The summary
// marker is filled with nothing when Input carries no summary.
func (a *Assembler) declaredBindings(ctx context.Context, skeleton string, bindings []Binding, fixed map[string]slots.Binding) (map[string]slots.Binding, error) {
	found, err := slots.Scan(skeleton)
	if err != nil {
		return nil, err
	}

	bound := make(map[string]bool, len(bindings)+len(fixed)+len(found))
	for _, b := range bindings {
		bound[b.Slot] = true
	}
	for name := range fixed {
		bound[name] = true
	}

	out := make(map[string]slots.Binding)
	var implicit []Binding
	for _, s := range found {
		if bound[s.Name] {
			continue
		}
		if s.Name == SummarySlot && !s.Anchor {
			// No summary body: the section stays empty.
			bound[s.Name] = true
			out[s.Name] = slots.Binding{Kind: slots.KindHTML}
			continue
		}
		kind := s.Kind
		if !s.Anchor && slots.KindForExtension(extension(s.Name)) == KindUnset {
			continue
		}
		bound[s.Name] = true
		implicit = append(implicit, Binding{Slot: s.Name, Kind: kind, Resource: s.Name})
	}
	if len(implicit) == 0 {
		return out, nil
	}

	resolved, err := a.resolveBindings(ctx, implicit, false, true)
	if err != nil {
		return nil, err
	}
	for i, b := range implicit {
		if resolved[i] != nil {
			out[b.Slot] = *resolved[i]
		}
	}
	return out, nil
}

func (a *Assembler) resolveBinding(ctx context.Context, b Binding, minified bool) (slots.Binding, error) {
	kind, content, ext := b.Kind, b.Content, ""

	name := b.Resource
	if minified && b.Minified != "" {
		name = b.Minified
	}
	if name != "" {
		r, err := a.source.Resolve(name)
		if err != nil {
			return slots.Binding{}, err
		}
		a.log.Debug("resolved resource",
			zap.String("slot", b.Slot),
			zap.String("resource", name),
			zap.String("path", r.Path),
			zap.Int("bytes", len(r.Content)))
		content, ext = string(r.Content), r.Ext()
		if kind == KindUnset {
			kind = slots.KindForExtension(ext)
		}
	}

	switch kind {
	case KindData:
		data, err := encodeDataText(ext, []byte(content))
		if err != nil {
			return slots.Binding{}, err
		}
		stmt, err := pipeline.Assignment(a.variableFor(b.Slot), data)
		if err != nil {
			return slots.Binding{}, err
		}
		content = stmt
	case KindHTML:
		if ext == "md" || ext == "markdown" {
			html, err := a.renderer.RenderSummary(ctx, content)
			if err != nil {
				return slots.Binding{}, err
			}
			content = html
		}
	}
	return slots.Binding{Kind: kind, Content: content}, nil
}

// variableFor names the global a data binding assigns to: the configured
// variable for the data slot, the slot name without extension otherwise.
func (a *Assembler) variableFor(slot string) string {
	if slot == DataSlot {
		return a.cfg.dataVariable
	}
	return strings.TrimSuffix(slot, path.Ext(slot))
}

// fixedBindings builds the data and summary bindings, which do not change
// between the regular and the minified attempt.
func (a *Assembler) fixedBindings(ctx context.Context, in Input) (map[string]slots.Binding, []string, error) {
	fixed := make(map[string]slots.Binding, 2)

	if in.hasData() {
		payload, err := encodePayload(in)
		if err != nil {
			return nil, nil, err
		}
		stmt, err := pipeline.Assignment(a.cfg.dataVariable, payload)
		if err != nil {
			return nil, nil, err
		}
		fixed[DataSlot] = slots.Binding{Kind: slots.KindData, Content: stmt}
		a.log.Debug("embedded data payload", zap.Int("bytes", len(payload)))
	}

	var warnings []string
	if in.Summary != "" {
		body, w, err := a.renderSummary(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		fixed[SummarySlot] = slots.Binding{Kind: slots.KindHTML, Content: body}
		warnings = w
	}
	return fixed, warnings, nil
}

// renderSummary expands includes, renders Markdown when asked, and inlines
// relative images.
func (a *Assembler) renderSummary(ctx context.Context, in Input) (string, []string, error) {
	var includes ComponentSource
	if in.TemplateDir != "" {
		loader, err := assets.NewFilesystemLoader(in.TemplateDir)
		if err != nil {
			return "", nil, fmt.Errorf("template directory: %w", err)
		}
		includes = loader
	}
	body, err := pipeline.ExpandIncludes(in.Summary, includes, pipeline.MaxIncludeDepth)
	if err != nil {
		return "", nil, err
	}

	if in.SummaryMarkdown {
		if body, err = a.renderer.RenderSummary(ctx, body); err != nil {
			return "", nil, err
		}
	}

	imageRoot := in.SourceDir
	if imageRoot == "" {
		imageRoot = in.TemplateDir
	}
	var images ComponentSource
	if imageRoot != "" {
		loader, err := assets.NewFilesystemLoader(imageRoot)
		if err != nil {
			return "", nil, fmt.Errorf("image directory: %w", err)
		}
		images = loader
	}
	return pipeline.InlineImages(body, images)
}

// encodePayload serializes whichever payload field is set.
func encodePayload(in Input) ([]byte, error) {
	switch {
	case in.DataJSON != nil:
		return pipeline.EncodeRawJSON(in.DataJSON)
	case in.DataYAML != nil:
		return encodeDataText("yaml", in.DataYAML)
	default:
		return pipeline.EncodeData(in.Data)
	}
}

// encodeDataText encodes JSON or YAML text by extension; anything else is JSON.
func encodeDataText(ext string, text []byte) ([]byte, error) {
	if ext == "yaml" || ext == "yml" {
		converted, err := yamlutil.ToJSON(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		text = converted
	}
	return pipeline.EncodeRawJSON(text)
}

// loadSkeleton returns Input.Template, template.html from TemplateDir, or
// the embedded default, in that order.
func loadSkeleton(in Input) (string, error) {
	skeleton := in.Template
	if skeleton == "" {
		var err error
		if skeleton, err = assets.LoadSkeleton(in.TemplateDir); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(skeleton) == "" {
		return "", ErrEmptyTemplate
	}
	return skeleton, nil
}

// validateInput checks payload exclusivity and binding shape.
//
// This is the trust boundary for library users who build Input by hand;
// CLI input has already passed config validation.
func validateInput(in Input) error {
	payloads := 0
	for _, set := range []bool{in.Data != nil, in.DataJSON != nil, in.DataYAML != nil} {
		if set {
			payloads++
		}
	}
	if payloads > 1 {
		return ErrConflictingData
	}

	seen := make(map[string]bool, len(in.Bindings)+2)
	if in.hasData() {
		seen[DataSlot] = true
	}
	if in.Summary != "" {
		seen[SummarySlot] = true
	}
	for _, b := range in.Bindings {
		if b.Slot == "" {
			return fmt.Errorf("%w: binding without a slot name", ErrMissingBinding)
		}
		if seen[b.Slot] {
			return fmt.Errorf("%w: %q", ErrDuplicateBinding, b.Slot)
		}
		seen[b.Slot] = true
		if b.Resource == "" && b.Kind == KindUnset {
			return fmt.Errorf("%w: slot %q has literal content but no kind", ErrMissingBinding, b.Slot)
		}
		if b.Minified != "" && b.Resource == "" {
			return fmt.Errorf("%w: slot %q has a minified variant but no resource", ErrMissingBinding, b.Slot)
		}
	}
	return nil
}

// extension returns the lower-cased extension of name, without the dot.
func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

func hasMinified(bindings []Binding) bool {
	for _, b := range bindings {
		if b.Minified != "" {
			return true
		}
	}
	return false
}
