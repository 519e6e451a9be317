package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrSummaryRender indicates the summary body could not be rendered.
var ErrSummaryRender = errors.New("summary rendering failed")

// SummaryRenderer turns a Markdown summary into an HTML fragment.
type SummaryRenderer interface {
	RenderSummary(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders Markdown summaries using goldmark (pure Go).
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// syntax highlighting. Highlighted code carries inline styles so the
// fragment needs no external stylesheet.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in summaries is allowed: [[ include ]] fragments and
			// hand-written markup are common in summary bodies.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderSummary converts Markdown to an HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (r *GoldmarkRenderer) RenderSummary(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(normalizeMarkdown(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrSummaryRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var excessiveBlankLines = regexp.MustCompile(`\n{3,}`)

// normalizeMarkdown converts CRLF/CR to LF and collapses runs of blank
// lines outside fenced code blocks.
func normalizeMarkdown(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	if !strings.Contains(content, "\n\n\n") {
		return content
	}

	var (
		out     strings.Builder
		inFence bool
		chunk   strings.Builder
	)
	flush := func() {
		out.WriteString(excessiveBlankLines.ReplaceAllString(chunk.String(), "\n\n"))
		chunk.Reset()
	}
	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if !inFence {
				chunk.WriteString(line)
				flush()
				inFence = true
				continue
			}
			inFence = false
			out.WriteString(line)
			continue
		}
		if inFence {
			out.WriteString(line)
			continue
		}
		chunk.WriteString(line)
	}
	flush()
	return out.String()
}

// Compile-time interface check.
var _ SummaryRenderer = (*GoldmarkRenderer)(nil)
