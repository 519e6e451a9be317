package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-websummary/internal/assets"
)

// ErrUnsupportedImage indicates an <img> source with no known media type.
var ErrUnsupportedImage = errors.New("unsupported image type")

// imageMediaTypes maps lower-cased extensions to data URI media types.
var imageMediaTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
}

// InlineImages replaces relative img[src] paths with base64 data URIs read
// through src. URLs, data URIs, anchors and absolute paths are left alone.
// A relative path that escapes the source root is left in place and
// reported as a warning. If src is nil, returns the HTML unchanged.
func InlineImages(htmlContent string, src assets.ComponentSource) (string, []string, error) {
	if src == nil || !strings.Contains(strings.ToLower(htmlContent), "<img") {
		return htmlContent, nil, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", nil, err
	}

	var warnings []string
	if err := inlineNode(doc, src, &warnings); err != nil {
		return "", nil, err
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", nil, err
	}
	return out, warnings, nil
}

func inlineNode(n *html.Node, src assets.ComponentSource, warnings *[]string) error {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativePath(attr.Val) {
				continue
			}
			uri, err := imageDataURI(attr.Val, src)
			if errors.Is(err, assets.ErrPathTraversal) || errors.Is(err, assets.ErrInvalidAssetName) {
				*warnings = append(*warnings, fmt.Sprintf("image %q left unresolved: outside the source directory", attr.Val))
				continue
			}
			if err != nil {
				return err
			}
			n.Attr[i].Val = uri
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := inlineNode(c, src, warnings); err != nil {
			return err
		}
	}
	return nil
}

func imageDataURI(ref string, src assets.ComponentSource) (string, error) {
	name, err := url.PathUnescape(ref)
	if err != nil {
		name = ref
	}
	// Query strings and fragments never name a file on disk.
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = path.Clean(name)

	res, err := src.Resolve(name)
	if err != nil {
		return "", err
	}
	mediaType, ok := imageMediaTypes[res.Ext()]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, ref)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(res.Content), nil
}

// isRelativePath reports whether ref is a path relative to the source root.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only, so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
