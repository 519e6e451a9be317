package slots

import (
	"errors"
	"strings"
	"testing"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		skeleton string
		bindings map[string]Binding
		expected string
	}{
		{
			name:     "script and data markers",
			skeleton: "<html><!--SLOT:lib--><!--SLOT:data--></html>",
			bindings: map[string]Binding{
				"lib":  {Kind: KindScript, Content: "console.log(1)"},
				"data": {Kind: KindData, Content: `window.data = {"a":1};`},
			},
			expected: `<html><script>console.log(1)</script><script>window.data = {"a":1};</script></html>`,
		},
		{
			name:     "style and html markers",
			skeleton: "<head><!--SLOT:css--></head><body><!--SLOT:body--></body>",
			bindings: map[string]Binding{
				"css":  {Kind: KindStyle, Content: "p{color:red}"},
				"body": {Kind: KindHTML, Content: "<p>Hi</p>"},
			},
			expected: "<head><style>p{color:red}</style></head><body><p>Hi</p></body>",
		},
		{
			name:     "anchor inherits kind",
			skeleton: `<head><script data-inline src="lib.js"></script><link rel="stylesheet" data-inline href="a.css"></head>`,
			bindings: map[string]Binding{
				"lib.js": {Content: "run()"},
				"a.css":  {Content: "a{}"},
			},
			expected: "<head><script>run()</script><style>a{}</style></head>",
		},
		{
			name:     "no slots leaves skeleton unchanged",
			skeleton: "<html><!-- note --></html>",
			bindings: map[string]Binding{},
			expected: "<html><!-- note --></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Substitute(tt.skeleton, tt.bindings, Options{Strict: true})
			if err != nil {
				t.Fatalf("Substitute() error = %v", err)
			}
			if res.Document != tt.expected {
				t.Errorf("Substitute() = %q, want %q", res.Document, tt.expected)
			}
			if err := CheckResidual(res.Document); err != nil {
				t.Errorf("CheckResidual() error = %v", err)
			}
		})
	}
}

func TestSubstitute_DoesNotExpandInsertedContent(t *testing.T) {
	t.Parallel()

	skeleton := "<div><!--SLOT:body--></div><!--SLOT:secret-->"
	bindings := map[string]Binding{
		"body":   {Kind: KindHTML, Content: "<!--SLOT:secret-->"},
		"secret": {Kind: KindHTML, Content: "SECRET"},
	}

	res, err := Substitute(skeleton, bindings, Options{Strict: true})
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if want := "<div><!--SLOT:secret--></div>SECRET"; res.Document != want {
		t.Errorf("Substitute() = %q, want %q", res.Document, want)
	}
	if err := CheckResidual(res.Document); !errors.Is(err, ErrResidualSlot) {
		t.Errorf("CheckResidual() error = %v, want ErrResidualSlot", err)
	}
}

func TestSubstitute_Strict(t *testing.T) {
	t.Parallel()

	t.Run("unresolved slot", func(t *testing.T) {
		t.Parallel()

		_, err := Substitute("<!--SLOT:a--><!--SLOT:b-->", map[string]Binding{
			"a": {Kind: KindHTML, Content: "x"},
		}, Options{Strict: true})
		if !errors.Is(err, ErrUnresolvedSlot) {
			t.Fatalf("Substitute() error = %v, want ErrUnresolvedSlot", err)
		}
		if !strings.Contains(err.Error(), `"b"`) {
			t.Errorf("error %q should name the slot", err)
		}
	})

	t.Run("duplicate slot", func(t *testing.T) {
		t.Parallel()

		_, err := Substitute("<!--SLOT:a--><!--SLOT:a-->", map[string]Binding{
			"a": {Kind: KindHTML, Content: "x"},
		}, Options{Strict: true})
		if !errors.Is(err, ErrDuplicateSlot) {
			t.Fatalf("Substitute() error = %v, want ErrDuplicateSlot", err)
		}
		if !strings.Contains(err.Error(), `"a"`) {
			t.Errorf("error %q should name the slot", err)
		}
	})

	t.Run("anchor kind mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := Substitute(`<script data-inline src="a.js"></script>`, map[string]Binding{
			"a.js": {Kind: KindStyle, Content: "x"},
		}, Options{Strict: true})
		if !errors.Is(err, ErrKindMismatch) {
			t.Errorf("Substitute() error = %v, want ErrKindMismatch", err)
		}
	})

	t.Run("marker without kind", func(t *testing.T) {
		t.Parallel()

		_, err := Substitute("<!--SLOT:a-->", map[string]Binding{
			"a": {Content: "x"},
		}, Options{Strict: true})
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("Substitute() error = %v, want ErrUnknownKind", err)
		}
	})
}

func TestSubstitute_Lenient(t *testing.T) {
	t.Parallel()

	res, err := Substitute("<!--SLOT:a-->|<!--SLOT:a-->|<!--SLOT:b-->", map[string]Binding{
		"a":      {Kind: KindHTML, Content: "x"},
		"unused": {Kind: KindHTML, Content: "y"},
	}, Options{Strict: false})
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if res.Document != "x|x|" {
		t.Errorf("Substitute() = %q, want %q", res.Document, "x|x|")
	}
	want := []string{
		`slot "a" declared more than once`,
		`slot "b" has no content, removed`,
		`binding "unused" matches no slot`,
	}
	if len(res.Warnings) != len(want) {
		t.Fatalf("Warnings = %v, want %v", res.Warnings, want)
	}
	for i := range want {
		if res.Warnings[i] != want[i] {
			t.Errorf("Warnings[%d] = %q, want %q", i, res.Warnings[i], want[i])
		}
	}
}

// Notes:
// - a lenient duplicate may mix anchor kinds; each declaration keeps the
//   wrapper of its own kind and is checked against the binding on its own

func TestSubstitute_LenientMixedAnchors(t *testing.T) {
	t.Parallel()

	skeleton := `<script data-inline src="theme"></script>|<link rel="stylesheet" data-inline href="theme">`

	t.Run("each declaration keeps its kind", func(t *testing.T) {
		t.Parallel()

		res, err := Substitute(skeleton, map[string]Binding{
			"theme": {Content: "x"},
		}, Options{Strict: false})
		if err != nil {
			t.Fatalf("Substitute() error = %v", err)
		}
		want := "<script>x</script>|<style>x</style>"
		if res.Document != want {
			t.Errorf("Substitute() = %q, want %q", res.Document, want)
		}
	})

	t.Run("later declaration is kind checked", func(t *testing.T) {
		t.Parallel()

		_, err := Substitute(skeleton, map[string]Binding{
			"theme": {Kind: KindScript, Content: "x"},
		}, Options{Strict: false})
		if !errors.Is(err, ErrKindMismatch) {
			t.Errorf("Substitute() error = %v, want ErrKindMismatch", err)
		}
	})
}

func TestSubstitute_Sizes(t *testing.T) {
	t.Parallel()

	res, err := Substitute("<!--SLOT:lib-->", map[string]Binding{
		"lib": {Kind: KindScript, Content: "x"},
	}, Options{Strict: true})
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if got := res.Sizes["lib"]; got != len("<script>x</script>") {
		t.Errorf("Sizes[lib] = %d, want %d", got, len("<script>x</script>"))
	}
}

func TestSubstitute_Deterministic(t *testing.T) {
	t.Parallel()

	skeleton := "<!--SLOT:a--><!--SLOT:b--><!--SLOT:c-->"
	bindings := map[string]Binding{
		"a": {Kind: KindScript, Content: "1"},
		"b": {Kind: KindStyle, Content: "2"},
		"c": {Kind: KindHTML, Content: "3"},
	}

	first, err := Substitute(skeleton, bindings, Options{Strict: true})
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Substitute(skeleton, bindings, Options{Strict: true})
		if err != nil {
			t.Fatalf("Substitute() error = %v", err)
		}
		if again.Document != first.Document {
			t.Fatalf("run %d differs: %q vs %q", i, again.Document, first.Document)
		}
	}
}
