package pipeline

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEncodeData
// ---------------------------------------------------------------------------

func TestEncodeData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr error
	}{
		{
			name:  "simple object",
			input: map[string]any{"a": 1},
			want:  `{"a":1}`,
		},
		{
			name:  "keys are sorted",
			input: map[string]int{"b": 2, "a": 1},
			want:  `{"a":1,"b":2}`,
		},
		{
			name:  "script terminator is escaped",
			input: map[string]string{"x": "</script><script>alert(1)</script>"},
			want:  `{"x":"\u003c/script\u003e\u003cscript\u003ealert(1)\u003c/script\u003e"}`,
		},
		{
			name:  "comment opener is escaped",
			input: []string{"<!--"},
			want:  `["\u003c!--"]`,
		},
		{
			name:  "ampersand is escaped",
			input: "a&b",
			want:  `"a\u0026b"`,
		},
		{
			name:  "line separators are escaped",
			input: "a\u2028b\u2029c",
			want:  `"a\u2028b\u2029c"`,
		},
		{
			name:  "unicode passes through",
			input: "héllo 世界",
			want:  `"héllo 世界"`,
		},
		{
			name:  "null",
			input: nil,
			want:  `null`,
		},
		{
			name:    "NaN is rejected",
			input:   map[string]float64{"x": math.NaN()},
			wantErr: ErrSerialization,
		},
		{
			name:    "infinity is rejected",
			input:   math.Inf(1),
			wantErr: ErrSerialization,
		},
		{
			name:    "channels are rejected",
			input:   make(chan int),
			wantErr: ErrSerialization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeData(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EncodeData() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EncodeData() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("EncodeData() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEncodeRawJSON
// ---------------------------------------------------------------------------

func TestEncodeRawJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "compacts whitespace",
			input: "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}\n",
			want:  `{"a":1,"b":[1,2]}`,
		},
		{
			name:  "preserves key order",
			input: `{"z":1,"a":2}`,
			want:  `{"z":1,"a":2}`,
		},
		{
			name:  "preserves number text",
			input: `{"n":1.50e10}`,
			want:  `{"n":1.50e10}`,
		},
		{
			name:  "escapes markup",
			input: `{"x":"</script>"}`,
			want:  `{"x":"\u003c/script\u003e"}`,
		},
		{
			name:    "invalid JSON",
			input:   `{"a":}`,
			wantErr: ErrSerialization,
		},
		{
			name:    "NaN literal",
			input:   `{"a":NaN}`,
			wantErr: ErrSerialization,
		},
		{
			name:    "empty payload",
			input:   "  ",
			wantErr: ErrSerialization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeRawJSON([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EncodeRawJSON() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EncodeRawJSON() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("EncodeRawJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssignment
// ---------------------------------------------------------------------------

func TestAssignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		varName string
		want    string
		wantErr error
	}{
		{name: "default variable", varName: "data", want: `window.data = {"a":1};`},
		{name: "dollar and underscore", varName: "_$summary", want: `window._$summary = {"a":1};`},
		{name: "digits after first char", varName: "data2", want: `window.data2 = {"a":1};`},
		{name: "leading digit", varName: "2data", wantErr: ErrInvalidVariableName},
		{name: "dotted path", varName: "app.data", wantErr: ErrInvalidVariableName},
		{name: "reserved word", varName: "class", wantErr: ErrInvalidVariableName},
		{name: "markup", varName: "x</script>", wantErr: ErrInvalidVariableName},
		{name: "empty", varName: "", wantErr: ErrInvalidVariableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Assignment(tt.varName, []byte(`{"a":1}`))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Assignment() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Assignment() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Assignment() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbedData
// ---------------------------------------------------------------------------

func TestEmbedData(t *testing.T) {
	t.Parallel()

	t.Run("wraps assignment in script element", func(t *testing.T) {
		t.Parallel()

		got, err := EmbedData(map[string]int{"a": 1}, DefaultVariable)
		if err != nil {
			t.Fatalf("EmbedData() unexpected error: %v", err)
		}
		want := `<script>window.data = {"a":1};</script>`
		if got != want {
			t.Errorf("EmbedData() = %q, want %q", got, want)
		}
	})

	t.Run("hostile strings cannot close the element", func(t *testing.T) {
		t.Parallel()

		payload := map[string]string{
			"a": "</script><script>alert(1)</script>",
			"b": "</SCRIPT >",
			"c": "<!--<script>",
		}
		got, err := EmbedData(payload, DefaultVariable)
		if err != nil {
			t.Fatalf("EmbedData() unexpected error: %v", err)
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(got, "<script>"), "</script>")
		lower := strings.ToLower(inner)
		for _, bad := range []string{"</script", "<!--", "<script"} {
			if strings.Contains(lower, bad) {
				t.Errorf("embedded payload contains %q: %s", bad, inner)
			}
		}
	})

	t.Run("round trip restores the value", func(t *testing.T) {
		t.Parallel()

		payload := map[string]any{
			"name":  "</script>",
			"items": []any{1.0, "two", nil, true},
			"uni":   "\u2028\u2029é",
		}
		doc, err := EmbedData(payload, "summary")
		if err != nil {
			t.Fatalf("EmbedData() unexpected error: %v", err)
		}
		raw, err := ExtractData("<html><body>"+doc+"</body></html>", "summary")
		if err != nil {
			t.Fatalf("ExtractData() unexpected error: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("json.Unmarshal() unexpected error: %v", err)
		}
		if got["name"] != "</script>" || got["uni"] != "\u2028\u2029é" {
			t.Errorf("round trip mismatch: %v", got)
		}
		items, ok := got["items"].([]any)
		if !ok || len(items) != 4 || items[1] != "two" {
			t.Errorf("round trip items mismatch: %v", got["items"])
		}
	})
}
