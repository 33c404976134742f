package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/pagetitle/internal/model"
)

// TestSimpleWriter tests the human-readable output format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("title found line", func(t *testing.T) {
		t.Parallel()

		result := model.NewResult("http://example.com")
		result.SetTitle("Example")

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(result)
		if err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		want := "The title for http://example.com was Example\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
		if n != len(want) {
			t.Errorf("expected %d bytes written, got %d", len(want), n)
		}
	})

	t.Run("no title line", func(t *testing.T) {
		t.Parallel()

		result := model.NewResult("http://example.com")

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(result); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		want := "http://example.com had no title\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("verbose adds response details", func(t *testing.T) {
		t.Parallel()

		result := model.NewResult("http://example.com")
		result.SetTitle("Example")
		result.StatusCode = 200
		result.ContentType = "text/html"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(result); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		out := buf.String()
		if !strings.HasPrefix(out, "The title for http://example.com was Example\n") {
			t.Errorf("expected result line first, got %q", out)
		}
		if !strings.Contains(out, "status:       200") {
			t.Errorf("expected status in verbose output, got %q", out)
		}
		if !strings.Contains(out, "content-type: text/html") {
			t.Errorf("expected content type in verbose output, got %q", out)
		}
	})
}

// TestJSONWriter tests the JSON output format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	result := model.NewResult("http://example.com")
	result.SetTitle("Example")
	result.StatusCode = 200

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(result); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	var decoded model.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}

	if decoded.URL != "http://example.com" {
		t.Errorf("expected URL 'http://example.com', got %q", decoded.URL)
	}
	if decoded.Title != "Example" {
		t.Errorf("expected title 'Example', got %q", decoded.Title)
	}
	if !decoded.TitleFound {
		t.Error("expected title_found to be true")
	}
	if decoded.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", decoded.StatusCode)
	}
}

// TestMarkdownWriter tests the Markdown output format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders result table", func(t *testing.T) {
		t.Parallel()

		result := model.NewResult("http://example.com")
		result.SetTitle("Example")
		result.StatusCode = 200
		result.ContentType = "text/html"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "# Page Title Report") {
			t.Errorf("expected header, got %q", out)
		}
		if !strings.Contains(out, "Example") {
			t.Errorf("expected title in output, got %q", out)
		}
		if !strings.Contains(out, "http://example.com") {
			t.Errorf("expected URL in output, got %q", out)
		}
	})

	t.Run("notes missing title", func(t *testing.T) {
		t.Parallel()

		result := model.NewResult("http://example.com")

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		if !strings.Contains(buf.String(), "did not contain a <title> element") {
			t.Errorf("expected missing-title note, got %q", buf.String())
		}
	})
}
