package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/pagetitle/internal/model"
)

// SimpleWriter outputs the human-readable result line.
// This is the default format: exactly one line per lookup, stating either
// the title that was found or that the page had none.
type SimpleWriter struct {
	baseWriter

	// verbose adds response details after the result line.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with response details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
// In the default mode this is exactly one line, in one of two shapes:
//
//	The title for <url> was <title>
//	<url> had no title
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	if result.TitleFound {
		fmt.Fprintf(&sb, "The title for %s was %s\n", result.URL, result.Title)
	} else {
		fmt.Fprintf(&sb, "%s had no title\n", result.URL)
	}

	if w.verbose {
		fmt.Fprintf(&sb, "  status:       %d\n", result.StatusCode)
		if result.ContentType != "" {
			fmt.Fprintf(&sb, "  content-type: %s\n", result.ContentType)
		}
		if result.Description != "" {
			fmt.Fprintf(&sb, "  description:  %s\n", result.Description)
		}
		if result.Canonical != "" {
			fmt.Fprintf(&sb, "  canonical:    %s\n", result.Canonical)
		}
		fmt.Fprintf(&sb, "  elapsed:      %s\n", result.Elapsed.Round(time.Millisecond))
	}

	return w.output.Write([]byte(sb.String()))
}
