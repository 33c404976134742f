package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/pagetitle/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables and GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Page Title Report")
	md.PlainText("")

	title := "_(no title)_"
	if result.TitleFound {
		title = result.Title
	}

	rows := [][]string{
		{"URL", "`" + result.URL + "`"},
		{"Title", title},
		{"Status", strconv.Itoa(result.StatusCode)},
		{"Content-Type", result.ContentType},
		{"Fetched", result.FetchedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if result.Description != "" {
		rows = append(rows, []string{"Description", result.Description})
	}
	if result.Canonical != "" {
		rows = append(rows, []string{"Canonical", "`" + result.Canonical + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if !result.TitleFound {
		md.Note("The page did not contain a <title> element.")
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
