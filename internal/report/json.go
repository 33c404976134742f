package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/pagetitle/internal/model"
)

// JSONWriter outputs results as indented JSON.
// This format is designed for scripting and machine consumption.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result as JSON.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
