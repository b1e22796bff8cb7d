package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// JSONWriter outputs the result set as indented JSON.
// The full result set is serialized, including warnings and run metadata,
// so downstream tools see the same information a human does.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result set as JSON.
func (w *JSONWriter) Write(rs *model.ResultSet) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rs); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
