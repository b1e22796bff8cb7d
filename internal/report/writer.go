package report

import (
	"io"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// Writer outputs a scrape's result set in some format.
type Writer interface {
	// Write outputs the result set to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(rs *model.ResultSet) (int, error)
}

// MultiWriter writes to multiple Writers in sequence.
// Useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than using
// io.MultiWriter because our Writer interface writes result sets, not raw
// bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result set to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(rs *model.ResultSet) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(rs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
