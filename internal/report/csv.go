package report

import (
	"encoding/csv"
	"io"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// CSVWriter exports the result set as comma-separated values with a fixed
// header row. Every row has exactly the columns of model.Columns, in that
// order, with empty cells for absent data — never a variable-width record.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header row followed by one row per listing.
//
// The byte count is approximate: encoding/csv does not report bytes
// written, so we count through an intermediate writer.
func (w *CSVWriter) Write(rs *model.ResultSet) (int, error) {
	counter := &countingWriter{dst: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(model.Columns()); err != nil {
		return counter.n, err
	}

	for i := range rs.Listings {
		if err := cw.Write(rs.Listings[i].Record()); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// countingWriter counts bytes passed through to the destination.
type countingWriter struct {
	dst io.Writer
	n   int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.dst.Write(p)
	c.n += n
	return n, err
}
