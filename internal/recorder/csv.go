package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSV writes records to a CSV file with a header row.
type CSV struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSV creates (or truncates) the file at path and writes the header.
func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(FieldKeys); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	return &CSV{file: f, writer: w}, nil
}

// FieldKeys returns the canonical field order.
func (c *CSV) FieldKeys() []string { return FieldKeys }

// Save appends one record row.
func (c *CSV) Save(values []any) error {
	if len(values) != len(FieldKeys) {
		return fmt.Errorf("expected %d values, got %d", len(FieldKeys), len(values))
	}

	row := make([]string, len(values))
	for i, v := range values {
		row[i] = stringify(v)
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the file.
func (c *CSV) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return c.file.Close()
}
