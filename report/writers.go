// Package report materializes a comparison result for the downstream
// notification layer.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aluiziolira/go-catalog-sync/models"
)

// OutputWriter defines the interface for diff output.
type OutputWriter interface {
	Write(result *models.ComparisonResult) error
	Close() error
	Validate() error
}

// row is one diff line: an entry tagged with its bucket.
type row struct {
	Bucket      string `json:"bucket"`
	Title       string `json:"title"`
	PlatformTag string `json:"platform"`
	SourceURL   string `json:"source_url,omitempty"`
	StableID    string `json:"stable_id,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

func resultRows(result *models.ComparisonResult) []row {
	rows := make([]row, 0, len(result.ToAdd)+len(result.ToRemove)+len(result.InSync))
	appendBucket := func(bucket string, entries []models.Entry) {
		for _, e := range entries {
			rows = append(rows, row{
				Bucket:      bucket,
				Title:       e.Title,
				PlatformTag: e.PlatformTag,
				SourceURL:   e.SourceURL,
				StableID:    e.StableID,
				ReleaseDate: e.ReleaseDate,
			})
		}
	}
	appendBucket("to_add", result.ToAdd)
	appendBucket("to_remove", result.ToRemove)
	appendBucket("in_sync", result.InSync)
	return rows
}

// CSVWriter writes the diff as CSV.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter initialises a CSV writer and writes the header row.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	header := []string{"bucket", "title", "platform", "source_url", "stable_id", "release_date"}
	if err := writer.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}

	return &CSVWriter{file: f, writer: writer}, nil
}

// Write appends every bucket of the diff to the CSV output.
func (cw *CSVWriter) Write(result *models.ComparisonResult) error {
	for _, r := range resultRows(result) {
		record := []string{r.Bucket, r.Title, r.PlatformTag, r.SourceURL, r.StableID, r.ReleaseDate}
		if err := cw.writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return cw.file.Close()
}

// Validate ensures the file has content besides the header.
func (cw *CSVWriter) Validate() error {
	info, err := cw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat csv file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("csv file is empty")
	}
	return nil
}

// JSONWriter writes newline-delimited JSON diff rows.
type JSONWriter struct {
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
}

// NewJSONWriter initialises the JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	return &JSONWriter{
		file:    f,
		writer:  buffer,
		encoder: json.NewEncoder(buffer),
	}, nil
}

// Write appends the diff in JSONL format.
func (jw *JSONWriter) Write(result *models.ComparisonResult) error {
	for _, r := range resultRows(result) {
		if err := jw.encoder.Encode(r); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return nil
}

// Close flushes buffers and closes the underlying file.
func (jw *JSONWriter) Close() error {
	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return jw.file.Close()
}

// Validate ensures the JSON file has data.
func (jw *JSONWriter) Validate() error {
	info, err := jw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat json file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("json file is empty")
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
