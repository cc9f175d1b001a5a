package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aluiziolira/go-catalog-sync/models"
)

func sampleResult() *models.ComparisonResult {
	return &models.ComparisonResult{
		ToAdd: []models.Entry{
			{Title: "Hades", PlatformTag: "PC", SourceURL: "http://store.test/games/hades"},
		},
		ToRemove: []models.Entry{
			{Title: "Outer Wilds", PlatformTag: "PS5"},
		},
		InSync: []models.Entry{
			{Title: "Celeste", PlatformTag: "Switch"},
			{Title: "Portal 2", PlatformTag: "PC"},
		},
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "diff.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := writer.Write(sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 5 { // header + 4 entries
		t.Fatalf("csv has %d records, want 5", len(records))
	}
	if records[0][0] != "bucket" {
		t.Fatalf("missing header: %v", records[0])
	}
	if records[1][0] != "to_add" || records[1][1] != "Hades" {
		t.Fatalf("first row = %v", records[1])
	}
	if records[2][0] != "to_remove" || records[2][1] != "Outer Wilds" {
		t.Fatalf("second row = %v", records[2])
	}
	if records[3][0] != "in_sync" || records[3][1] != "Celeste" {
		t.Fatalf("third row = %v", records[3])
	}
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.json")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}
	if err := writer.Write(sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	var rows []row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r row
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("decode line %q: %v", scanner.Text(), err)
		}
		rows = append(rows, r)
	}
	if len(rows) != 4 {
		t.Fatalf("jsonl has %d rows, want 4", len(rows))
	}
	if rows[0].Bucket != "to_add" || rows[0].Title != "Hades" {
		t.Fatalf("first row = %+v", rows[0])
	}
	if rows[3].Bucket != "in_sync" || rows[3].Title != "Portal 2" {
		t.Fatalf("last row = %+v", rows[3])
	}
}

func TestDualWriter(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "diff.csv")
	jsonPath := filepath.Join(dir, "diff.json")

	writer, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("NewDualWriter: %v", err)
	}
	if err := writer.Write(sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, path := range []string{csvPath, jsonPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}
