package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sentistat/internal/fixture"
)

func TestNewTableSkipsLegendAndBlankRows(t *testing.T) {
	raw := [][]string{
		{"legend"},
		{"more legend"},
		{" title ", "annotator1"},
		{"a", "1"},
		{"", "  "},
		{"b"},
	}
	tbl, err := NewTable("mem", raw, 2)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if diff := cmp.Diff([]string{"title", "annotator1"}, tbl.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	rows, cols := tbl.Shape()
	if rows != 2 || cols != 2 {
		t.Errorf("shape = %dx%d, want 2x2", rows, cols)
	}

	col, err := tbl.Column(ColumnSpec{Name: "annotator1", Index: 9})
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if diff := cmp.Diff([]string{"1", ""}, col); diff != "" {
		t.Errorf("column mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTableNoHeader(t *testing.T) {
	if _, err := NewTable("mem", [][]string{{"legend"}}, 2); err == nil {
		t.Error("expected error when header row is missing")
	}
}

func TestResolve(t *testing.T) {
	tbl := &Table{Source: "mem", Header: []string{"Title", "x"}, Rows: [][]string{{"a", "b", "c"}}}

	tests := []struct {
		spec ColumnSpec
		want int
	}{
		{ColumnSpec{Name: "x", Index: 0}, 1},
		{ColumnSpec{Name: "title", Index: 2}, 0}, // case-insensitive fallback
		{ColumnSpec{Name: "missing", Index: 2}, 2},
		{ColumnSpec{Index: 1}, 1},
	}
	for _, tt := range tests {
		got, err := tbl.Resolve(tt.spec)
		if err != nil || got != tt.want {
			t.Errorf("Resolve(%v) = %d, %v; want %d", tt.spec, got, err, tt.want)
		}
	}

	if _, err := tbl.Resolve(ColumnSpec{Name: "missing", Index: 7}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
	if got := tbl.OptionalColumn(ColumnSpec{Index: 7}); len(got) != 1 || got[0] != "" {
		t.Errorf("OptionalColumn = %v", got)
	}
}

func TestLoadXLSX(t *testing.T) {
	path := fixture.WriteSample(t)

	tbl, err := Load(path, Options{SkipRows: 2})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rows, _ := tbl.Shape()
	if rows != len(fixture.Sample) {
		t.Fatalf("rows = %d, want %d", rows, len(fixture.Sample))
	}
	if diff := cmp.Diff(fixture.Header, tbl.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	col, err := tbl.Column(ColumnSpec{Name: "annotator2", Index: 9})
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if col[2] != "1, 2" {
		t.Errorf("annotator2[2] = %q", col[2])
	}

	if _, err := Load(path, Options{Sheet: "Nope", SkipRows: 2}); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestLoadCSVAndTSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "c.csv")
	if err := os.WriteFile(csvPath, []byte("legend\ntitle,annotator1\n\"Hej, ti\",2\n,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(csvPath, Options{SkipRows: 1})
	if err != nil {
		t.Fatalf("Load csv: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "Hej, ti" {
		t.Errorf("rows = %v", tbl.Rows)
	}

	tsvPath := filepath.Join(dir, "c.tsv")
	if err := os.WriteFile(tsvPath, []byte("title\tannotator1\nx\t3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err = Load(tsvPath, Options{})
	if err != nil {
		t.Fatalf("Load tsv: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][1] != "3" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.jsonl")
	data := `{"title": "Prvi", "annotator1": 2}
not json
{"title": "Drugi", "annotator1": "1, 3", "annotator2": null, "extra": true}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"annotator1", "title", "annotator2", "extra"}
	if diff := cmp.Diff(want, tbl.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	col, err := tbl.Column(ColumnSpec{Name: "annotator1"})
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "1, 3"}, col); diff != "" {
		t.Errorf("annotator1 mismatch (-want +got):\n%s", diff)
	}
	if tbl.Rows[1][3] != "true" || tbl.Rows[1][2] != "" {
		t.Errorf("row = %v", tbl.Rows[1])
	}
}

func TestLoadUnsupported(t *testing.T) {
	if _, err := Load("corpus.ods", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
