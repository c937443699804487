// Package fixture writes small annotated corpora for tests.
package fixture

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the column layout of the annotated corpus.
var Header = []string{"score", "id", "url", "numcomments", "createdutc", "date", "title", "selftext", "annotator1", "annotator2"}

// Legend is written above the header, the way the corpus spreadsheet carries
// its label legend.
var Legend = [][]string{
	{"Legend: 1 Negative, 2 Neutral, 3 Positive"},
	{"4 Mixed/Other, 5 Sarcastic"},
}

// Post is one corpus row.
type Post struct {
	URL        string
	Title      string
	Selftext   string
	Annotator1 string
	Annotator2 string
}

// Row renders the post in Header order.
func (p Post) Row(i int) []string {
	return []string{
		fmt.Sprint(i + 1), fmt.Sprintf("id%d", i), p.URL, "0", "1700000000", "2023-11-14",
		p.Title, p.Selftext, p.Annotator1, p.Annotator2,
	}
}

// Sample is a five-post corpus with known statistics.
var Sample = []Post{
	{
		URL:        "https://www.reddit.com/r/ljubljana/comments/a1/",
		Title:      "Lep dan v Tivoliju",
		Selftext:   "Park je poln ljudi. Sonce sije cel dan!",
		Annotator1: "3",
		Annotator2: "3",
	},
	{
		URL:        "https://www.reddit.com/r/ljubljana/comments/a2/",
		Title:      "Gneča na obvoznici",
		Selftext:   "Spet gneča na obvoznici. Grozno stanje vsak dan.",
		Annotator1: "1",
		Annotator2: "1",
	},
	{
		URL:        "https://www.reddit.com/r/slovenia/comments/a3/",
		Title:      "Vprašanje o parkiranju",
		Selftext:   "Kje lahko parkiram blizu centra?",
		Annotator1: "2",
		Annotator2: "1, 2",
	},
	{
		URL:        "",
		Title:      "Super, spet gneča",
		Selftext:   "",
		Annotator1: "5, 1",
		Annotator2: "5",
	},
	{
		URL:        "https://www.reddit.com/r/ljubljana/comments/a5/",
		Title:      "Mešani občutki",
		Selftext:   "Hrana dobra, cene visoke.",
		Annotator1: "4",
		Annotator2: "2",
	},
}

// Rows returns legend, header and data rows for posts.
func Rows(posts []Post) [][]string {
	rows := make([][]string, 0, len(Legend)+1+len(posts))
	rows = append(rows, Legend...)
	rows = append(rows, Header)
	for i, p := range posts {
		rows = append(rows, p.Row(i))
	}
	return rows
}

// WriteXLSX writes rows to a new workbook under t.TempDir and returns its path.
func WriteXLSX(t testing.TB, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", axis, &cells); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteSample writes the Sample corpus and returns its path.
func WriteSample(t testing.TB) string {
	t.Helper()
	return WriteXLSX(t, Rows(Sample))
}
