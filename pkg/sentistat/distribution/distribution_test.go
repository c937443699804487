package distribution

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sentistat/pkg/sentistat/labels"
)

func TestCount(t *testing.T) {
	c := Count([]string{"1", "1, 3", "2 5", "", "x", "6", "4.0"})

	want := map[labels.Label]int{1: 2, 2: 1, 3: 1, 4: 1, 5: 1}
	if diff := cmp.Diff(want, c.ByLabel); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if c.Total != 6 {
		t.Errorf("total = %d, want 6", c.Total)
	}
}

func TestCountEmptyKeepsAllLabels(t *testing.T) {
	c := Count(nil)
	if len(c.ByLabel) != 5 || c.Total != 0 {
		t.Errorf("unexpected counts %+v", c)
	}
}

func TestTabulate(t *testing.T) {
	ann1 := []string{"3", "1", "2", "5, 1", "4"}
	ann2 := []string{"3", "1", "1, 2", "5", "2"}

	res := Tabulate(ann1, ann2, labels.DefaultScheme())

	if res.Annotator1.Total != 6 || res.Annotator2.Total != 6 {
		t.Errorf("totals = %d/%d, want 6/6", res.Annotator1.Total, res.Annotator2.Total)
	}
	if res.Combined.Total != 12 {
		t.Errorf("grand total = %d, want 12", res.Combined.Total)
	}

	wantCounts := []int{4, 3, 2, 1, 2}
	wantPct := []string{"33.3%", "25.0%", "16.7%", "8.3%", "16.7%"}
	wantNames := []string{"Negative", "Neutral", "Positive", "Mixed/Other", "Sarcastic"}
	if len(res.Table) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(res.Table))
	}
	for i, row := range res.Table {
		if row.Count != wantCounts[i] || row.Percentage != wantPct[i] || row.Name != wantNames[i] {
			t.Errorf("row %d = %+v, want %d %s %s", i, row, wantCounts[i], wantPct[i], wantNames[i])
		}
	}
}

func TestTabulateNoLabels(t *testing.T) {
	res := Tabulate([]string{"", "n/a"}, nil, labels.DefaultScheme())
	for _, row := range res.Table {
		if row.Count != 0 || row.Percentage != "0.0%" {
			t.Errorf("row = %+v, want zero", row)
		}
	}
}
