package overview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sentistat/internal/fixture"
	"github.com/cognicore/sentistat/pkg/sentistat/analytics"
	"github.com/cognicore/sentistat/pkg/sentistat/corpus"
	"github.com/cognicore/sentistat/pkg/sentistat/labels"
)

func sampleOptions() Options {
	return Options{
		Title:         corpus.ColumnSpec{Name: "title", Index: 6},
		Selftext:      corpus.ColumnSpec{Name: "selftext", Index: 7},
		Annotator1:    corpus.ColumnSpec{Name: "annotator1", Index: 8},
		URL:           corpus.ColumnSpec{Name: "url", Index: 2},
		DefaultSource: "r/Ljubljana",
	}
}

func loadSample(t *testing.T) *corpus.Table {
	t.Helper()
	tbl, err := corpus.Load(fixture.WriteSample(t), corpus.Options{SkipRows: 2})
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return tbl
}

func TestComputeSample(t *testing.T) {
	report, err := Compute(loadSample(t), sampleOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if report.TotalDocuments != 5 {
		t.Errorf("total documents = %d, want 5", report.TotalDocuments)
	}
	if report.TotalWords != 34 {
		t.Errorf("total words = %d, want 34", report.TotalWords)
	}
	if report.TotalSentences != 7 {
		t.Errorf("total sentences = %d, want 7", report.TotalSentences)
	}
	if report.AvgSentenceLength != 5.4 {
		t.Errorf("avg sentence length = %v, want 5.4", report.AvgSentenceLength)
	}
	if report.AvgDocumentLength != 7.6 {
		t.Errorf("avg document length = %v, want 7.6", report.AvgDocumentLength)
	}
	if report.VocabularySize != 28 {
		t.Errorf("vocabulary = %d, want 28", report.VocabularySize)
	}
	if report.Coverage != 0.824 {
		t.Errorf("coverage = %v, want 0.824", report.Coverage)
	}
	if report.TopWordsLimit != 20 || report.TopBigramsLimit != 10 {
		t.Errorf("limits = %d/%d, want 20/10", report.TopWordsLimit, report.TopBigramsLimit)
	}

	wantTop := []WordCount{{"dan", 3}, {"gneča", 3}, {"obvoznici", 2}, {"spet", 2}, {"lep", 1}}
	if diff := cmp.Diff(wantTop, report.TopWords[:5]); diff != "" {
		t.Errorf("top words mismatch (-want +got):\n%s", diff)
	}
	if len(report.TopWords) != 20 {
		t.Errorf("expected 20 top words, got %d", len(report.TopWords))
	}

	if len(report.TopBigrams) != 10 {
		t.Fatalf("expected 10 bigrams, got %d", len(report.TopBigrams))
	}
	first := report.TopBigrams[0]
	if first.Pair != (analytics.Pair{A: "gneča", B: "obvoznici"}) || first.Count != 2 {
		t.Errorf("top bigram = %+v", first)
	}
	second := report.TopBigrams[1]
	if second.Pair != (analytics.Pair{A: "spet", B: "gneča"}) || second.Count != 2 {
		t.Errorf("second bigram = %+v", second)
	}

	wantSources := map[string]int{"r/Ljubljana": 4, "r/slovenia": 1}
	if diff := cmp.Diff(wantSources, report.DocumentsPerSource); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeByLabel(t *testing.T) {
	report, err := Compute(loadSample(t), sampleOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(report.ByLabel) != 5 {
		t.Fatalf("expected 5 label rows, got %d", len(report.ByLabel))
	}

	want := map[labels.Label]struct {
		docs int
		avg  float64
		top  string
	}{
		labels.Negative:  {1, 5.5, "gneča"},
		labels.Neutral:   {1, 7.0, "vprašanje"},
		labels.Positive:  {1, 5.5, "dan"},
		labels.Mixed:     {1, 6.0, "mešani"},
		labels.Sarcastic: {1, 3.0, "super"},
	}
	for _, ls := range report.ByLabel {
		w := want[ls.Label]
		if ls.Documents != w.docs || ls.AvgSentenceLength != w.avg {
			t.Errorf("%s: docs=%d avg=%v, want %d %v", ls.Name, ls.Documents, ls.AvgSentenceLength, w.docs, w.avg)
		}
		if len(ls.TopWords) == 0 || ls.TopWords[0].Word != w.top {
			t.Errorf("%s: top words = %v, want first %q", ls.Name, ls.TopWords, w.top)
		}
	}
	if report.ByLabel[0].Name != "Negative" || report.ByLabel[0].TopWords[0].Count != 2 {
		t.Errorf("negative row = %+v", report.ByLabel[0])
	}
}

func TestComputeUnknownAndMissingLabels(t *testing.T) {
	tbl := &corpus.Table{
		Source: "mem",
		Header: []string{"title", "selftext", "annotator1"},
		Rows: [][]string{
			{"Prvi zapis o mestu", "", "7"},
			{"Drugi zapis", "", ""},
		},
	}
	opts := Options{
		Title:      corpus.ColumnSpec{Name: "title"},
		Selftext:   corpus.ColumnSpec{Name: "selftext"},
		Annotator1: corpus.ColumnSpec{Name: "annotator1"},
		URL:        corpus.ColumnSpec{Name: "url", Index: 99},
	}
	report, err := Compute(tbl, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(report.ByLabel) != 6 {
		t.Fatalf("expected 5 scheme labels plus label 7, got %d", len(report.ByLabel))
	}
	extra := report.ByLabel[5]
	if extra.Label != 7 || extra.Name != "Label 7" || extra.Documents != 1 {
		t.Errorf("extra label row = %+v", extra)
	}
	for _, ls := range report.ByLabel[:5] {
		if ls.Documents != 0 || ls.AvgSentenceLength != 0 || len(ls.TopWords) != 0 {
			t.Errorf("expected empty row for %s, got %+v", ls.Name, ls)
		}
	}
	if report.DocumentsPerSource[DefaultSource] != 2 || len(report.DocumentsPerSource) != 1 {
		t.Errorf("sources = %v", report.DocumentsPerSource)
	}
}

func TestComputeEmptyTable(t *testing.T) {
	tbl := &corpus.Table{Source: "mem", Header: []string{"title", "selftext", "annotator1"}}
	report, err := Compute(tbl, Options{
		Title:      corpus.ColumnSpec{Name: "title"},
		Selftext:   corpus.ColumnSpec{Name: "selftext"},
		Annotator1: corpus.ColumnSpec{Name: "annotator1"},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if report.TotalDocuments != 0 || report.AvgDocumentLength != 0 || report.Coverage != 0 {
		t.Errorf("unexpected report for empty table: %+v", report)
	}
}

func TestComputeMissingColumn(t *testing.T) {
	tbl := &corpus.Table{Source: "mem", Header: []string{"title"}, Rows: [][]string{{"x"}}}
	_, err := Compute(tbl, Options{
		Title:      corpus.ColumnSpec{Name: "title"},
		Selftext:   corpus.ColumnSpec{Name: "selftext", Index: 5},
		Annotator1: corpus.ColumnSpec{Name: "annotator1", Index: 6},
	})
	if err == nil {
		t.Error("expected missing column error")
	}
}

func TestSourceOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.reddit.com/r/ljubljana/comments/x/", "r/Ljubljana"},
		{"https://www.reddit.com/r/Slovenia/comments/x/", "r/Slovenia"},
		{"https://example.com/post/1", "r/Ljubljana"},
		{"", "r/Ljubljana"},
		{"::bad", "r/Ljubljana"},
	}
	for _, tt := range tests {
		if got := sourceOf(tt.url, "r/Ljubljana"); got != tt.want {
			t.Errorf("sourceOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
