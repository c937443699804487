package analytics

import (
	"math"
	"testing"
)

func TestAnalyzerCounts(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"lep", "dan", "lep"}, "Positive")
	a.Process([]string{"slab", "dan"}, "Negative")
	a.Process([]string{"dan"}, "")
	stats := a.Snapshot()

	if stats.TotalDocs != 3 {
		t.Fatalf("expected 3 docs, got %d", stats.TotalDocs)
	}
	if stats.TokenDF["dan"] != 3 {
		t.Errorf("df(dan) = %d, want 3", stats.TokenDF["dan"])
	}
	if stats.TokenDF["lep"] != 1 {
		t.Errorf("df(lep) = %d, want 1", stats.TokenDF["lep"])
	}
	if stats.TokenCount() != 6 {
		t.Errorf("token count = %d, want 6", stats.TokenCount())
	}
	if stats.VocabularySize() != 3 {
		t.Errorf("vocabulary = %d, want 3", stats.VocabularySize())
	}
	if got := stats.Coverage(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("coverage = %v, want 0.5", got)
	}
	if got := stats.TokenCats["dan"]; got["Positive"] != 1 || got["Negative"] != 1 || len(got) != 2 {
		t.Errorf("dan categories = %v", got)
	}
}

func TestAnalyzerBigrams(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"mestna", "občina", "ljubljana"}, "Neutral")
	a.Process([]string{"mestna", "občina", "maribor"}, "Neutral")
	a.Process([]string{"ljubljana", "maribor"}, "Neutral")
	stats := a.Snapshot()

	top := stats.TopBigrams(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 bigrams, got %d", len(top))
	}
	if top[0].A != "mestna" || top[0].B != "občina" || top[0].Count != 2 {
		t.Errorf("top bigram = %+v", top[0])
	}
	if top[0].Support != 2 {
		t.Errorf("support = %d, want 2", top[0].Support)
	}
	// second place is the first-seen of the count-1 bigrams
	if top[1].A != "občina" || top[1].B != "ljubljana" {
		t.Errorf("second bigram = %+v", top[1])
	}
	// df(mestna)=df(občina)=2, support 2, N=3: log((3/3)/((3/3)*(3/3))) = 0
	if math.Abs(top[0].PMI) > 1e-9 {
		t.Errorf("pmi = %v, want 0", top[0].PMI)
	}
}

func TestStopwordStatsEntropy(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"zelo", "grozno"}, "Negative")
	a.Process([]string{"zelo", "lepo"}, "Positive")
	a.Process([]string{"zelo"}, "Neutral")
	a.Process([]string{"zelo"}, "Sarcastic")
	stats := a.Snapshot()

	byToken := make(map[string]float64)
	dfPct := make(map[string]float64)
	for _, s := range stats.StopwordStats(4) {
		byToken[s.Token] = s.LabelEntropy
		dfPct[s.Token] = s.DFPercent
	}

	if math.Abs(byToken["zelo"]-1.0) > 1e-9 {
		t.Errorf("entropy(zelo) = %v, want 1", byToken["zelo"])
	}
	if byToken["grozno"] != 0 {
		t.Errorf("entropy(grozno) = %v, want 0", byToken["grozno"])
	}
	if dfPct["zelo"] != 100 {
		t.Errorf("df%%(zelo) = %v", dfPct["zelo"])
	}

}

func TestStopwordStatsEmpty(t *testing.T) {
	if got := NewAnalyzer().Snapshot().StopwordStats(5); len(got) != 0 {
		t.Errorf("expected no stats, got %v", got)
	}
}
