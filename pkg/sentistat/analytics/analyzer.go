package analytics

import (
	"math"
	"sort"

	"github.com/cognicore/sentistat/pkg/sentistat/stoplist"
)

// Pair is an ordered pair of adjacent tokens.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Analyzer aggregates document-level token/category stats.
type Analyzer struct {
	totalDocs int64
	tokenDF   map[string]int64
	tokenCats map[string]map[string]int64
	docSets   []map[string]struct{}
	tokens    *Counter[string]
	bigrams   *Counter[Pair]
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tokenDF:   make(map[string]int64),
		tokenCats: make(map[string]map[string]int64),
		tokens:    NewCounter[string](),
		bigrams:   NewCounter[Pair](),
	}
}

// Process consumes one document's tokens and its category. An empty category
// still counts the document but contributes nothing to label spread.
func (a *Analyzer) Process(tokens []string, category string) {
	a.totalDocs++

	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		a.tokens.Add(tok)
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		a.tokenDF[tok]++
		if category == "" {
			continue
		}
		if a.tokenCats[tok] == nil {
			a.tokenCats[tok] = make(map[string]int64)
		}
		a.tokenCats[tok][category]++
	}
	a.docSets = append(a.docSets, seen)

	// Bigram counts (adjacent tokens only, preserving order)
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] == "" || tokens[i+1] == "" {
			continue
		}
		a.bigrams.Add(Pair{A: tokens[i], B: tokens[i+1]})
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs int64
	TokenDF   map[string]int64
	TokenCats map[string]map[string]int64
	Tokens    *Counter[string]
	Bigrams   *Counter[Pair]

	docSets []map[string]struct{}
}

// Snapshot returns the accumulated statistics. Count maps are copied; the
// counters are shared and must not be mutated by the caller.
func (a *Analyzer) Snapshot() Stats {
	copyCats := make(map[string]map[string]int64, len(a.tokenCats))
	for tok, cats := range a.tokenCats {
		copyCats[tok] = make(map[string]int64, len(cats))
		for cat, count := range cats {
			copyCats[tok][cat] = count
		}
	}
	copyDF := make(map[string]int64, len(a.tokenDF))
	for tok, count := range a.tokenDF {
		copyDF[tok] = count
	}
	return Stats{
		TotalDocs: a.totalDocs,
		TokenDF:   copyDF,
		TokenCats: copyCats,
		Tokens:    a.tokens,
		Bigrams:   a.bigrams,
		docSets:   a.docSets,
	}
}

// VocabularySize returns the number of distinct tokens.
func (s Stats) VocabularySize() int {
	return s.Tokens.Len()
}

// TokenCount returns the total number of tokens.
func (s Stats) TokenCount() int64 {
	return s.Tokens.Total()
}

// Coverage is the type/token ratio: distinct tokens over all tokens.
func (s Stats) Coverage() float64 {
	if s.Tokens.Total() == 0 {
		return 0
	}
	return float64(s.Tokens.Len()) / float64(s.Tokens.Total())
}

// StopwordStats converts corpus stats into the format expected by the
// stoplist candidate search. numCategories normalizes label entropy to [0,1].
func (s Stats) StopwordStats(numCategories int) []stoplist.Stats {
	var out []stoplist.Stats
	if s.TotalDocs == 0 {
		return out
	}
	for tok, df := range s.TokenDF {
		out = append(out, stoplist.Stats{
			Token:        tok,
			DF:           df,
			DFPercent:    100 * (float64(df) / float64(s.TotalDocs)),
			LabelEntropy: entropy(s.TokenCats[tok], numCategories),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// entropy is the Shannon entropy of counts normalized by log2(numCategories).
func entropy(counts map[string]int64, numCategories int) float64 {
	if len(counts) == 0 || numCategories < 2 {
		return 0
	}
	var total float64
	for _, c := range counts {
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / total
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h / math.Log2(float64(numCategories))
}

// BigramStat describes an adjacent token pair.
type BigramStat struct {
	Pair
	Count   int64   `json:"count"`
	Support int64   `json:"support"` // documents containing both tokens
	PMI     float64 `json:"pmi"`     // document-level association
}

// TopBigrams returns the most frequent bigrams with their document PMI.
func (s Stats) TopBigrams(limit int) []BigramStat {
	top := s.Bigrams.MostCommon(limit)
	out := make([]BigramStat, 0, len(top))
	for _, e := range top {
		support := s.cooccurrence(e.Key.A, e.Key.B)
		out = append(out, BigramStat{
			Pair:    e.Key,
			Count:   e.Count,
			Support: support,
			PMI:     computePMI(support, s.TokenDF[e.Key.A], s.TokenDF[e.Key.B], s.TotalDocs),
		})
	}
	return out
}

func (s Stats) cooccurrence(a, b string) int64 {
	var n int64
	for _, set := range s.docSets {
		_, okA := set[a]
		_, okB := set[b]
		if okA && okB {
			n++
		}
	}
	return n
}

func computePMI(pairCount, dfA, dfB, totalDocs int64) float64 {
	if dfA == 0 || dfB == 0 || totalDocs == 0 {
		return 0
	}
	smooth := 1.0
	numerator := (float64(pairCount) + smooth) / float64(totalDocs)
	denominator := ((float64(dfA) + smooth) / float64(totalDocs)) * ((float64(dfB) + smooth) / float64(totalDocs))
	return math.Log(numerator / denominator)
}
