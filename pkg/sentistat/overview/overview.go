// Package overview computes corpus-wide lexical statistics broken down by
// sentiment label.
package overview

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/sentistat/pkg/sentistat/analytics"
	"github.com/cognicore/sentistat/pkg/sentistat/corpus"
	"github.com/cognicore/sentistat/pkg/sentistat/labels"
	"github.com/cognicore/sentistat/pkg/sentistat/stoplist"
	"github.com/cognicore/sentistat/pkg/sentistat/text"
)

// Options configures Compute. Zero limits fall back to the defaults below.
type Options struct {
	Title      corpus.ColumnSpec
	Selftext   corpus.ColumnSpec
	Annotator1 corpus.ColumnSpec
	URL        corpus.ColumnSpec

	DefaultSource string
	TopWords      int
	TopBigrams    int
	TopLabelWords int
	Thresholds    stoplist.Thresholds

	Normalizer *text.Normalizer
	Stoplist   *stoplist.Manager
	Scheme     *labels.Scheme
	Logger     *zap.Logger
}

const (
	defaultTopWords      = 20
	defaultTopBigrams    = 10
	defaultTopLabelWords = 5

	// DefaultSource counts posts whose url names no subreddit.
	DefaultSource = "r/Ljubljana"
)

func (o *Options) fill() {
	if o.DefaultSource == "" {
		o.DefaultSource = DefaultSource
	}
	if o.TopWords <= 0 {
		o.TopWords = defaultTopWords
	}
	if o.TopBigrams <= 0 {
		o.TopBigrams = defaultTopBigrams
	}
	if o.TopLabelWords <= 0 {
		o.TopLabelWords = defaultTopLabelWords
	}
	if o.Thresholds == (stoplist.Thresholds{}) {
		o.Thresholds = stoplist.DefaultThresholds()
	}
	if o.Normalizer == nil {
		o.Normalizer = text.NewNormalizer(false)
	}
	if o.Stoplist == nil {
		o.Stoplist = stoplist.NewDefault()
	}
	if o.Scheme == nil {
		o.Scheme = labels.DefaultScheme()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// WordCount is a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// LabelStats summarizes the documents whose primary label is Label.
type LabelStats struct {
	Label             labels.Label `json:"label"`
	Name              string       `json:"name"`
	Documents         int          `json:"documents"`
	Sentences         int          `json:"sentences"`
	SentenceWords     int          `json:"sentence_words"`
	AvgSentenceLength float64      `json:"avg_sentence_length_words"`
	TopWords          []WordCount  `json:"top_content_words"`
}

// Report is the result of Compute.
type Report struct {
	Rows               int                    `json:"rows"`
	Columns            int                    `json:"columns"`
	TotalDocuments     int                    `json:"total_documents"`
	TotalWords         int64                  `json:"total_words"`
	AvgSentenceLength  float64                `json:"avg_sentence_length_words"`
	TotalSentences     int                    `json:"total_sentences"`
	AvgDocumentLength  float64                `json:"avg_document_length_words"`
	TopWords           []WordCount            `json:"top_content_words"`
	TopBigrams         []analytics.BigramStat `json:"top_content_bigrams"`
	DocumentsPerSource map[string]int         `json:"documents_per_source"`
	VocabularySize     int                    `json:"content_vocabulary_size"`
	Coverage           float64                `json:"content_token_coverage"`
	ByLabel            []LabelStats           `json:"by_label"`
	StopwordCandidates []stoplist.Candidate   `json:"stopword_candidates,omitempty"`

	// requested list lengths, which name the text report keys
	TopWordsLimit   int `json:"-"`
	TopBigramsLimit int `json:"-"`
}

type labelAcc struct {
	docs          int
	sentences     int
	sentenceWords int
	words         *analytics.Counter[string]
}

// Compute runs the overview job over tbl.
func Compute(tbl *corpus.Table, opts Options) (*Report, error) {
	opts.fill()

	titles, err := tbl.Column(opts.Title)
	if err != nil {
		return nil, fmt.Errorf("title column: %w", err)
	}
	bodies, err := tbl.Column(opts.Selftext)
	if err != nil {
		return nil, fmt.Errorf("selftext column: %w", err)
	}
	ann1, err := tbl.Column(opts.Annotator1)
	if err != nil {
		return nil, fmt.Errorf("annotator1 column: %w", err)
	}
	urls := tbl.OptionalColumn(opts.URL)

	rows, cols := tbl.Shape()
	opts.Logger.Info("computing overview", zap.Int("rows", rows), zap.Int("cols", cols))

	analyzer := analytics.NewAnalyzer()
	perLabel := make(map[labels.Label]*labelAcc)
	sources := make(map[string]int)
	var (
		sentenceWords int
		sentences     int
		docWords      int
		unlabelled    int
	)

	for i := range tbl.Rows {
		doc := opts.Normalizer.Analyze(titles[i]+" "+bodies[i], opts.Stoplist)
		sentiment, hasSentiment := labels.ParsePrimary(ann1[i])

		var acc *labelAcc
		if hasSentiment {
			acc = perLabel[sentiment]
			if acc == nil {
				acc = &labelAcc{words: analytics.NewCounter[string]()}
				perLabel[sentiment] = acc
			}
			acc.docs++
			acc.words.AddAll(doc.Content)
		} else {
			unlabelled++
		}

		for _, s := range doc.Sentences {
			n := len(text.LongWords(text.Words(s)))
			if n == 0 {
				continue
			}
			sentenceWords += n
			sentences++
			if acc != nil {
				acc.sentenceWords += n
				acc.sentences++
			}
		}
		docWords += len(doc.Words)

		category := ""
		if hasSentiment {
			category = opts.Scheme.Name(sentiment)
		}
		analyzer.Process(doc.Content, category)
		sources[sourceOf(urls[i], opts.DefaultSource)]++
	}
	if unlabelled > 0 {
		opts.Logger.Debug("rows without a primary label", zap.Int("count", unlabelled))
	}

	stats := analyzer.Snapshot()
	report := &Report{
		Rows:               rows,
		Columns:            cols,
		TotalDocuments:     rows,
		TotalWords:         stats.TokenCount(),
		TotalSentences:     sentences,
		DocumentsPerSource: sources,
		VocabularySize:     stats.VocabularySize(),
		Coverage:           round(stats.Coverage(), 3),
		TopBigrams:         stats.TopBigrams(opts.TopBigrams),
		TopWordsLimit:      opts.TopWords,
		TopBigramsLimit:    opts.TopBigrams,
	}
	if sentences > 0 {
		report.AvgSentenceLength = round(float64(sentenceWords)/float64(sentences), 1)
	}
	if rows > 0 {
		report.AvgDocumentLength = round(float64(docWords)/float64(rows), 1)
	}
	report.TopWords = wordCounts(stats.Tokens.MostCommon(opts.TopWords))
	report.ByLabel = byLabel(perLabel, opts)

	numCats := len(opts.Scheme.Labels())
	report.StopwordCandidates = opts.Stoplist.SuggestCandidates(stats.StopwordStats(numCats), opts.Thresholds)

	return report, nil
}

// byLabel lists every scheme label, then any other observed label, in order.
func byLabel(perLabel map[labels.Label]*labelAcc, opts Options) []LabelStats {
	seen := make(map[labels.Label]bool)
	order := opts.Scheme.Labels()
	for _, l := range order {
		seen[l] = true
	}
	var extra []labels.Label
	for l := range perLabel {
		if !seen[l] {
			extra = append(extra, l)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	order = append(order, extra...)

	out := make([]LabelStats, 0, len(order))
	for _, l := range order {
		ls := LabelStats{Label: l, Name: opts.Scheme.Name(l), TopWords: []WordCount{}}
		if acc := perLabel[l]; acc != nil {
			ls.Documents = acc.docs
			ls.Sentences = acc.sentences
			ls.SentenceWords = acc.sentenceWords
			if acc.sentences > 0 {
				ls.AvgSentenceLength = round(float64(acc.sentenceWords)/float64(acc.sentences), 1)
			}
			ls.TopWords = wordCounts(acc.words.MostCommon(opts.TopLabelWords))
		}
		out = append(out, ls)
	}
	return out
}

func wordCounts(entries []analytics.Entry[string]) []WordCount {
	out := make([]WordCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, WordCount{Word: e.Key, Count: e.Count})
	}
	return out
}

// sourceOf derives "r/<subreddit>" from a post URL. URLs without a subreddit
// segment, and subreddits matching the default case-insensitively, map to
// the default source.
func sourceOf(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "r" && parts[i+1] != "" {
			src := "r/" + parts[i+1]
			if strings.EqualFold(src, fallback) {
				return fallback
			}
			return src
		}
	}
	return fallback
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
