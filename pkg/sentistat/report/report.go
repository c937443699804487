// Package report renders job results as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cognicore/sentistat/pkg/sentistat/agreement"
	"github.com/cognicore/sentistat/pkg/sentistat/distribution"
	"github.com/cognicore/sentistat/pkg/sentistat/labels"
	"github.com/cognicore/sentistat/pkg/sentistat/overview"
)

// Format selects the output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat accepts "text" and "json"; empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("report: unknown format %q", s)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// Kappa writes the agreement result.
func Kappa(w io.Writer, res agreement.Result, f Format) error {
	if f == JSON {
		return WriteJSON(w, res)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Cohen's kappa between Annotator1 and Annotator2 is: %.2f%%\n", res.Kappa*100)
	fmt.Fprintf(&b, "\nPairs compared: %d (dropped %d rows without a numeric label from both annotators)\n", res.Pairs, res.Dropped)
	fmt.Fprintf(&b, "Observed agreement: %.3f, expected agreement: %.3f\n", res.Observed, res.Expected)
	fmt.Fprintf(&b, "Weighting: %s, interpretation: %s\n", res.Weighting, res.Band)

	if len(res.Labels) > 0 {
		headers := []string{"A1 \\ A2"}
		for _, l := range res.Labels {
			headers = append(headers, formatLabel(l))
		}
		t := newTable(headers...)
		for i, l := range res.Labels {
			row := []string{formatLabel(l)}
			for _, n := range res.Confusion[i] {
				row = append(row, strconv.Itoa(n))
			}
			t.Row(row...)
		}
		fmt.Fprintf(&b, "\nConfusion matrix:\n%s\n", t.Render())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Overview writes the dataset statistics.
func Overview(w io.Writer, r *overview.Report, f Format) error {
	if f == JSON {
		return WriteJSON(w, r)
	}
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "Full dataset shape: (%d, %d)\n", r.Rows, r.Columns)
	fmt.Fprintf(&b, "\n%s\nFULL DATASET STATISTICS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "total_documents: %d\n", r.TotalDocuments)
	fmt.Fprintf(&b, "total_words: %d\n", r.TotalWords)
	fmt.Fprintf(&b, "avg_sentence_length_words: %.1f\n", r.AvgSentenceLength)
	fmt.Fprintf(&b, "total_sentences: %d\n", r.TotalSentences)
	fmt.Fprintf(&b, "avg_document_length_words: %.1f\n", r.AvgDocumentLength)
	fmt.Fprintf(&b, "top_%d_content_words: %s\n", limit(r.TopWordsLimit, len(r.TopWords)), joinWords(r.TopWords))

	bigrams := make([]string, 0, len(r.TopBigrams))
	for _, bg := range r.TopBigrams {
		bigrams = append(bigrams, fmt.Sprintf("%s %s (%d)", bg.A, bg.B, bg.Count))
	}
	fmt.Fprintf(&b, "top_%d_content_bigrams: %s\n", limit(r.TopBigramsLimit, len(r.TopBigrams)), strings.Join(bigrams, ", "))

	sources := make([]string, 0, len(r.DocumentsPerSource))
	for _, src := range sortedKeys(r.DocumentsPerSource) {
		sources = append(sources, fmt.Sprintf("%s: %d", src, r.DocumentsPerSource[src]))
	}
	fmt.Fprintf(&b, "documents_per_source: %s\n", strings.Join(sources, ", "))
	fmt.Fprintf(&b, "content_vocabulary_size: %d\n", r.VocabularySize)
	fmt.Fprintf(&b, "content_token_coverage: %.3f\n", r.Coverage)

	b.WriteString("\n--- SENTENCE LENGTH ACROSS SENTIMENT LABELS ---\n")
	for _, ls := range r.ByLabel {
		fmt.Fprintf(&b, "%-12s: %5.1f words\n", ls.Name, ls.AvgSentenceLength)
	}

	b.WriteString("\n--- MOST FREQUENT CONTENT WORDS PER SENTIMENT CATEGORY ---\n")
	for _, ls := range r.ByLabel {
		fmt.Fprintf(&b, "\n%s:\n", ls.Name)
		for _, wc := range ls.TopWords {
			fmt.Fprintf(&b, "  %-12s: %d\n", wc.Word, wc.Count)
		}
	}

	if len(r.TopBigrams) > 0 {
		t := newTable("Bigram", "Count", "Docs", "PMI")
		for _, bg := range r.TopBigrams {
			t.Row(bg.A+" "+bg.B, strconv.FormatInt(bg.Count, 10), strconv.FormatInt(bg.Support, 10), fmt.Sprintf("%.3f", bg.PMI))
		}
		fmt.Fprintf(&b, "\n--- CONTENT BIGRAMS ---\n%s\n", t.Render())
	}

	if len(r.StopwordCandidates) > 0 {
		b.WriteString("\n--- STOPWORD CANDIDATES ---\n")
		for _, c := range r.StopwordCandidates {
			fmt.Fprintf(&b, "  %-12s: %.3f (df %.1f%%, label entropy %.2f)\n",
				c.Token, c.Score, c.Reason.DFPercent, c.Reason.LabelEntropy)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// limit prefers the requested list length over the number of entries found.
func limit(requested, found int) int {
	if requested > 0 {
		return requested
	}
	return found
}

func joinWords(words []overview.WordCount) string {
	parts := make([]string, 0, len(words))
	for _, wc := range words {
		parts = append(parts, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
	}
	return strings.Join(parts, ", ")
}

// Distribution writes the label distribution.
func Distribution(w io.Writer, res distribution.Result, f Format) error {
	if f == JSON {
		return WriteJSON(w, res)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Shape: (%d, %d)\n", res.Rows, res.Columns)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(res.Header, ", "))

	b.WriteString("\nCounts per annotator:\n")
	fmt.Fprintf(&b, "Annotator1: %s total: %d\n", formatCounts(res.Annotator1), res.Annotator1.Total)
	fmt.Fprintf(&b, "Annotator2: %s total: %d\n", formatCounts(res.Annotator2), res.Annotator2.Total)
	fmt.Fprintf(&b, "\nGrand total counts: %s\n", formatCounts(res.Combined))
	fmt.Fprintf(&b, "Grand total annotations: %d\n", res.Combined.Total)

	t := newTable("Sentiment Label", "Count", "Percentage")
	for _, row := range res.Table {
		t.Row(row.Name, strconv.Itoa(row.Count), row.Percentage)
	}
	fmt.Fprintf(&b, "\n%s\n", t.Render())

	_, err := io.WriteString(w, b.String())
	return err
}

func formatCounts(c distribution.Counts) string {
	parts := make([]string, 0, len(c.ByLabel))
	for l := labels.MinLabel; l <= labels.MaxLabel; l++ {
		parts = append(parts, fmt.Sprintf("%d: %d", l, c.ByLabel[l]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
