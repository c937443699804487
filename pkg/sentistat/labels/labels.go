package labels

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Label is a numeric sentiment category assigned by an annotator.
type Label int

const (
	Negative Label = iota + 1
	Neutral
	Positive
	Mixed
	Sarcastic
)

// MinLabel and MaxLabel bound the labels counted by the distribution job.
const (
	MinLabel = Negative
	MaxLabel = Sarcastic
)

// Scheme maps label values to display names.
type Scheme struct {
	names map[Label]string
}

// DefaultScheme returns the five-way sentiment scheme used by the corpus.
func DefaultScheme() *Scheme {
	return NewScheme(map[Label]string{
		Negative:  "Negative",
		Neutral:   "Neutral",
		Positive:  "Positive",
		Mixed:     "Mixed/Other",
		Sarcastic: "Sarcastic",
	})
}

// NewScheme builds a scheme from explicit names.
func NewScheme(names map[Label]string) *Scheme {
	copied := make(map[Label]string, len(names))
	for l, n := range names {
		copied[l] = n
	}
	return &Scheme{names: copied}
}

// Name returns the display name of a label, or "Label N" if unknown.
func (s *Scheme) Name(l Label) string {
	if s != nil {
		if n, ok := s.names[l]; ok {
			return n
		}
	}
	return fmt.Sprintf("Label %d", int(l))
}

// Labels returns every named label in ascending order.
func (s *Scheme) Labels() []Label {
	out := make([]Label, 0, len(s.names))
	for l := range s.names {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether l is within the counted label range.
func Valid(l Label) bool {
	return l >= MinLabel && l <= MaxLabel
}

// ParseNumeric coerces a whole cell to a number. Blank or non-numeric cells
// (including multi-label cells such as "1, 3") are reported as missing.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParsePrimary returns the first comma-separated label of a cell.
func ParsePrimary(raw string) (Label, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	first, _, _ := strings.Cut(raw, ",")
	return parseInt(first)
}

// ParseAll returns every label in 1..5 found in a cell. Spaces and commas both
// separate labels; unparseable parts are ignored.
func ParseAll(raw string) []Label {
	parts := strings.Split(strings.ReplaceAll(raw, " ", ","), ",")
	var out []Label
	for _, part := range parts {
		l, ok := parseInt(part)
		if !ok || !Valid(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// parseInt accepts integers and integral floats ("2.0"), which is how
// spreadsheet readers sometimes render integer cells.
func parseInt(s string) (Label, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Label(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return Label(int(f)), true
}
