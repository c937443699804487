// Package distribution tabulates how often each sentiment label was assigned.
package distribution

import (
	"fmt"

	"github.com/cognicore/sentistat/pkg/sentistat/labels"
)

// Counts holds per-label counts for one annotator (or several combined).
type Counts struct {
	ByLabel map[labels.Label]int `json:"by_label"`
	Total   int                  `json:"total"`
}

func newCounts() Counts {
	c := Counts{ByLabel: make(map[labels.Label]int)}
	for l := labels.MinLabel; l <= labels.MaxLabel; l++ {
		c.ByLabel[l] = 0
	}
	return c
}

// Count parses every cell with labels.ParseAll and counts each label found.
// A cell labeled "1, 3" contributes one count to each of 1 and 3.
func Count(cells []string) Counts {
	c := newCounts()
	for _, cell := range cells {
		for _, l := range labels.ParseAll(cell) {
			c.ByLabel[l]++
			c.Total++
		}
	}
	return c
}

// Merge adds counts together.
func Merge(all ...Counts) Counts {
	out := newCounts()
	for _, c := range all {
		for l, n := range c.ByLabel {
			out.ByLabel[l] += n
		}
		out.Total += c.Total
	}
	return out
}

// Row is one line of the label distribution table.
type Row struct {
	Label      labels.Label `json:"label"`
	Name       string       `json:"sentiment_label"`
	Count      int          `json:"count"`
	Percent    float64      `json:"percent"`
	Percentage string       `json:"percentage"`
}

// Result is the output of the distribution job.
type Result struct {
	Rows       int      `json:"rows"`
	Columns    int      `json:"columns"`
	Header     []string `json:"header"`
	Annotator1 Counts   `json:"annotator1"`
	Annotator2 Counts   `json:"annotator2"`
	Combined   Counts   `json:"combined"`
	Table      []Row    `json:"table"`
}

// Tabulate counts the labels of both annotators and builds the combined table.
func Tabulate(ann1, ann2 []string, scheme *labels.Scheme) Result {
	c1 := Count(ann1)
	c2 := Count(ann2)
	combined := Merge(c1, c2)

	res := Result{
		Annotator1: c1,
		Annotator2: c2,
		Combined:   combined,
	}
	for l := labels.MinLabel; l <= labels.MaxLabel; l++ {
		n := combined.ByLabel[l]
		pct := 0.0
		if combined.Total > 0 {
			pct = float64(n) / float64(combined.Total) * 100
		}
		res.Table = append(res.Table, Row{
			Label:      l,
			Name:       scheme.Name(l),
			Count:      n,
			Percent:    pct,
			Percentage: fmt.Sprintf("%.1f%%", pct),
		})
	}
	return res
}
