// Package agreement measures inter-annotator agreement.
package agreement

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/sentistat/pkg/sentistat/labels"
)

var (
	// ErrNoPairs is returned when no row carries a numeric label from both annotators.
	ErrNoPairs = errors.New("agreement: no rows with labels from both annotators")
	// ErrUndefined is returned when expected disagreement is zero, e.g. both
	// annotators used a single identical label throughout.
	ErrUndefined = errors.New("agreement: kappa is undefined for this data")
)

// Weighting selects the disagreement weights used by Kappa.
type Weighting int

const (
	Unweighted Weighting = iota
	Linear
	Quadratic
)

func (w Weighting) String() string {
	switch w {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return "none"
	}
}

// ParseWeighting accepts "", "none", "linear" and "quadratic".
func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "", "none":
		return Unweighted, nil
	case "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	}
	return Unweighted, fmt.Errorf("agreement: unknown weighting %q", s)
}

// Result holds Cohen's kappa together with the counts it was derived from.
type Result struct {
	Kappa     float64   `json:"kappa"`
	Observed  float64   `json:"observed_agreement"`
	Expected  float64   `json:"expected_agreement"`
	Pairs     int       `json:"pairs"`
	Dropped   int       `json:"dropped"`
	Labels    []float64 `json:"labels"`
	Confusion [][]int   `json:"confusion"`
	Weighting string    `json:"weighting"`
	Band      string    `json:"interpretation"`
}

// Pairs coerces two annotator columns to numbers and keeps the rows where
// both are present. It returns the kept values and the number of dropped rows.
func Pairs(col1, col2 []string) ([]float64, []float64, int) {
	n := len(col1)
	if len(col2) > n {
		n = len(col2)
	}
	var a, b []float64
	dropped := 0
	for i := 0; i < n; i++ {
		var x, y float64
		var okX, okY bool
		if i < len(col1) {
			x, okX = labels.ParseNumeric(col1[i])
		}
		if i < len(col2) {
			y, okY = labels.ParseNumeric(col2[i])
		}
		if !okX || !okY {
			dropped++
			continue
		}
		a = append(a, x)
		b = append(b, y)
	}
	return a, b, dropped
}

// Kappa computes Cohen's kappa between two equally long label sequences.
// The label set is the sorted union of observed values; rows of the
// confusion matrix follow the first annotator.
func Kappa(a, b []float64, w Weighting) (Result, error) {
	if len(a) != len(b) {
		return Result{}, fmt.Errorf("agreement: length mismatch %d != %d", len(a), len(b))
	}
	if len(a) == 0 {
		return Result{}, ErrNoPairs
	}

	set := make(map[float64]struct{})
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	values := make([]float64, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Float64s(values)
	index := make(map[float64]int, len(values))
	for i, v := range values {
		index[v] = i
	}

	k := len(values)
	cm := make([][]int, k)
	for i := range cm {
		cm[i] = make([]int, k)
	}
	for i := range a {
		cm[index[a[i]]][index[b[i]]]++
	}

	rowSums := make([]float64, k)
	colSums := make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			rowSums[i] += float64(cm[i][j])
			colSums[j] += float64(cm[i][j])
		}
	}
	total := float64(len(a))

	var obsW, expW, obsAgree, expAgree float64
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			weight := disagreement(i, j, w)
			expected := colSums[i] * rowSums[j] / total
			obsW += weight * float64(cm[i][j])
			expW += weight * expected
			if i == j {
				obsAgree += float64(cm[i][j])
				expAgree += expected
			}
		}
	}

	res := Result{
		Observed:  obsAgree / total,
		Expected:  expAgree / total,
		Pairs:     len(a),
		Labels:    values,
		Confusion: cm,
		Weighting: w.String(),
	}
	if expW == 0 {
		return res, ErrUndefined
	}
	res.Kappa = 1 - obsW/expW
	res.Band = Interpret(res.Kappa)
	return res, nil
}

// FromColumns runs Pairs followed by Kappa and records the dropped row count.
func FromColumns(col1, col2 []string, w Weighting) (Result, error) {
	a, b, dropped := Pairs(col1, col2)
	res, err := Kappa(a, b, w)
	res.Dropped = dropped
	return res, err
}

func disagreement(i, j int, w Weighting) float64 {
	d := float64(i - j)
	switch w {
	case Linear:
		return math.Abs(d)
	case Quadratic:
		return d * d
	default:
		if i == j {
			return 0
		}
		return 1
	}
}

// Interpret maps kappa onto the Landis & Koch agreement bands.
func Interpret(kappa float64) string {
	switch {
	case kappa < 0:
		return "poor"
	case kappa <= 0.20:
		return "slight"
	case kappa <= 0.40:
		return "fair"
	case kappa <= 0.60:
		return "moderate"
	case kappa <= 0.80:
		return "substantial"
	default:
		return "almost perfect"
	}
}
