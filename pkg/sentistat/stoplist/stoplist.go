package stoplist

import (
	"sort"
	"strings"
)

// Slovenian is the built-in list of Slovenian function words, plus a few URL
// fragments that survive text cleaning.
var Slovenian = []string{
	"je", "in", "se", "da", "na", "za", "ne", "pa", "sem", "bi", "ki", "to", "ali", "so", "si",
	"če", "še", "ni", "mi", "me", "po", "iz", "do", "od", "s", "o", "v", "a", "ter", "kot",
	"ampak", "oziroma", "namreč", "torej", "tudi", "samo", "saj", "le", "sicer", "vedno", "nič",
	"nikoli", "vsi", "vsak", "nekaj", "nekdo", "karkoli", "kamor", "kjer", "kako", "kaj", "www",
	"kdaj", "kdo", "zakaj", "kam", "tja", "tukaj", "tam", "zdaj", "takrat", "https",
	"danes", "jutri", "včeraj", "pri", "pred", "zadaj", "pod", "nad", "ob", "z", "brez",
	"vse", "kar", "ker", "ga", "ko", "jo", "bo", "čez", "redu", "ima", "že", "več", "res",
}

// Manager holds the active stopword set.
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword
type Reason struct {
	Configured   bool    `json:"configured,omitempty"` // listed in the configured stoplist
	HighDF       bool    `json:"high_df"`              // high document frequency
	HighEntropy  bool    `json:"high_entropy"`         // uniform distribution across sentiment labels
	DFPercent    float64 `json:"df_percent"`
	LabelEntropy float64 `json:"label_entropy"`
}

// NewManager creates a manager seeded with the given stopwords (lowercased).
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = Reason{Configured: true}
	}
	return &Manager{stops: stops}
}

// NewDefault creates a manager seeded with the Slovenian list.
func NewDefault() *Manager {
	return NewManager(Slovenian)
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	m.stops[strings.ToLower(token)] = reason
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Stats holds statistics for candidate evaluation
type Stats struct {
	Token        string
	DF           int64
	DFPercent    float64
	LabelEntropy float64
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token  string  `json:"token"`
	Reason Reason  `json:"reason"`
	Score  float64 `json:"score"`
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent    float64 // e.g. 30: appears in 30% of documents
	LabelEntropy float64 // e.g. 0.7: spread evenly across sentiment labels
}

// DefaultThresholds returns thresholds suited to a few hundred short posts.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent:    30.0,
		LabelEntropy: 0.7,
	}
}

// SuggestCandidates returns tokens that look like stopwords but are not yet
// listed, highest score first.
func (m *Manager) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	var candidates []Candidate

	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}

		reason := Reason{
			HighDF:       s.DFPercent > thresholds.DFPercent,
			HighEntropy:  s.LabelEntropy > thresholds.LabelEntropy,
			DFPercent:    s.DFPercent,
			LabelEntropy: s.LabelEntropy,
		}
		if !reason.HighDF || !reason.HighEntropy {
			continue
		}
		candidates = append(candidates, Candidate{
			Token:  s.Token,
			Reason: reason,
			Score:  (s.DFPercent/100.0 + s.LabelEntropy) / 2.0,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Token < candidates[j].Token
		}
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
