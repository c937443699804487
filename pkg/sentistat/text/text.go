// Package text implements the normalization convention shared by the corpus
// statistics: cleaning, sentence splitting and word extraction.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/sentistat/pkg/sentistat/stoplist"
)

const (
	// MinSentenceRunes is the exclusive lower bound on a kept sentence's length.
	MinSentenceRunes = 10
	// MinContentRunes and MaxContentRunes bound content word length.
	MinContentRunes = 2
	MaxContentRunes = 20
)

// Normalizer cleans raw post text.
type Normalizer struct {
	stripMarkup bool
}

// NewNormalizer creates a normalizer. With stripMarkup set, HTML tags are
// removed and entities decoded before cleaning.
func NewNormalizer(stripMarkup bool) *Normalizer {
	return &Normalizer{stripMarkup: stripMarkup}
}

// Clean lowercases text and replaces every rune other than Latin letters
// (including the Slovenian/Croatian diacritics), whitespace and sentence
// punctuation with a space. Whitespace runs collapse to one space.
func (n *Normalizer) Clean(s string) string {
	if n != nil && n.stripMarkup {
		s = StripMarkup(s)
	}
	s = strings.ToLower(norm.NFC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if !allowed(r) || unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case unicode.IsSpace(r):
		return true
	}
	switch r {
	case '.', '!', '?',
		'š', 'đ', 'č', 'ć', 'ž', 'Š', 'Đ', 'Č', 'Ć', 'Ž':
		return true
	}
	return false
}

// StripMarkup extracts the text content of an HTML fragment, decoding
// entities. Input that fails to parse is returned unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style":
				return
			case "br", "p", "div", "li":
				b.WriteByte(' ')
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// Sentences splits cleaned text on runs of '.', '!' and '?' and keeps the
// trimmed pieces longer than MinSentenceRunes.
func Sentences(clean string) []string {
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > MinSentenceRunes {
			out = append(out, p)
		}
	}
	return out
}

// Words returns the maximal runs of letters, digits and underscores.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
}

// LongWords keeps words longer than one rune.
func LongWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > 1 {
			out = append(out, w)
		}
	}
	return out
}

// ContentWords keeps words that are not stopwords and are between
// MinContentRunes and MaxContentRunes long.
func ContentWords(words []string, stops *stoplist.Manager) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stops != nil && stops.IsStop(w) {
			continue
		}
		n := utf8.RuneCountInString(w)
		if n < MinContentRunes || n > MaxContentRunes {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Document is one post after normalization.
type Document struct {
	Clean     string
	Sentences []string
	Words     []string // long words of the whole document
	Content   []string // content words of the whole document, in order
}

// Analyze normalizes a post body and extracts its sentences and words.
func (n *Normalizer) Analyze(raw string, stops *stoplist.Manager) Document {
	clean := n.Clean(raw)
	words := Words(clean)
	return Document{
		Clean:     clean,
		Sentences: Sentences(clean),
		Words:     LongWords(words),
		Content:   ContentWords(words, stops),
	}
}
