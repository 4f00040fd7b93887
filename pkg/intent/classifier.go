package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Classifier struct {
	table Table
	// keywords holds the normalised keywords, index-aligned with table.
	keywords [][]string
}

func NewClassifier(table Table) (IClassifier, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	owned := make(Table, len(table))
	keywords := make([][]string, len(table))
	for i, e := range table {
		owned[i] = Entry{Label: e.Label, Keywords: append([]string(nil), e.Keywords...)}
		keywords[i] = make([]string, len(e.Keywords))
		for j, kw := range e.Keywords {
			keywords[i][j] = normalize(kw)
		}
	}

	return &Classifier{
		table:    owned,
		keywords: keywords,
	}, nil
}

// Classify scores every intent by how many of its keywords occur as a
// substring of the normalised message. The first intent in table order with
// the highest score wins; a best score of zero yields FallbackLabel.
func (c *Classifier) Classify(message string) Result {
	text := normalize(message)

	scores := make([]Score, len(c.table))
	best := -1
	bestScore := 0

	for i, e := range c.table {
		s := Score{Label: e.Label}
		for j, kw := range c.keywords[i] {
			if strings.Contains(text, kw) {
				s.Score++
				s.Matches = append(s.Matches, e.Keywords[j])
			}
		}
		scores[i] = s

		// strict > keeps the earliest entry on ties
		if s.Score > bestScore {
			best = i
			bestScore = s.Score
		}
	}

	if best < 0 {
		return Result{
			Label:    FallbackLabel,
			Fallback: true,
			Scores:   scores,
		}
	}

	return Result{
		Label:  c.table[best].Label,
		Score:  bestScore,
		Scores: scores,
	}
}

func (c *Classifier) Table() Table {
	out := make(Table, len(c.table))
	for i, e := range c.table {
		out[i] = Entry{Label: e.Label, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}

// normalize lowercases text and folds combining marks so "Fièvre" and
// "fievre" compare equal. Whitespace and punctuation are left in place, so a
// keyword such as " cold " only matches a whole word.
func normalize(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}

	return result
}
