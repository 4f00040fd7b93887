package intent

// FallbackLabel is reported when no configured intent matched the message.
const FallbackLabel = "fallback"

type Entry struct {
	Label    string   `json:"intent"`
	Keywords []string `json:"keywords"`
}

// Table is the ordered keyword configuration. Order decides ties.
type Table []Entry

type Result struct {
	Label    string  `json:"intent"`
	Score    int     `json:"score"`
	Fallback bool    `json:"fallback"`
	Scores   []Score `json:"scores,omitempty"`
}

type Score struct {
	Label   string   `json:"intent"`
	Score   int      `json:"score"`
	Matches []string `json:"matches,omitempty"`
}

type IClassifier interface {
	Classify(message string) Result
	Table() Table
}

// Labels returns the intent labels in table order.
func (t Table) Labels() []string {
	labels := make([]string, 0, len(t))
	for _, e := range t {
		labels = append(labels, e.Label)
	}
	return labels
}
