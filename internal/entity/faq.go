package entity

type FAQ struct {
	ID       int64
	Intent   string
	Question string
	Answer   string
}
