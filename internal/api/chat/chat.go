package chat

import "HealthAssistant/internal/entity"

type Source string

const (
	SourceFAQ         Source = "faq"
	SourceModel       Source = "model"
	SourceUnavailable Source = "unavailable"
	SourceError       Source = "error"
)

const (
	MessageWarmingUp = "The AI is still warming up. Please try again in 30 seconds."
	MessageApology   = "I'm sorry, I'm having trouble connecting to my advanced knowledge base right now."
)

// Reply is the outcome of one processed message. History already contains
// the user and bot turns it produced.
type Reply struct {
	Message string
	Source  Source
	Intent  string
	History entity.History
}
