package chat

import "HealthAssistant/pkg/response"

var (
	ErrMissingSession     = response.NewError(400, "conversation session is missing")
	ErrHistoryUnavailable = response.NewError(503, "conversation history unavailable")
)
