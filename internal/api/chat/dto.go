package chat

import (
	"time"

	"HealthAssistant/internal/entity"
	"HealthAssistant/pkg/intent"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ClassifyRequest struct {
	Message string `json:"message" validate:"max=2000"`
}

type TurnResponse struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	History   []TurnResponse `json:"history"`
}

type SendMessageResponse struct {
	Reply   string         `json:"reply"`
	Source  Source         `json:"source"`
	Intent  string         `json:"intent"`
	History []TurnResponse `json:"history"`
}

type ClassifyResponse struct {
	Intent   string         `json:"intent"`
	Score    int            `json:"score"`
	Fallback bool           `json:"fallback"`
	Scores   []intent.Score `json:"scores"`
}

type IntentsResponse struct {
	Intents intent.Table `json:"intents"`
}

func NewTurnResponses(h entity.History) []TurnResponse {
	out := make([]TurnResponse, 0, len(h))
	for _, t := range h {
		out = append(out, TurnResponse{
			Sender:    t.Sender.String(),
			Message:   t.Message,
			CreatedAt: t.CreatedAt,
		})
	}
	return out
}

func NewSendMessageResponse(r *Reply) SendMessageResponse {
	return SendMessageResponse{
		Reply:   r.Message,
		Source:  r.Source,
		Intent:  r.Intent,
		History: NewTurnResponses(r.History),
	}
}

func NewClassifyResponse(r intent.Result) ClassifyResponse {
	return ClassifyResponse{
		Intent:   r.Label,
		Score:    r.Score,
		Fallback: r.Fallback,
		Scores:   r.Scores,
	}
}
