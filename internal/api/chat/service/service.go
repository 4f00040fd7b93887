package chatService

import (
	"context"
	"time"

	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	"HealthAssistant/internal/scope"
	"HealthAssistant/pkg/intent"
	"HealthAssistant/pkg/responder"
	"github.com/sirupsen/logrus"
)

// FAQStore resolves an intent label to its canned answer. A miss is reported
// as faq.ErrFAQNotFound.
type FAQStore interface {
	GetByIntent(ctx context.Context, intent string) (entity.FAQ, error)
}

type IChatService interface {
	SendMessage(ctx context.Context, scopeID string, message string) (*chat.Reply, error)
	GetHistory(ctx context.Context, scopeID string) (entity.History, error)
	ClearHistory(ctx context.Context, scopeID string) error
	Classify(message string) intent.Result
	Intents() intent.Table
}

type chatService struct {
	log        *logrus.Logger
	scopes     scope.IManager
	classifier intent.IClassifier
	faqs       FAQStore
	responder  responder.IResponder
	now        func() time.Time
}

func NewChatService(
	log *logrus.Logger,
	scopes scope.IManager,
	classifier intent.IClassifier,
	faqs FAQStore,
	responder responder.IResponder,
) IChatService {
	return &chatService{
		log:        log,
		scopes:     scopes,
		classifier: classifier,
		faqs:       faqs,
		responder:  responder,
		now:        time.Now,
	}
}
