package chatService

import (
	"context"
	"errors"

	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/api/faq"
	"HealthAssistant/internal/entity"
	"HealthAssistant/internal/scope"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/intent"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/responder"
	"github.com/sirupsen/logrus"
)

// SendMessage processes one message inside the scope lock. The user turn and
// the bot turn are recorded together, so a failed lookup or store write never
// leaves half a pair behind.
func (s *chatService) SendMessage(ctx context.Context, scopeID string, message string) (*chat.Reply, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if scopeID == "" {
		return nil, chat.ErrMissingSession
	}

	var reply *chat.Reply
	err := s.scopes.WithScope(ctx, scopeID, func(sc *scope.Scope) error {
		userTurn := entity.Turn{
			Sender:    entity.SenderUser,
			Message:   message,
			CreatedAt: s.now(),
		}

		result := s.classifier.Classify(message)

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     result.Label,
			"score":      result.Score,
		}).Debug("Message classified")

		text, source, err := s.answer(ctx, message, result)
		if err != nil {
			return err
		}

		botTurn := entity.Turn{
			Sender:    entity.SenderBot,
			Message:   text,
			CreatedAt: s.now(),
		}

		if err := sc.Append(ctx, userTurn, botTurn); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to append conversation turns")
			return chat.ErrHistoryUnavailable
		}

		reply = &chat.Reply{
			Message: text,
			Source:  source,
			Intent:  result.Label,
			History: sc.History(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, scope.ErrEmptyScopeID) {
			return nil, chat.ErrMissingSession
		}
		return nil, err
	}

	return reply, nil
}

// answer picks the stored FAQ answer for a recognised intent and falls back to
// the generative responder on a miss. Only FAQ store failures are returned.
func (s *chatService) answer(ctx context.Context, message string, result intent.Result) (string, chat.Source, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !result.Fallback {
		record, err := s.faqs.GetByIntent(ctx, result.Label)
		switch {
		case err == nil:
			return record.Answer, chat.SourceFAQ, nil
		case errors.Is(err, faq.ErrFAQNotFound):
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intent":     result.Label,
			}).Warn("No FAQ stored for intent, using generative responder")
		default:
			return "", "", err
		}
	}

	text, err := s.responder.Complete(ctx, message)
	if err == nil {
		return text, chat.SourceModel, nil
	}

	if errors.Is(err, responder.ErrUnavailable) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Generative responder not ready")
		return chat.MessageWarmingUp, chat.SourceUnavailable, nil
	}

	log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
	}, "Generative responder request failed")

	return chat.MessageApology, chat.SourceError, nil
}

func (s *chatService) GetHistory(ctx context.Context, scopeID string) (entity.History, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if scopeID == "" {
		return nil, chat.ErrMissingSession
	}

	h, err := s.scopes.History(ctx, scopeID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load conversation history")
		return nil, chat.ErrHistoryUnavailable
	}

	return h, nil
}

func (s *chatService) ClearHistory(ctx context.Context, scopeID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if scopeID == "" {
		return chat.ErrMissingSession
	}

	if err := s.scopes.Clear(ctx, scopeID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to clear conversation history")
		return chat.ErrHistoryUnavailable
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Conversation history cleared")

	return nil
}

func (s *chatService) Classify(message string) intent.Result {
	return s.classifier.Classify(message)
}

func (s *chatService) Intents() intent.Table {
	return s.classifier.Table()
}
