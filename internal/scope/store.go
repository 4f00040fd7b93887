package scope

import (
	"context"

	"HealthAssistant/internal/entity"
)

// HistoryStore persists the history of each scope for at most the scope's
// lifetime. Implementations are only ever called by Manager while it holds
// the scope lock, so they need not order concurrent writes to one scope.
type HistoryStore interface {
	Load(ctx context.Context, scopeID string) (entity.History, error)
	Append(ctx context.Context, scopeID string, turns ...entity.Turn) error
	Clear(ctx context.Context, scopeID string) error
}
