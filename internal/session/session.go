package session

import (
	"context"

	"github.com/linkai-dev/linkai/models"
)

// Store persists per-session conversation logs with a sliding TTL.
type Store interface {
	// Append upserts the session and appends one user turn and one assistant
	// turn as a single atomic operation, refreshing updated_at/expires_at.
	Append(ctx context.Context, sessionID, userText, assistantText string) error

	// ListSessions returns up to limit sessions ordered by recency.
	ListSessions(ctx context.Context, limit int) ([]models.SessionSummary, error)

	// GetHistory returns the ordered message list for a session; a missing
	// or expired session yields an empty list, not an error.
	GetHistory(ctx context.Context, sessionID string) ([]models.Message, error)

	// DeleteSession removes a session, reporting whether anything was deleted.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}

// TruncateTitle derives a session title from the first user message,
// truncating to maxRunes with an ellipsis marker when longer.
func TruncateTitle(userText string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 25
	}
	runes := []rune(userText)
	if len(runes) <= maxRunes {
		return userText
	}
	return string(runes[:maxRunes]) + "..."
}
