package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/linkai-dev/linkai/internal/session"
	"github.com/linkai-dev/linkai/models"
)

// Store is an in-memory session.Store used for tests and dev mode. Expiry
// is enforced lazily on access instead of by a background index.
type Store struct {
	mu         sync.Mutex
	sessions   map[string]*models.SessionRecord
	ttl        time.Duration
	titleRunes int
	now        func() time.Time
}

// New creates an in-memory session store with the given sliding TTL
func New(ttl time.Duration, titleRunes int) *Store {
	return &Store{
		sessions:   make(map[string]*models.SessionRecord),
		ttl:        ttl,
		titleRunes: titleRunes,
		now:        time.Now,
	}
}

func (s *Store) Append(ctx context.Context, sessionID, userText, assistantText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	now := s.now().UTC()
	rec, ok := s.sessions[sessionID]
	if !ok {
		rec = &models.SessionRecord{
			SessionID: sessionID,
			Title:     session.TruncateTitle(userText, s.titleRunes),
			CreatedAt: now,
		}
		s.sessions[sessionID] = rec
	}
	rec.Messages = append(rec.Messages,
		models.Message{Role: "user", Content: userText, Timestamp: now},
		models.Message{Role: "assistant", Content: assistantText, Timestamp: now},
	)
	rec.UpdatedAt = now
	rec.ExpiresAt = now.Add(s.ttl)
	return nil
}

func (s *Store) ListSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	summaries := make([]models.SessionSummary, 0, len(s.sessions))
	for _, rec := range s.sessions {
		summaries = append(summaries, models.SessionSummary{
			SessionID: rec.SessionID,
			Title:     rec.Title,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *Store) GetHistory(ctx context.Context, sessionID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return []models.Message{}, nil
	}
	out := make([]models.Message, len(rec.Messages))
	copy(out, rec.Messages)
	return out, nil
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	if _, ok := s.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return true, nil
}

// Record returns a copy of the full session document, for tests
func (s *Store) Record(sessionID string) (models.SessionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return models.SessionRecord{}, false
	}
	return *rec, true
}

// SetClock overrides the time source, for tests
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) evictExpiredLocked() {
	now := s.now().UTC()
	for id, rec := range s.sessions {
		if rec.ExpiresAt.Before(now) {
			delete(s.sessions, id)
		}
	}
}
