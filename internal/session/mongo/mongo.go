package mongo_session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/internal/session"
)

// Store implements session.Store over a MongoDB collection. Expiry is
// delegated to a TTL index on expires_at, so no application-level sweep
// runs; append is a single atomic upsert-with-push.
type Store struct {
	collection *mongo.Collection
	ttl        time.Duration
	titleRunes int
	logger     *log.Logger

	indexOnce sync.Once
	indexErr  error
}

// New creates a Mongo-backed session store
func New(client *mongo.Client, dbName, collection string, ttl time.Duration, titleRunes int) *Store {
	return &Store{
		collection: client.Database(dbName).Collection(collection),
		ttl:        ttl,
		titleRunes: titleRunes,
		logger:     log.New(log.Writer(), "[SESSION] ", log.LstdFlags),
	}
}

// ensureIndexes creates the session_id lookup index and the expires_at TTL
// index once per process. Failures are logged, not fatal: the store still
// works, sessions just stop expiring server-side.
func (s *Store) ensureIndexes(ctx context.Context) {
	s.indexOnce.Do(func() {
		_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("chat_history_session_id_idx"),
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("chat_history_expires_at_ttl").SetExpireAfterSeconds(0),
			},
		})
		if err != nil {
			s.indexErr = err
			s.logger.Printf("index creation failed: %v", err)
		}
	})
}

func (s *Store) Append(ctx context.Context, sessionID, userText, assistantText string) error {
	s.ensureIndexes(ctx)

	now := time.Now().UTC()
	title := session.TruncateTitle(userText, s.titleRunes)

	update := bson.M{
		"$setOnInsert": bson.M{
			"session_id": sessionID,
			"created_at": now,
			"title":      title,
		},
		"$push": bson.M{
			"messages": bson.M{
				"$each": []models.Message{
					{Role: "user", Content: userText, Timestamp: now},
					{Role: "assistant", Content: assistantText, Timestamp: now},
				},
			},
		},
		"$set": bson.M{
			"updated_at": now,
			"expires_at": now.Add(s.ttl),
		},
	}

	_, err := s.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("session append failed: %w", err)
	}
	return nil
}

func (s *Store) ListSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "session_id": 1, "title": 1, "updated_at": 1}).
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("session list failed: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.SessionSummary
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("session list decode failed: %w", err)
	}
	return sessions, nil
}

func (s *Store) GetHistory(ctx context.Context, sessionID string) ([]models.Message, error) {
	var doc struct {
		Messages []models.Message `bson:"messages"`
	}
	err := s.collection.FindOne(ctx, bson.M{"session_id": sessionID},
		options.FindOne().SetProjection(bson.M{"_id": 0, "messages": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []models.Message{}, nil
		}
		return nil, fmt.Errorf("session history failed: %w", err)
	}
	if doc.Messages == nil {
		return []models.Message{}, nil
	}
	return doc.Messages, nil
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return false, fmt.Errorf("session delete failed: %w", err)
	}
	return res.DeletedCount > 0, nil
}
