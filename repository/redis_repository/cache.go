package redis_repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	embeddingKeyPrefix = "emb:"
	answerKeyPrefix    = "ans:"
)

// Cache stores query embeddings and generated answers keyed by the query
// text, so repeated questions skip the embedding and generation round trips.
// All methods degrade to cache-miss on Redis errors.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a query cache with the given entry TTL
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetEmbedding returns the cached embedding for query, or nil on miss
func (c *Cache) GetEmbedding(ctx context.Context, query string) []float32 {
	val, err := c.client.Get(ctx, embeddingKeyPrefix+hashKey(query)).Result()
	if err != nil {
		return nil
	}
	var vec []float32
	if err := json.Unmarshal([]byte(val), &vec); err != nil {
		return nil
	}
	return vec
}

// SetEmbedding stores the embedding for query
func (c *Cache) SetEmbedding(ctx context.Context, query string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, embeddingKeyPrefix+hashKey(query), data, c.ttl).Err()
}

// GetAnswer returns the cached answer for query; ok is false on miss
func (c *Cache) GetAnswer(ctx context.Context, query string) (string, bool) {
	val, err := c.client.Get(ctx, answerKeyPrefix+hashKey(query)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetAnswer stores the generated answer for query
func (c *Cache) SetAnswer(ctx context.Context, query, answer string) {
	_ = c.client.Set(ctx, answerKeyPrefix+hashKey(query), answer, c.ttl).Err()
}

func hashKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}
