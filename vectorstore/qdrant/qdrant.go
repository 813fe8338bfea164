package qdrant_store

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/linkai-dev/linkai/config"
	"github.com/linkai-dev/linkai/vectorstore"
)

// Store implements vectorstore.Store against a Qdrant collection
type Store struct {
	client     *qdrant.Client
	collection string
}

// New connects to Qdrant and verifies the connection with a health check
func New(ctx context.Context, cfg config.QdrantConfig) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}
	if _, err := client.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("qdrant health check failed: %w", err)
	}
	return &Store{client: client, collection: cfg.Collection}, nil
}

// Query runs a nearest-neighbor search and returns hits with their
// applicationNumber payload, preserving the index's relevance order.
func (s *Store) Query(ctx context.Context, vector []float32, limit int) ([]vectorstore.Hit, error) {
	if limit <= 0 {
		return nil, nil
	}
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	hits := make([]vectorstore.Hit, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		if payload == nil {
			continue
		}
		appNo := payload["applicationNumber"].GetStringValue()
		if appNo == "" {
			continue
		}
		hits = append(hits, vectorstore.Hit{ApplicationNumber: appNo, Score: p.GetScore()})
	}
	return hits, nil
}

// Close releases the underlying gRPC connection
func (s *Store) Close() error { return s.client.Close() }
