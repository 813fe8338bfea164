package engine

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/vectorstore"
)

type stubProvider struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
	embedFn    func(ctx context.Context, texts []string) ([][]float32, error)

	completeCalls int
	lastPrompt    string
}

func (s *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	s.completeCalls++
	s.lastPrompt = prompt
	if s.completeFn == nil {
		return "", nil
	}
	return s.completeFn(ctx, prompt)
}

func (s *stubProvider) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if s.embedFn == nil {
		return [][]float32{{0.1, 0.2}}, nil
	}
	return s.embedFn(ctx, texts)
}

type stubVectorStore struct {
	hits []vectorstore.Hit
	err  error
}

func (s *stubVectorStore) Query(ctx context.Context, vector []float32, limit int) ([]vectorstore.Hit, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.hits) > limit {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

func (s *stubVectorStore) Close() error { return nil }

type stubCache struct {
	embeddings map[string][]float32
	answers    map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{embeddings: map[string][]float32{}, answers: map[string]string{}}
}

func (c *stubCache) GetEmbedding(ctx context.Context, query string) []float32 {
	return c.embeddings[query]
}

func (c *stubCache) SetEmbedding(ctx context.Context, query string, vec []float32) {
	c.embeddings[query] = vec
}

func (c *stubCache) GetAnswer(ctx context.Context, query string) (string, bool) {
	answer, ok := c.answers[query]
	return answer, ok
}

func (c *stubCache) SetAnswer(ctx context.Context, query, answer string) {
	c.answers[query] = answer
}

type stubRecordSource struct {
	records []models.PatentRecord
	err     error
}

func (s *stubRecordSource) ListAll(ctx context.Context, fn func(models.PatentRecord) error) error {
	if s.err != nil {
		return s.err
	}
	for _, r := range s.records {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubRecordSource) EstimatedCount(ctx context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRecord(appNo, titleKo, abstract string) models.PatentRecord {
	return models.PatentRecord{
		ApplicationNumber: appNo,
		Title:             models.Title{Ko: titleKo},
		Abstract:          abstract,
	}
}

func builtIndex(t *testing.T, records ...models.PatentRecord) *PatentIndex {
	t.Helper()
	index := NewPatentIndex(&stubRecordSource{records: records}, discardLogger())
	if err := index.Ensure(context.Background()); err != nil {
		t.Fatalf("index build: %v", err)
	}
	return index
}
