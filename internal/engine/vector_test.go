package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/linkai-dev/linkai/vectorstore"
)

func TestVectorSearchNormalizesHits(t *testing.T) {
	store := &stubVectorStore{hits: []vectorstore.Hit{
		{ApplicationNumber: "10-2020-0001234", Score: 0.92},
		{ApplicationNumber: "no digits", Score: 0.80},
		{ApplicationNumber: "1020210005678", Score: 0.71},
	}}
	r := NewVectorRetriever(&stubProvider{}, store, nil, discardLogger())

	got := r.Search(context.Background(), "수소 엔진", 10)
	if len(got) != 2 || got[0] != "1020200001234" || got[1] != "1020210005678" {
		t.Fatalf("search = %v", got)
	}
}

func TestVectorSearchDegradesOnEmbeddingFailure(t *testing.T) {
	p := &stubProvider{embedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}}
	r := NewVectorRetriever(p, &stubVectorStore{}, nil, discardLogger())

	if got := r.Search(context.Background(), "수소 엔진", 10); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestVectorSearchDegradesOnStoreFailure(t *testing.T) {
	store := &stubVectorStore{err: errors.New("qdrant unreachable")}
	r := NewVectorRetriever(&stubProvider{}, store, nil, discardLogger())

	if got := r.Search(context.Background(), "수소 엔진", 10); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestVectorSearchZeroLimit(t *testing.T) {
	r := NewVectorRetriever(&stubProvider{}, &stubVectorStore{}, nil, discardLogger())
	if got := r.Search(context.Background(), "수소 엔진", 0); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
