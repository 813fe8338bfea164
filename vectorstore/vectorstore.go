package vectorstore

import "context"

// Hit is a single nearest-neighbor result. ApplicationNumber carries the raw
// payload value; callers normalize it before joining against the index.
type Hit struct {
	ApplicationNumber string
	Score             float32
}

// Store is the narrow interface over the external vector index
type Store interface {
	Query(ctx context.Context, vector []float32, limit int) ([]Hit, error)
	Close() error
}
