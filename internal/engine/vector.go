package engine

import (
	"context"
	"log"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/provider"
	"github.com/linkai-dev/linkai/vectorstore"
)

// VectorRetriever embeds the query and asks the external vector index for
// nearest neighbors. Any upstream failure degrades to an empty list; the
// request then runs on lexical candidates alone.
type VectorRetriever struct {
	provider provider.Provider
	store    vectorstore.Store
	cache    QueryCache
	logger   *log.Logger
}

// NewVectorRetriever creates a retriever; cache may be nil
func NewVectorRetriever(p provider.Provider, store vectorstore.Store, cache QueryCache, logger *log.Logger) *VectorRetriever {
	if logger == nil {
		logger = log.New(log.Writer(), "[VECTOR] ", log.LstdFlags)
	}
	return &VectorRetriever{provider: p, store: store, cache: cache, logger: logger}
}

// Search returns up to limit application numbers in the index's relevance
// order, normalized and with unusable payloads dropped.
func (r *VectorRetriever) Search(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	vector := r.embed(ctx, query)
	if len(vector) == 0 {
		return nil
	}

	hits, err := r.store.Query(ctx, vector, limit)
	if err != nil {
		r.logger.Printf("vector query failed: %v", err)
		return nil
	}

	apps := make([]string, 0, len(hits))
	for _, hit := range hits {
		appNo := models.NormalizeApplicationNumber(hit.ApplicationNumber)
		if appNo == "" {
			continue
		}
		apps = append(apps, appNo)
	}
	return apps
}

func (r *VectorRetriever) embed(ctx context.Context, query string) []float32 {
	if r.cache != nil {
		if vec := r.cache.GetEmbedding(ctx, query); len(vec) > 0 {
			return vec
		}
	}
	vecs, err := r.provider.CreateEmbedding(ctx, []string{query})
	if err != nil {
		r.logger.Printf("query embedding failed: %v", err)
		return nil
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		r.logger.Printf("query embedding returned no vector")
		return nil
	}
	if r.cache != nil {
		r.cache.SetEmbedding(ctx, query, vecs[0])
	}
	return vecs[0]
}
