package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linkai-dev/linkai/config"
	"github.com/linkai-dev/linkai/internal/session"
	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/provider"
	"github.com/linkai-dev/linkai/repository"
	"github.com/linkai-dev/linkai/vectorstore"
)

// QueryCache caches query embeddings and final answers keyed by the query
// text. Implemented by repository/redis_repository.Cache; nil disables
// caching.
type QueryCache interface {
	GetEmbedding(ctx context.Context, query string) []float32
	SetEmbedding(ctx context.Context, query string, vec []float32)
	GetAnswer(ctx context.Context, query string) (string, bool)
	SetAnswer(ctx context.Context, query, answer string)
}

// Answer is the result of one chat turn.
type Answer struct {
	SessionID string `json:"session_id"`
	Text      string `json:"answer"`
}

// Engine orchestrates one answer flow: keyword extraction and vector search
// run concurrently, their results are merged into a bounded candidate list,
// and the assembled context is sent to the model. Every external call is
// bounded by its own timeout and fails closed into an empty or fallback
// value, so the flow itself has no error paths short of a missing index.
type Engine struct {
	cfg      config.RetrievalConfig
	logger   *log.Logger
	cache    QueryCache
	sessions session.Store

	index     *PatentIndex
	keywords  *KeywordExtractor
	lexical   *LexicalMatcher
	vector    *VectorRetriever
	contextB  *ContextBuilder
	generator *AnswerGenerator
}

// NewEngine wires the retrieval components. cache may be nil when Redis is
// not configured.
func NewEngine(
	cfg config.RetrievalConfig,
	p provider.Provider,
	store vectorstore.Store,
	source repository.RecordSource,
	sessions session.Store,
	cache QueryCache,
	logger *log.Logger,
) *Engine {
	if logger == nil {
		logger = log.New(log.Writer(), "[ENGINE] ", log.LstdFlags)
	}
	index := NewPatentIndex(source, logger)
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		cache:     cache,
		sessions:  sessions,
		index:     index,
		keywords:  NewKeywordExtractor(p, logger),
		lexical:   NewLexicalMatcher(index),
		vector:    NewVectorRetriever(p, store, cache, logger),
		contextB:  NewContextBuilder(index),
		generator: NewAnswerGenerator(p, logger),
	}
}

// Index exposes the patent index for the search API and the rebuild command
func (e *Engine) Index() *PatentIndex { return e.index }

// Warmup builds the index ahead of the first request
func (e *Engine) Warmup(ctx context.Context) error {
	if err := e.index.Ensure(ctx); err != nil {
		return err
	}
	indexSize.Set(float64(e.index.Size()))
	return nil
}

// RebuildIndex forces a reload from the record source
func (e *Engine) RebuildIndex(ctx context.Context) error {
	if err := e.index.Rebuild(ctx); err != nil {
		return err
	}
	indexSize.Set(float64(e.index.Size()))
	return nil
}

// Chat answers one user message. An empty sessionID starts a new session.
// The returned text is always persisted as the assistant turn, including
// fallback messages; persistence failures are logged, never surfaced.
func (e *Engine) Chat(ctx context.Context, sessionID, message string) (Answer, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if err := e.index.Ensure(ctx); err != nil {
		return Answer{}, err
	}
	indexSize.Set(float64(e.index.Size()))

	if e.cache != nil {
		if answer, ok := e.cache.GetAnswer(ctx, message); ok {
			answerRequests.WithLabelValues("cached").Inc()
			e.persist(ctx, sessionID, message, answer)
			return Answer{SessionID: sessionID, Text: answer}, nil
		}
	}

	answer := e.answer(ctx, message)
	e.persist(ctx, sessionID, message, answer)
	return Answer{SessionID: sessionID, Text: answer}, nil
}

func (e *Engine) answer(ctx context.Context, message string) string {
	candidates := e.retrieve(ctx, message)
	if len(candidates) == 0 {
		answerRequests.WithLabelValues("no_information").Inc()
		return NoInformationAnswer
	}
	for _, cand := range candidates {
		candidateCount.WithLabelValues(string(cand.Source)).Inc()
	}

	contextText := e.contextB.Build(candidates, e.cfg.ContextChars)

	start := time.Now()
	answer, ok := e.generator.Generate(ctx, message, contextText, e.cfg.GenerateTimeout)
	generateDuration.Observe(time.Since(start).Seconds())

	answerRequests.WithLabelValues("answered").Inc()
	// fallback messages are persisted as turns but never cached; a cached
	// failure would outlive the outage that produced it
	if e.cache != nil && ok {
		e.cache.SetAnswer(ctx, message, answer)
	}
	return answer
}

// retrieve runs both sources concurrently and merges their rankings.
// Vector hits are restricted to application numbers present in the index;
// the vector store may lag behind the record source.
func (e *Engine) retrieve(ctx context.Context, message string) []models.Candidate {
	var (
		wg         sync.WaitGroup
		keywords   []models.WeightedKeyword
		vectorApps []string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		kwCtx, cancel := context.WithTimeout(ctx, e.cfg.KeywordTimeout)
		defer cancel()
		keywords = e.keywords.Extract(kwCtx, message)
	}()
	go func() {
		defer wg.Done()
		searchCtx, cancel := context.WithTimeout(ctx, e.cfg.SearchTimeout)
		defer cancel()
		vectorApps = e.vector.Search(searchCtx, message, e.cfg.TopK*e.cfg.VectorMultiplier)
	}()
	wg.Wait()

	lexicalApps := e.lexical.Match(keywords, e.cfg.TopK)

	known := make([]string, 0, len(vectorApps))
	for _, appNo := range vectorApps {
		if _, ok := e.index.Get(appNo); ok {
			known = append(known, appNo)
		}
	}

	merged := MergeCandidates(lexicalApps, known, e.cfg.TopK*e.cfg.VectorMultiplier)
	e.logger.Printf("retrieved %d candidates (lexical=%d vector=%d)", len(merged), len(lexicalApps), len(known))
	return merged
}

func (e *Engine) persist(ctx context.Context, sessionID, userText, assistantText string) {
	if err := e.sessions.Append(ctx, sessionID, userText, assistantText); err != nil {
		e.logger.Printf("session append failed for %s: %v", sessionID, err)
	}
}

// ListSessions returns session summaries ordered by recency
func (e *Engine) ListSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	return e.sessions.ListSessions(ctx, limit)
}

// GetHistory returns the full message history for a session
func (e *Engine) GetHistory(ctx context.Context, sessionID string) ([]models.Message, error) {
	return e.sessions.GetHistory(ctx, sessionID)
}

// DeleteSession removes a session, reporting whether it existed
func (e *Engine) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	return e.sessions.DeleteSession(ctx, sessionID)
}
