package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkai-dev/linkai/config"
	"github.com/linkai-dev/linkai/internal/engine"
	"github.com/linkai-dev/linkai/internal/search"
	mongo_session "github.com/linkai-dev/linkai/internal/session/mongo"
	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/provider"
	"github.com/linkai-dev/linkai/repository/mongo_repository"
	"github.com/linkai-dev/linkai/repository/redis_repository"
	qdrant_store "github.com/linkai-dev/linkai/vectorstore/qdrant"
)

// Run wires all dependencies and serves the HTTP API until the listener
// fails. addr overrides the configured listen address when non-empty.
func Run(cfg *config.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "linkai", "status": "running"})
	})
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// shared dependencies (top-level DI)
	ctx := context.Background()

	client, err := mongo_repository.Conn(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	source := mongo_repository.NewPatentSource(client, cfg.Mongo.DBName, cfg.Mongo.PatentsCollection)
	sessions := mongo_session.New(client, cfg.Mongo.DBName, cfg.Mongo.SessionsCollection, cfg.Session.TTL, cfg.Session.TitleRunes)

	llmProvider, err := provider.NewProvider(provider.OpenAI, cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}

	store, err := qdrant_store.New(ctx, cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("qdrant: %w", err)
	}
	defer store.Close()

	// engine.QueryCache rather than *redis_repository.Cache: a typed nil
	// pointer in the interface would look non-nil to the engine
	var cache engine.QueryCache
	if cfg.Redis.Enabled() {
		rdb, err := redis_repository.Conn(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		cache = redis_repository.NewCache(rdb, cfg.Redis.CacheTTL)
	}

	engineLogger := log.New(log.Writer(), "[ENGINE] ", log.LstdFlags)
	eng := engine.NewEngine(cfg.Retrieval, llmProvider, store, source, sessions, cache, engineLogger)
	if err := eng.Warmup(ctx); err != nil {
		return fmt.Errorf("index warmup: %w", err)
	}

	searchIndex, err := search.New(eng.Index(), log.New(log.Writer(), "[SEARCH] ", log.LstdFlags))
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	if err := searchIndex.Load(indexRecords(eng.Index())); err != nil {
		return fmt.Errorf("search index load: %w", err)
	}

	api := e.Group("/api")
	ch := &ChatbotHandler{Engine: eng, ListLimit: cfg.Session.ListLimit}
	ch.Register(api.Group("/chatbot"))
	ph := &PatentsHandler{Search: searchIndex}
	ph.Register(api)

	if addr == "" {
		addr = cfg.Server.Address
		if addr != "" && addr[0] != ':' {
			addr = ":" + addr
		}
		if addr == "" {
			addr = ":8000"
		}
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// indexRecords snapshots full records out of the engine index for the
// advanced search index.
func indexRecords(ix *engine.PatentIndex) []models.PatentRecord {
	entries := ix.Entries()
	records := make([]models.PatentRecord, 0, len(entries))
	for _, entry := range entries {
		if record, ok := ix.Get(entry.AppNo); ok {
			records = append(records, record)
		}
	}
	return records
}
