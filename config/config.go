package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the patent RAG service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Session   SessionConfig   `mapstructure:"session"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains the OpenAI-compatible provider settings
type LLMConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key required (or LINKAI_LLM_API_KEY)")
	}
	return nil
}

// QdrantConfig contains vector index connection settings
type QdrantConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	APIKey     string        `mapstructure:"api_key"`
	UseTLS     bool          `mapstructure:"use_tls"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func (q QdrantConfig) Validate() error {
	if strings.TrimSpace(q.Host) == "" {
		return fmt.Errorf("qdrant.host required")
	}
	if strings.TrimSpace(q.Collection) == "" {
		return fmt.Errorf("qdrant.collection required")
	}
	return nil
}

// MongoConfig contains document store connection settings
type MongoConfig struct {
	URI                string        `mapstructure:"uri"`
	DBName             string        `mapstructure:"db_name"`
	PatentsCollection  string        `mapstructure:"patents_collection"`
	SessionsCollection string        `mapstructure:"sessions_collection"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

func (m MongoConfig) Validate() error {
	if strings.TrimSpace(m.URI) == "" {
		return fmt.Errorf("mongo.uri required")
	}
	if strings.TrimSpace(m.DBName) == "" {
		return fmt.Errorf("mongo.db_name required")
	}
	return nil
}

// RedisConfig contains Redis cache connection settings. An empty host
// disables the cache.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Host) != "" }

// RetrievalConfig contains hybrid retrieval knobs
type RetrievalConfig struct {
	TopK             int           `mapstructure:"top_k"`
	VectorMultiplier int           `mapstructure:"vector_multiplier"`
	ContextChars     int           `mapstructure:"context_chars"`
	KeywordTimeout   time.Duration `mapstructure:"keyword_timeout"`
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`
	GenerateTimeout  time.Duration `mapstructure:"generate_timeout"`
}

// Normalize applies defaults for unset retrieval values
func (r RetrievalConfig) Normalize() RetrievalConfig {
	if r.TopK <= 0 {
		r.TopK = 10
	}
	if r.VectorMultiplier <= 0 {
		r.VectorMultiplier = 2
	}
	if r.ContextChars <= 0 {
		r.ContextChars = 60000
	}
	if r.KeywordTimeout <= 0 {
		r.KeywordTimeout = 30 * time.Second
	}
	if r.SearchTimeout <= 0 {
		r.SearchTimeout = 15 * time.Second
	}
	if r.GenerateTimeout <= 0 {
		r.GenerateTimeout = 60 * time.Second
	}
	return r
}

// SessionConfig contains chat history retention settings
type SessionConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	TitleRunes int           `mapstructure:"title_runes"`
	ListLimit  int           `mapstructure:"list_limit"`
}

// Normalize applies defaults for unset session values
func (s SessionConfig) Normalize() SessionConfig {
	if s.TTL <= 0 {
		s.TTL = 30 * 24 * time.Hour
	}
	if s.TitleRunes <= 0 {
		s.TitleRunes = 25
	}
	if s.ListLimit <= 0 {
		s.ListLimit = 100
	}
	return s
}

// LoadConfig loads config from file; environment variables with the LINKAI_
// prefix override file values, and a missing file is tolerated when the
// required settings arrive via env.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.default_timeout", "30s")
	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.completion_model", "gpt-5")
	viper.SetDefault("llm.embedding_model", "text-embedding-3-large")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 4096)
	viper.SetDefault("llm.timeout", "60s")
	viper.SetDefault("qdrant.host", "localhost")
	viper.SetDefault("qdrant.port", 6334)
	viper.SetDefault("qdrant.collection", "patents")
	viper.SetDefault("qdrant.timeout", "15s")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.db_name", "linkai")
	viper.SetDefault("mongo.patents_collection", "patents")
	viper.SetDefault("mongo.sessions_collection", "chat_history")
	viper.SetDefault("mongo.timeout", "10s")
	viper.SetDefault("redis.cache_ttl", "10m")
	viper.SetDefault("session.ttl", "720h")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("LINKAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	config.Retrieval = config.Retrieval.Normalize()
	config.Session = config.Session.Normalize()

	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Qdrant.Validate(); err != nil {
		panic(err)
	}
	if err := config.Mongo.Validate(); err != nil {
		panic(err)
	}
	return &config
}
