package model

import "time"

// Config holds all runtime configuration. It is built once at startup and
// treated as read-only afterwards; components receive it (or a sub-struct)
// at construction and never reach for globals.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	Analyze AnalyzeConfig `yaml:"analyze"`
	Server  ServerConfig  `yaml:"server"`
	Batch   BatchConfig   `yaml:"batch"`
	Robots  RobotsConfig  `yaml:"robots"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig controls outbound fetches toward the upstream source.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// SearchConfig controls the search orchestration loop.
type SearchConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Affiliate       string        `yaml:"affiliate"`
	RequestDelay    time.Duration `yaml:"request_delay"` // minimum delay between upstream fetches
	MaxPagesCeiling int           `yaml:"max_pages_ceiling"`
	MaxYearRange    int           `yaml:"max_year_range"`
	DefaultPageSize int           `yaml:"default_page_size"`
	MinPageSize     int           `yaml:"min_page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	MinYear         int           `yaml:"min_year"`
}

// AnalyzeConfig controls text analysis.
type AnalyzeConfig struct {
	MinTextLength      int      `yaml:"min_text_length"`
	ContextWindow      int      `yaml:"context_window"` // chars captured on each side of a match
	MaxContextsPerTerm int      `yaml:"max_contexts_per_term"`
	VATerms            []string `yaml:"va_terms"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BatchConfig bounds batch search requests.
type BatchConfig struct {
	Workers          int `yaml:"workers"` // >1 widens the pool; the shared limiter still enforces the upstream delay
	MaxQueries       int `yaml:"max_queries"`
	MaxPagesPerQuery int `yaml:"max_pages_per_query"`
	URLsPerQuery     int `yaml:"urls_per_query"`
}

// RobotsConfig controls robots.txt checking before upstream fetches.
type RobotsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LLMConfig configures the optional case summarizer. Provider empty means
// summarization is disabled.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or any OpenAI-compatible endpoint
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Env   string `yaml:"env"`   // prod uses JSON output, anything else console
}

// DefaultConfig returns the built-in defaults. The upstream values mirror the
// deployed scraper: 2s between requests, 15s per fetch, 20-page ceiling.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "VetAI-API/1.0",
			MaxBodyBytes: 4_000_000,
			MaxRetries:   2,
			RetryBackoff: 500 * time.Millisecond,
		},
		Search: SearchConfig{
			BaseURL:         "https://search.usa.gov/search",
			Affiliate:       "bvadecisions",
			RequestDelay:    2 * time.Second,
			MaxPagesCeiling: 20,
			MaxYearRange:    5,
			DefaultPageSize: 20,
			MinPageSize:     10,
			MaxPageSize:     50,
			MinYear:         1992,
		},
		Analyze: AnalyzeConfig{
			MinTextLength:      100,
			ContextWindow:      60,
			MaxContextsPerTerm: 5,
			VATerms:            DefaultVATerms(),
		},
		Server: ServerConfig{
			Port:            8001,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Batch: BatchConfig{
			Workers:          1,
			MaxQueries:       10,
			MaxPagesPerQuery: 5,
			URLsPerQuery:     10,
		},
		Robots: RobotsConfig{
			Enabled: true,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
		},
		Logging: LoggingConfig{
			Level: "info",
			Env:   "dev",
		},
	}
}

// DefaultVATerms is the fixed domain-term census applied by every analyze
// call, independent of user-supplied keywords.
func DefaultVATerms() []string {
	return []string{
		"TDIU",
		"PTSD",
		"service-connected",
		"disability rating",
		"effective date",
		"clear and unmistakable error",
		"individual unemployability",
	}
}
