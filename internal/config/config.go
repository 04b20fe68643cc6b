package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	SpecdocAPIKey string

	// Diagram agent (optional; empty URL disables diagram rendering)
	DiagramAgentURL    string
	DiagramAgentAPIKey string
	DiagramTimeout     time.Duration
	DiagramMaxRetries  int

	// DiagramDir is carried for forward compatibility; nothing reads it yet.
	DiagramDir string

	// Document defaults
	DocumentTitle string
	Attribution   string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Request limits
	MaxPayloadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		SpecdocAPIKey: os.Getenv("SPECDOC_API_KEY"),

		DiagramAgentURL:    os.Getenv("DIAGRAM_AGENT_URL"),
		DiagramAgentAPIKey: os.Getenv("DIAGRAM_AGENT_API_KEY"),
		DiagramTimeout:     envDuration("DIAGRAM_TIMEOUT", 30*time.Second),
		DiagramMaxRetries:  envInt("DIAGRAM_MAX_RETRIES", 3),
		DiagramDir:         envOr("DIAGRAM_DIR", "diagrams"),

		DocumentTitle: os.Getenv("DOCUMENT_TITLE"),
		Attribution:   os.Getenv("DOCUMENT_ATTRIBUTION"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxPayloadBytes: envInt64("MAX_PAYLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxPayloadBytes <= 0 {
		cfg.MaxPayloadBytes = 10485760
	}
	if cfg.DiagramTimeout <= 0 {
		cfg.DiagramTimeout = 30 * time.Second
	}
	if cfg.DiagramMaxRetries <= 0 {
		cfg.DiagramMaxRetries = 3
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SpecdocAPIKey == "" {
		return fmt.Errorf("SPECDOC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
