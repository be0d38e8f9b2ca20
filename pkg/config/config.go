// Package config provides environment-driven configuration for the RLVR
// translation gym and its HTTP API, with hardcoded defaults for every
// setting an operator doesn't override.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
)

// LLMProvider names which upstream chat-completion API a candidate
// generator talks to.
type LLMProvider string

const (
	ProviderNone       LLMProvider = "none"
	ProviderOllama     LLMProvider = "ollama"
	ProviderOpenRouter LLMProvider = "openrouter"
	ProviderGroq       LLMProvider = "groq"
	ProviderOpenAI     LLMProvider = "openai"
	ProviderAnthropic  LLMProvider = "anthropic"
	ProviderAzure      LLMProvider = "azure"
	ProviderCustom     LLMProvider = "custom"
)

// Config holds every environment-tunable setting the gym and the HTTP API
// read at startup. Zero value is not meant to be used directly; build one
// with NewDefaultConfig or a named preset.
type Config struct {
	LLMProvider LLMProvider
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string

	// MinAcceptableReward is the hard floor: a best candidate scoring below
	// it is still served, but the response and audit log are marked as
	// needing human review.
	MinAcceptableReward float64

	// FlagForReviewReward is a softer warning floor, above
	// MinAcceptableReward. Neither the pipeline nor the HTTP layer reads
	// it.
	FlagForReviewReward float64

	// DefaultEpsilon is the bandit's exploration rate for newly
	// initialized languages.
	DefaultEpsilon float64

	// DefaultKSamples is the number of candidates generated per segment in
	// rlvr mode when a language pack doesn't override k_samples.
	DefaultKSamples int

	// LangConfigDir overrides langpack.FindConfigDir's search when set.
	LangConfigDir string

	// AuditLogDir is read from RLVR_AUDIT_LOG_DIR. The server and gym
	// commands do not read it; both write their audit logs under
	// audit/runs.
	AuditLogDir string

	// SessionSecret is taken from RLVR_SESSION_SECRET, or generated at
	// startup if it isn't set. The HTTP API does not issue session tokens
	// and does not read it.
	SessionSecret string

	// BanditStoreBackend selects bandit durability: "file" (default) or
	// "redis".
	BanditStoreBackend string
	RedisAddr          string

	// RunIndexDSN is an optional Postgres connection string for the
	// run-summary index (store.NewRunIndex). The server and gym commands do
	// not read it and never construct a run index.
	RunIndexDSN string

	// ServerAddr is the HTTP API's listen address.
	ServerAddr string
}

// NewDefaultConfig returns the baseline configuration: no LLM provider
// wired (the mock generator is used until one is configured), moderate
// reward thresholds, file-based bandit durability.
func NewDefaultConfig() *Config {
	return &Config{
		LLMProvider: ProviderNone,
		LLMBaseURL:  "",
		LLMModel:    "gpt-5",

		MinAcceptableReward: 0.5,
		FlagForReviewReward: 0.7,

		DefaultEpsilon:  GetEnvFloat("RLVR_DEFAULT_EPSILON", 0.2),
		DefaultKSamples: GetEnvInt("RLVR_DEFAULT_K_SAMPLES", 4),

		LangConfigDir: os.Getenv("RLVR_LANG_CONFIG_DIR"),
		AuditLogDir:   envOrDefault("RLVR_AUDIT_LOG_DIR", "./logs"),
		SessionSecret: getSessionSecret(),

		BanditStoreBackend: envOrDefault("RLVR_BANDIT_STORE", "file"),
		RedisAddr:          envOrDefault("RLVR_REDIS_ADDR", "localhost:6379"),

		RunIndexDSN: os.Getenv("RLVR_RUN_INDEX_DSN"),

		ServerAddr: envOrDefault("RLVR_SERVER_ADDR", ":8000"),
	}
}

// NewLocalConfig points the LLM-backed generators at a local Ollama
// instance, for development without an API key.
func NewLocalConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.LLMProvider = ProviderOllama
	cfg.LLMBaseURL = "http://localhost:11434/v1"
	cfg.LLMModel = "llama3"
	return cfg
}

// NewStrictConfig tightens the reward floor so fewer low-quality
// translations are served without review. Renamed from the teacher's
// NewHighSecurityConfig for this domain.
func NewStrictConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.MinAcceptableReward = 0.75
	cfg.FlagForReviewReward = 0.85
	return cfg
}

// getSessionSecret returns RLVR_SESSION_SECRET if set, otherwise a freshly
// generated 32-byte hex secret. A generated secret does not persist across
// process restarts; set the env var for stable sessions.
func getSessionSecret() string {
	if secret := os.Getenv("RLVR_SESSION_SECRET"); secret != "" {
		return secret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back to a
		// fixed marker rather than panic so the server can still start in
		// a degraded, clearly-flagged state.
		return "insecure-fallback-secret-rand-unavailable"
	}
	return hex.EncodeToString(buf)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// clampInt restricts val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// GetEnvInt reads key as an int, returning fallback if unset or unparsable.
func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvFloat reads key as a float64, returning fallback if unset or
// unparsable.
func GetEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
