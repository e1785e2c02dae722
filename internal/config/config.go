package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	RulesPath string

	SpellBackend        string
	LanguageToolURL     string
	SpellLanguage       string
	SpellTimeoutSeconds int
	SpellChunkChars     int
	DictionaryPath      string

	SpellRetryMaxAttempts int
	SpellBreakerEnabled   bool

	StagingDir   string
	BatchWorkers int
	MaxUploadMB  int

	APIRateLimitRPS    float64
	APIRateLimitBurst  int
	APIMaxInFlight     int
	APIMaxConnections  int
	CORSAllowedOrigins []string
}

const (
	SpellBackendLanguageTool = "languagetool"
	SpellBackendDictionary   = "dictionary"
	SpellBackendNone         = "none"
)

// LoadDotEnv loads variables from the given files (default ".env") without overriding the
// process environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		RulesPath: mustEnv("RULES_PATH", ""),

		SpellBackend:        strings.ToLower(mustEnv("SPELL_BACKEND", SpellBackendLanguageTool)),
		LanguageToolURL:     mustEnv("LANGUAGETOOL_URL", "http://localhost:8010"),
		SpellLanguage:       mustEnv("SPELL_LANGUAGE", "en-US"),
		SpellTimeoutSeconds: mustEnvInt("SPELL_TIMEOUT_SECONDS", 20),
		SpellChunkChars:     mustEnvInt("SPELL_CHUNK_CHARS", 6000),
		DictionaryPath:      mustEnv("DICTIONARY_PATH", "/usr/share/dict/words"),

		SpellRetryMaxAttempts: mustEnvInt("SPELL_RETRY_MAX_ATTEMPTS", 2),
		SpellBreakerEnabled:   mustEnvBool("SPELL_BREAKER_ENABLED", true),

		StagingDir:   mustEnv("STAGING_DIR", os.TempDir()),
		BatchWorkers: mustEnvInt("BATCH_WORKERS", 4),
		MaxUploadMB:  mustEnvInt("MAX_UPLOAD_MB", 20),

		APIRateLimitRPS:    mustEnvFloat("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst:  mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:     mustEnvInt("API_MAX_INFLIGHT", 16),
		APIMaxConnections:  mustEnvInt("API_MAX_CONNECTIONS", 256),
		CORSAllowedOrigins: mustEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	out := make([]string, 0, 4)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
