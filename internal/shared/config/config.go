package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	CORSAllowOrigin []string

	ModelStoreType string
	ModelDir       string
	AWSRegion      string
	S3Bucket       string
	S3Prefix       string

	DatabaseURL  string
	UsersCSVPath string

	LLMProvider        string
	LLMModel           string
	OpenAIAPIKey       string
	GeminiAPIKey       string
	NarrativeTimeout   time.Duration
	NarrativeCacheSize int

	IntakeSessionTTL  time.Duration
	IntakeMaxSessions int
	AnalyzeRatePerMin int
}

var defaults = map[string]any{
	"ENV":                  "dev",
	"PORT":                 "8000",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "",
	"CORS_ALLOW_ORIGINS":   "http://localhost:5173",
	"MODEL_STORE":          "local",
	"MODEL_DIR":            "./models",
	"AWS_REGION":           "",
	"S3_BUCKET":            "",
	"S3_PREFIX":            "",
	"DATABASE_URL":         "",
	"USERS_CSV_PATH":       "./data/users_data.csv",
	"LLM_PROVIDER":         "none",
	"LLM_MODEL":            "",
	"OPENAI_API_KEY":       "",
	"GEMINI_API_KEY":       "",
	"NARRATIVE_TIMEOUT":    "30s",
	"NARRATIVE_CACHE_SIZE": 256,
	"INTAKE_SESSION_TTL":   "30m",
	"INTAKE_MAX_SESSIONS":  1024,
	"ANALYZE_RATE_PER_MIN": 30,
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	logFormat := strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT")))
	if logFormat == "" {
		logFormat = "console"
		if env == "production" || env == "staging" {
			logFormat = "json"
		}
	}

	return Config{
		Port:               v.GetString("PORT"),
		Env:                env,
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:          logFormat,
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ModelStoreType:     normalizeStoreType(v.GetString("MODEL_STORE")),
		ModelDir:           v.GetString("MODEL_DIR"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		UsersCSVPath:       v.GetString("USERS_CSV_PATH"),
		LLMProvider:        normalizeProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:           strings.TrimSpace(v.GetString("LLM_MODEL")),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		NarrativeTimeout:   positiveDuration(v.GetDuration("NARRATIVE_TIMEOUT"), 30*time.Second),
		NarrativeCacheSize: v.GetInt("NARRATIVE_CACHE_SIZE"),
		IntakeSessionTTL:   positiveDuration(v.GetDuration("INTAKE_SESSION_TTL"), 30*time.Minute),
		IntakeMaxSessions:  positiveInt(v.GetInt("INTAKE_MAX_SESSIONS"), 1024),
		AnalyzeRatePerMin:  v.GetInt("ANALYZE_RATE_PER_MIN"),
	}
}

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "none"
	}
}

func positiveDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func positiveInt(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// IsDevLike reports whether the environment tolerates missing infrastructure.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}
