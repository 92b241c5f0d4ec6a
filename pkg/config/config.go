package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port           string `yaml:"port"`
	DatabaseURL    string `yaml:"database_url"`
	JWTSecret      string `yaml:"jwt_secret"`
	JWTIssuer      string `yaml:"jwt_issuer"`
	JWTTTLMinutes  int    `yaml:"jwt_ttl_minutes"`
	LogLevel       string `yaml:"log_level"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	// AdminEmails получают флаг администратора при регистрации.
	AdminEmails []string `yaml:"admin_emails"`

	LLM     LLMConfig     `yaml:"llm"`
	Redis   RedisConfig   `yaml:"redis"`
	Storage StorageConfig `yaml:"storage"`

	InterviewConcurrency int `yaml:"interview_concurrency"`
}

// LLMConfig selects and tunes the chat model provider.
type LLMConfig struct {
	Provider       string `yaml:"provider"` // ollama | openai | openrouter | anthropic
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Retries        int    `yaml:"retries"`
	AppTitle       string `yaml:"app_title"`
	Referer        string `yaml:"referer"`
}

type RedisConfig struct {
	URL             string `yaml:"url"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"` // local | s3
	UploadDir string `yaml:"upload_dir"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// defaultModels is used when neither LLM_MODEL nor the config file names a model.
var defaultModels = map[string]string{
	"ollama":     "llama3.2:latest",
	"openai":     "gpt-4o-mini",
	"openrouter": "openai/gpt-4o-mini",
	"anthropic":  "claude-3-5-haiku-latest",
}

func defaults() Config {
	return Config{
		Port:           "8080",
		JWTSecret:      "dev-secret-change",
		JWTIssuer:      "resume-builder",
		JWTTTLMinutes:  60,
		LogLevel:       "info",
		MaxUploadBytes: 15 << 20,
		LLM: LLMConfig{
			Provider:       "ollama",
			TimeoutSeconds: 120,
			Retries:        2,
			AppTitle:       "resume-builder",
		},
		Redis: RedisConfig{CacheTTLMinutes: 60},
		Storage: StorageConfig{
			Driver:    "local",
			UploadDir: "uploads",
			Region:    "auto",
		},
		InterviewConcurrency: 4,
	}
}

// Load reads environment variables, optionally from a .env file if present.
// CONFIG_FILE may point to a YAML file; environment variables override it.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWTTTLMinutes)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes)))
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		cfg.AdminEmails = splitComma(v)
	}

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.TimeoutSeconds = getEnvInt("LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)
	cfg.LLM.Retries = getEnvInt("LLM_RETRIES", cfg.LLM.Retries)
	cfg.LLM.AppTitle = getEnv("LLM_APP_TITLE", cfg.LLM.AppTitle)
	cfg.LLM.Referer = getEnv("LLM_REFERER", cfg.LLM.Referer)

	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.CacheTTLMinutes = getEnvInt("LLM_CACHE_TTL_MINUTES", cfg.Redis.CacheTTLMinutes)

	cfg.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", cfg.Storage.Driver))
	cfg.Storage.UploadDir = getEnv("UPLOAD_DIR", cfg.Storage.UploadDir)
	cfg.Storage.Bucket = getEnv("S3_BUCKET", cfg.Storage.Bucket)
	cfg.Storage.Region = getEnv("S3_REGION", cfg.Storage.Region)
	cfg.Storage.Endpoint = getEnv("S3_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.AccessKey = getEnv("S3_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = getEnv("S3_SECRET_KEY", cfg.Storage.SecretKey)

	cfg.InterviewConcurrency = getEnvInt("INTERVIEW_CONCURRENCY", cfg.InterviewConcurrency)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LLM.Provider {
	case "ollama", "openai", "openrouter", "anthropic":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitComma(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
