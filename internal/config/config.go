package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string
	JWTTTL    time.Duration

	TextGen TextGenConfig

	ReportTimezone string

	LogLevel  string
	LogFormat string
}

// TextGenConfig configures the generative text service used for insights.
type TextGenConfig struct {
	Provider    string // cohere | mock
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		CORSAllowCredentials: getenvBool("CORS_ALLOW_CREDENTIALS", false),
		CORSAllowedOrigins:   getenvCSV("CORS_ALLOWED_ORIGINS"),
		JWTSecret:            getenv("JWT_SECRET", ""),
		JWTTTL:               getenvDuration("JWT_TTL", 7*24*time.Hour),
		TextGen: TextGenConfig{
			Provider:    strings.ToLower(getenv("TEXTGEN_PROVIDER", "cohere")),
			APIKey:      getenv("COHERE_API_KEY", ""),
			BaseURL:     getenv("COHERE_BASE_URL", "https://api.cohere.ai"),
			Model:       getenv("COHERE_MODEL", ""),
			MaxTokens:   getenvInt("TEXTGEN_MAX_TOKENS", 1000),
			Temperature: getenvFloat("TEXTGEN_TEMPERATURE", 0.3),
			Timeout:     getenvDuration("TEXTGEN_TIMEOUT", 30*time.Second),
			MaxAttempts: getenvInt("TEXTGEN_MAX_ATTEMPTS", 3),
			Backoff:     getenvDuration("TEXTGEN_BACKOFF", 500*time.Millisecond),
			MaxBackoff:  getenvDuration("TEXTGEN_MAX_BACKOFF", 10*time.Second),
		},
		ReportTimezone: getenv("REPORT_TIMEZONE", "UTC"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getenv("LOG_FORMAT", "text")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("missing env: DATABASE_URL")
	}
	if c.JWTSecret == "" {
		return errors.New("missing env: JWT_SECRET")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET is too short; use at least 16 characters")
	}
	switch c.TextGen.Provider {
	case "cohere":
		if c.TextGen.APIKey == "" {
			return errors.New("missing env: COHERE_API_KEY (set TEXTGEN_PROVIDER=mock for local development)")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown TEXTGEN_PROVIDER %q", c.TextGen.Provider)
	}
	if c.TextGen.MaxTokens <= 0 {
		return errors.New("TEXTGEN_MAX_TOKENS must be positive")
	}
	if c.TextGen.MaxAttempts < 1 {
		return errors.New("TEXTGEN_MAX_ATTEMPTS must be at least 1")
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}
	return nil
}

// UseMockTextGen reports whether insight generation should run against the
// built-in mock instead of a remote provider. Only an explicit
// TEXTGEN_PROVIDER=mock selects it.
func (c Config) UseMockTextGen() bool {
	return c.TextGen.Provider == "mock"
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvInt(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvCSV(key string) []string {
	var out []string
	for _, o := range strings.Split(getenv(key, ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
