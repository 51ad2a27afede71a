// README: Config loader with env defaults for HTTP, storage, flight data and advisor settings.
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"
)

type FlightsConfig struct {
	APIKey      string
	BaseURL     string
	Currency    string
	Locale      string
	DefaultDate string
	Timeout     time.Duration
}

type AdvisorConfig struct {
	GrokKey           string
	GrokBaseURL       string
	GrokModel         string
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string
	GeminiKey         string
	GeminiModel       string
	SecondaryProvider string
	Timeout           time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	RateLimit RateLimitConfig
	Flights   FlightsConfig
	Advisor   AdvisorConfig
}

// Load reads the process environment once. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FLIGHTOPT_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envOrDefaultList("FLIGHTOPT_CORS_ORIGINS", []string{"*"})
	cfg.Log.Level = envOrDefault("FLIGHTOPT_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("FLIGHTOPT_LOG_FORMAT", "json")
	cfg.DB.DSN = os.Getenv("FLIGHTOPT_DB_DSN")
	cfg.Redis.Addr = os.Getenv("FLIGHTOPT_REDIS_ADDR")
	cfg.RateLimit.Limit = envOrDefaultInt("FLIGHTOPT_RATE_LIMIT", 30)
	cfg.RateLimit.Window = envOrDefaultDuration("FLIGHTOPT_RATE_WINDOW", time.Minute)

	cfg.Flights.APIKey = strings.TrimSpace(os.Getenv("SERPAPI_API_KEY"))
	cfg.Flights.BaseURL = envOrDefault("FLIGHTOPT_FLIGHTS_BASE_URL", "https://serpapi.com/search.json")
	cfg.Flights.Currency = envOrDefault("FLIGHTOPT_CURRENCY", "JPY")
	cfg.Flights.Locale = envOrDefault("FLIGHTOPT_LOCALE", "ja")
	cfg.Flights.DefaultDate = envOrDefault("FLIGHTOPT_DEFAULT_DATE", "2026-03-01")
	cfg.Flights.Timeout = envOrDefaultDuration("FLIGHTOPT_FLIGHTS_TIMEOUT", 20*time.Second)

	cfg.Advisor.GrokKey = strings.TrimSpace(os.Getenv("GROK_API_KEY"))
	cfg.Advisor.GrokBaseURL = envOrDefault("FLIGHTOPT_GROK_BASE_URL", "https://api.x.ai/v1")
	cfg.Advisor.GrokModel = envOrDefault("FLIGHTOPT_GROK_MODEL", "grok-4-1-fast-reasoning")
	cfg.Advisor.OpenAIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.Advisor.OpenAIBaseURL = envOrDefault("FLIGHTOPT_OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.Advisor.OpenAIModel = envOrDefault("FLIGHTOPT_OPENAI_MODEL", "gpt-4o-mini")
	cfg.Advisor.GeminiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.Advisor.GeminiModel = envOrDefault("FLIGHTOPT_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.Advisor.SecondaryProvider = strings.ToLower(envOrDefault("FLIGHTOPT_SECONDARY_PROVIDER", "openai"))
	cfg.Advisor.Timeout = envOrDefaultDuration("FLIGHTOPT_ADVISOR_TIMEOUT", 30*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// loadDotEnv applies KEY=VALUE lines from path. A missing file is not an error.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}
