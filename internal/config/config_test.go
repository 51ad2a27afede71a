package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"SERPAPI_API_KEY", "GROK_API_KEY", "OPENAI_API_KEY", "FLIGHTOPT_DEFAULT_DATE", "FLIGHTOPT_SECONDARY_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "2026-03-01", cfg.Flights.DefaultDate)
	assert.Equal(t, "JPY", cfg.Flights.Currency)
	assert.Equal(t, "ja", cfg.Flights.Locale)
	assert.Equal(t, 20*time.Second, cfg.Flights.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Advisor.Timeout)
	assert.Equal(t, "openai", cfg.Advisor.SecondaryProvider)
	assert.Empty(t, cfg.Flights.APIKey)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FLIGHTOPT_DEFAULT_DATE", "2027-01-15")
	t.Setenv("FLIGHTOPT_FLIGHTS_TIMEOUT", "5s")
	t.Setenv("FLIGHTOPT_RATE_LIMIT", "7")
	t.Setenv("FLIGHTOPT_RATE_WINDOW", "not-a-duration")
	t.Setenv("FLIGHTOPT_SECONDARY_PROVIDER", "Gemini")
	t.Setenv("FLIGHTOPT_CORS_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("GROK_API_KEY", "  xai-abcdefghijklmnopqrstuvwxyz  ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2027-01-15", cfg.Flights.DefaultDate)
	assert.Equal(t, 5*time.Second, cfg.Flights.Timeout)
	assert.Equal(t, 7, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "gemini", cfg.Advisor.SecondaryProvider)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "xai-abcdefghijklmnopqrstuvwxyz", cfg.Advisor.GrokKey)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := "# comment\nFLIGHTOPT_LOCALE=\"en\"\nFLIGHTOPT_CURRENCY=USD\nbroken-line\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("FLIGHTOPT_CURRENCY", "EUR")
	// t.Setenv restores the variable afterwards; clear it so .env can fill it in.
	t.Setenv("FLIGHTOPT_LOCALE", "")
	require.NoError(t, os.Unsetenv("FLIGHTOPT_LOCALE"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Flights.Locale)
	assert.Equal(t, "EUR", cfg.Flights.Currency)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
