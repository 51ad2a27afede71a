package ai

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightopt/internal/config"
	"flightopt/internal/flights"
)

// TestLiveAdvisor calls the real backend selected from the environment.
// It skips unless FLIGHTOPT_LIVE_TEST=1 and a usable advisor key is set.
func TestLiveAdvisor(t *testing.T) {
	if os.Getenv("FLIGHTOPT_LIVE_TEST") != "1" {
		t.Skip("FLIGHTOPT_LIVE_TEST not set; skipping live advisor call")
	}
	cfg := config.AdvisorConfig{
		GrokKey:           os.Getenv("GROK_API_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		SecondaryProvider: os.Getenv("FLIGHTOPT_SECONDARY_PROVIDER"),
		Timeout:           60 * time.Second,
	}

	ctx := context.Background()
	a := NewAdvisor(ctx, cfg)
	t.Cleanup(func() { _ = a.Close() })
	if a.Mode() == ModeMock {
		t.Skip("no valid advisor key in environment")
	}

	raw := flights.MockData()
	prompt := Prompt{System: systemPrompt, User: buildUserPrompt(routeQuery("NRT", "ICN", "2026-04-01"), &raw)}
	result, err := a.backend.Analyze(ctx, prompt)
	require.NoError(t, err, "live backend %s", a.backend.Name())
	assert.NotEmpty(t, result.AvoidTips)
	t.Logf("backend=%s options=%d", a.backend.Name(), len(result.HiddenOptions))
}

// TestLiveGemini exercises the Gemini secondary on its own, regardless of
// which backend the environment would select.
func TestLiveGemini(t *testing.T) {
	if os.Getenv("FLIGHTOPT_LIVE_TEST") != "1" {
		t.Skip("FLIGHTOPT_LIVE_TEST not set; skipping live Gemini call")
	}
	key := os.Getenv("GEMINI_API_KEY")
	if !keyLooksValid(key) {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	b, err := NewGeminiBackend(ctx, key, defaultGeminiModel)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	raw := flights.MockData()
	result, err := b.Analyze(ctx, Prompt{System: systemPrompt, User: buildUserPrompt(routeQuery("NRT", "ICN", "2026-04-01"), &raw)})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AvoidTips)
	t.Logf("gemini options=%d", len(result.HiddenOptions))
}
