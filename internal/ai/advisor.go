// README: Advisor selects a backend once at startup and turns every live failure into the mock result.
package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"flightopt/internal/config"
	"flightopt/internal/flights"
	"flightopt/internal/types"
)

const (
	defaultGrokBaseURL   = "https://api.x.ai/v1"
	defaultGrokModel     = "grok-4-1-fast-reasoning"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultTimeout       = 30 * time.Second

	minKeyLength       = 20
	placeholderKeyMark = "your_"
)

// Advisor produces hidden-fare suggestions for a route.
// Its mode and backend are fixed after construction.
type Advisor struct {
	mode    Mode
	backend Backend
	timeout time.Duration
}

// NewAdvisor resolves the mode from the configured keys: a valid primary key
// wins, then a valid secondary key, then mock.
func NewAdvisor(ctx context.Context, cfg config.AdvisorConfig) *Advisor {
	a := &Advisor{mode: ModeMock, timeout: cfg.Timeout}
	if a.timeout <= 0 {
		a.timeout = defaultTimeout
	}

	if keyLooksValid(cfg.GrokKey) {
		a.mode = ModePrimary
		a.backend = NewChatBackend("grok", strings.TrimSpace(cfg.GrokKey),
			orDefault(cfg.GrokBaseURL, defaultGrokBaseURL), orDefault(cfg.GrokModel, defaultGrokModel), nil)
		slog.Info("advisor mode", "mode", a.mode.String(), "backend", a.backend.Name(), "key_prefix", keyPrefix(cfg.GrokKey))
		return a
	}

	if backend, key, err := secondaryBackend(ctx, cfg); err != nil {
		slog.Warn("secondary advisor unavailable", "provider", cfg.SecondaryProvider, "error", err)
	} else if backend != nil {
		a.mode = ModeSecondary
		a.backend = backend
		slog.Info("advisor mode", "mode", a.mode.String(), "backend", backend.Name(), "key_prefix", keyPrefix(key))
		return a
	}

	slog.Info("advisor mode", "mode", a.mode.String())
	return a
}

// secondaryBackend returns nil without error when no valid secondary key exists.
func secondaryBackend(ctx context.Context, cfg config.AdvisorConfig) (Backend, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SecondaryProvider)) {
	case "gemini":
		if !keyLooksValid(cfg.GeminiKey) {
			return nil, "", nil
		}
		backend, err := NewGeminiBackend(ctx, strings.TrimSpace(cfg.GeminiKey), orDefault(cfg.GeminiModel, defaultGeminiModel))
		if err != nil {
			return nil, "", err
		}
		return backend, cfg.GeminiKey, nil
	case "", "openai":
		if !keyLooksValid(cfg.OpenAIKey) {
			return nil, "", nil
		}
		backend := NewChatBackend("openai", strings.TrimSpace(cfg.OpenAIKey),
			orDefault(cfg.OpenAIBaseURL, defaultOpenAIBaseURL), orDefault(cfg.OpenAIModel, defaultOpenAIModel), nil)
		return backend, cfg.OpenAIKey, nil
	default:
		return nil, "", errors.New("unknown secondary provider " + cfg.SecondaryProvider)
	}
}

// Mode returns the backend selected at construction.
func (a *Advisor) Mode() Mode {
	return a.mode
}

// AnalyzeRoute asks the backend for suggestions. It never fails: in mock mode
// the mock result is labelled with the full route label, and whenever the
// live call fails the mock result is labelled "DEP → ARR".
func (a *Advisor) AnalyzeRoute(ctx context.Context, departure, arrival, date string, raw *flights.RawFlightData) Analysis {
	q := types.RouteQuery{Departure: departure, Arrival: arrival, Date: date}
	if a.backend == nil {
		return MockAnalysis(q.Label())
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.backend.Analyze(ctx, Prompt{System: systemPrompt, User: buildUserPrompt(q, raw)})
	if err != nil {
		kind := FailureKind("unknown")
		var ce *CallError
		if errors.As(err, &ce) {
			kind = ce.Kind
		}
		slog.WarnContext(ctx, "advisor call failed, using mock analysis",
			"backend", a.backend.Name(), "route", q.Label(), "kind", kind, "error", err)
		// Fallback labels carry no date.
		return MockAnalysis(departure + " → " + arrival)
	}
	return result
}

// Close releases SDK resources held by the backend, if any.
func (a *Advisor) Close() error {
	if c, ok := a.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func keyLooksValid(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !strings.Contains(key, placeholderKeyMark) && len(key) > minKeyLength
}

func keyPrefix(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 8 {
		return key
	}
	return key[:8] + "..."
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
