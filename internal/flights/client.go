package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// LiveSource is the provenance label of offers parsed from the provider.
	LiveSource = "Google Flights (SerpApi)"

	defaultBaseURL  = "https://serpapi.com/search.json"
	defaultCurrency = "JPY"
	defaultLocale   = "ja"
	defaultDate     = "2026-03-01"
	defaultTimeout  = 20 * time.Second

	maxOffers = 10
)

// Config describes how to reach the flight data provider.
// An empty APIKey selects mock mode.
type Config struct {
	APIKey      string
	BaseURL     string
	Currency    string
	Locale      string
	DefaultDate string
	Timeout     time.Duration
}

// Client fetches flight offers for a route. It holds no per-request state.
type Client struct {
	apiKey      string
	baseURL     string
	currency    string
	locale      string
	defaultDate string
	timeout     time.Duration
	httpClient  *http.Client
}

// NewClient builds a Client from cfg, filling unset fields with defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     strings.TrimSpace(cfg.BaseURL),
		currency:    cfg.Currency,
		locale:      cfg.Locale,
		defaultDate: cfg.DefaultDate,
		timeout:     cfg.Timeout,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.currency == "" {
		c.currency = defaultCurrency
	}
	if c.locale == "" {
		c.locale = defaultLocale
	}
	if c.defaultDate == "" {
		c.defaultDate = defaultDate
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	return c
}

// Mode reports "live" when a provider key is configured, "mock" otherwise.
func (c *Client) Mode() string {
	if c.apiKey == "" {
		return "mock"
	}
	return "live"
}

// FetchOffers returns offers for the route. It never fails: without a key,
// or when the live call fails for any reason, the mock offer set is returned.
func (c *Client) FetchOffers(ctx context.Context, departure, arrival, date string) RawFlightData {
	if c.apiKey == "" {
		return MockData()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.fetchLive(ctx, departure, arrival, date)
	if err != nil {
		var fe *FetchError
		kind := FailureKind("unknown")
		if errors.As(err, &fe) {
			kind = fe.Kind
		}
		slog.WarnContext(ctx, "flight data fetch failed, using mock offers",
			"departure", departure, "arrival", arrival, "kind", kind, "error", err)
		return MockData()
	}
	return data
}

func (c *Client) fetchLive(ctx context.Context, departure, arrival, date string) (RawFlightData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(departure, arrival, date), nil)
	if err != nil {
		return RawFlightData{}, &FetchError{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RawFlightData{}, &FetchError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return RawFlightData{}, &FetchError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(body))),
		}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return RawFlightData{}, &FetchError{Kind: KindDecode, Err: err}
	}
	if payload.Error != "" {
		return RawFlightData{}, &FetchError{Kind: KindStatus, StatusCode: resp.StatusCode, Err: errors.New(payload.Error)}
	}

	return RawFlightData{Source: LiveSource, Offers: payload.offers(c.currency)}, nil
}

func (c *Client) searchURL(departure, arrival, date string) string {
	if date == "" {
		date = c.defaultDate
	}
	q := url.Values{}
	q.Set("engine", "google_flights")
	q.Set("departure_id", departure)
	q.Set("arrival_id", arrival)
	q.Set("outbound_date", date)
	q.Set("currency", c.currency)
	q.Set("hl", c.locale)
	q.Set("api_key", c.apiKey)
	q.Set("type", "2") // one-way

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + q.Encode()
}
