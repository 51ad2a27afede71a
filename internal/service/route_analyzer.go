package service

import (
	"context"
	"errors"
	"log/slog"

	"flightopt/internal/ai"
	"flightopt/internal/flights"
	"flightopt/internal/modules/airport"
	"flightopt/internal/modules/history"
	"flightopt/internal/types"
)

// ErrInvalidRoute matches every ValidationError.
var ErrInvalidRoute = errors.New("invalid route")

// ValidationError is a user-facing rejection of the route input.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidRoute, e.Err}
}

// HiddenFlightOption is one suggested alternative fare.
type HiddenFlightOption struct {
	Route string `json:"route"`
	Price string `json:"price"`
	Save  string `json:"save"`
	Tips  string `json:"tips,omitempty"`
}

// FlightAnalysisResponse is the complete result for one route query.
// The airport entries are set only for codes the catalog names.
type FlightAnalysisResponse struct {
	Route            string                 `json:"route"`
	DepartureAirport *airport.Airport       `json:"departure_airport,omitempty"`
	ArrivalAirport   *airport.Airport       `json:"arrival_airport,omitempty"`
	HiddenOptions    []HiddenFlightOption   `json:"hidden_options"`
	AvoidTips        string                 `json:"avoid_tips"`
	RawData          *flights.RawFlightData `json:"raw_data,omitempty"`
}

// OfferFetcher is satisfied by *flights.Client.
type OfferFetcher interface {
	FetchOffers(ctx context.Context, departure, arrival, date string) flights.RawFlightData
}

// RouteAdvisor is satisfied by *ai.Advisor.
type RouteAdvisor interface {
	AnalyzeRoute(ctx context.Context, departure, arrival, date string, raw *flights.RawFlightData) ai.Analysis
}

// AirportDirectory is satisfied by *airport.Service.
type AirportDirectory interface {
	ValidateRoute(q types.RouteQuery) error
	Lookup(code string) (airport.Airport, bool)
}

// HistoryRecorder is satisfied by *history.Service.
type HistoryRecorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// RouteAnalyzer orchestrates the flight data fetch and the advisor call.
type RouteAnalyzer struct {
	fetcher   OfferFetcher
	advisor   RouteAdvisor
	airports  AirportDirectory
	history   HistoryRecorder
}

// NewRouteAnalyzer wires the analyzer. history may be nil.
func NewRouteAnalyzer(fetcher OfferFetcher, advisor RouteAdvisor, airports AirportDirectory, history HistoryRecorder) *RouteAnalyzer {
	return &RouteAnalyzer{
		fetcher:  fetcher,
		advisor:  advisor,
		airports: airports,
		history:  history,
	}
}

// Analyze validates q, fetches offers, asks the advisor and composes the
// response. The only error it returns is a *ValidationError; outbound
// failures have already been replaced by mock data in the adapters.
func (a *RouteAnalyzer) Analyze(ctx context.Context, q types.RouteQuery) (*FlightAnalysisResponse, error) {
	if err := a.airports.ValidateRoute(q); err != nil {
		return nil, newValidationError(err)
	}

	// 1. Flight data must complete first; the advisor reads the offers.
	raw := a.fetcher.FetchOffers(ctx, q.Departure, q.Arrival, q.Date)

	// 2. Advisor
	analysis := a.advisor.AnalyzeRoute(ctx, q.Departure, q.Arrival, q.Date, &raw)

	// 3. Compose
	options := make([]HiddenFlightOption, 0, len(analysis.HiddenOptions))
	for _, o := range analysis.HiddenOptions {
		options = append(options, HiddenFlightOption{
			Route: o.Route,
			Price: o.Price,
			Save:  o.Save,
			Tips:  o.Tips,
		})
	}
	resp := &FlightAnalysisResponse{
		Route:            q.Label(),
		DepartureAirport: a.lookup(q.Departure),
		ArrivalAirport:   a.lookup(q.Arrival),
		HiddenOptions:    options,
		AvoidTips:        analysis.AvoidTips,
		RawData:          &raw,
	}

	a.record(ctx, q, resp)
	return resp, nil
}

func (a *RouteAnalyzer) lookup(code string) *airport.Airport {
	if ap, ok := a.airports.Lookup(code); ok {
		return &ap
	}
	return nil
}

func (a *RouteAnalyzer) record(ctx context.Context, q types.RouteQuery, resp *FlightAnalysisResponse) {
	if a.history == nil {
		return
	}
	err := a.history.Record(ctx, history.Entry{
		Departure:   q.Departure,
		Arrival:     q.Arrival,
		TravelDate:  q.Date,
		Route:       resp.Route,
		DataSource:  resp.RawData.Source,
		OptionCount: len(resp.HiddenOptions),
	})
	if err != nil {
		slog.WarnContext(ctx, "record analysis history failed", "route", resp.Route, "error", err)
	}
}

func newValidationError(err error) *ValidationError {
	msg := "入力内容を確認してください。"
	switch {
	case errors.Is(err, airport.ErrInvalidCode):
		msg = "空港コードは3文字のアルファベットで入力してください。"
	case errors.Is(err, airport.ErrSameAirport):
		msg = "出発地と到着地に同じ空港は指定できません。"
	case errors.Is(err, airport.ErrInvalidDate):
		msg = "日付は YYYY-MM-DD 形式で入力してください。"
	}
	return &ValidationError{Message: msg, Err: err}
}
