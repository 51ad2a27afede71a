package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightopt/internal/ai"
	"flightopt/internal/config"
	"flightopt/internal/flights"
	"flightopt/internal/modules/airport"
	"flightopt/internal/modules/history"
	"flightopt/internal/types"
)

type stubFetcher struct {
	calls int
	data  flights.RawFlightData
}

func (s *stubFetcher) FetchOffers(_ context.Context, _, _, _ string) flights.RawFlightData {
	s.calls++
	return s.data
}

type stubAdvisor struct {
	calls int
	got   *flights.RawFlightData
	out   ai.Analysis
}

func (s *stubAdvisor) AnalyzeRoute(_ context.Context, _, _, _ string, raw *flights.RawFlightData) ai.Analysis {
	s.calls++
	s.got = raw
	return s.out
}

type stubRecorder struct {
	entries []history.Entry
	err     error
}

func (s *stubRecorder) Record(_ context.Context, e history.Entry) error {
	s.entries = append(s.entries, e)
	return s.err
}

func newAirports(t *testing.T) *airport.Service {
	t.Helper()
	svc, err := airport.NewService()
	require.NoError(t, err)
	return svc
}

func TestAnalyzeEndToEndWithoutCredentials(t *testing.T) {
	ctx := context.Background()
	analyzer := NewRouteAnalyzer(
		flights.NewClient(flights.Config{}),
		ai.NewAdvisor(ctx, config.AdvisorConfig{}),
		newAirports(t),
		nil,
	)

	resp, err := analyzer.Analyze(ctx, types.RouteQuery{Departure: "NRT", Arrival: "ICN", Date: "2026-04-01"})
	require.NoError(t, err)

	assert.Equal(t, "NRT → ICN (2026-04-01)", resp.Route)
	require.Len(t, resp.HiddenOptions, 3)
	assert.Equal(t, "NRT → ICN (2026-04-01) (経由地: ソウル)", resp.HiddenOptions[0].Route)
	require.NotNil(t, resp.DepartureAirport)
	assert.Equal(t, "Tokyo", resp.DepartureAirport.City)
	require.NotNil(t, resp.ArrivalAirport)
	assert.Equal(t, "Seoul", resp.ArrivalAirport.City)
	assert.NotEmpty(t, resp.AvoidTips)
	require.NotNil(t, resp.RawData)
	assert.True(t, strings.Contains(resp.RawData.Source, "Mock"))
	assert.Len(t, resp.RawData.Offers, 3)
}

func TestAnalyzeMapsAdvisorOutputInOrder(t *testing.T) {
	fetcher := &stubFetcher{data: flights.RawFlightData{Source: "src", Offers: []flights.FlightOffer{{FlightNumber: "X1"}}}}
	advisor := &stubAdvisor{out: ai.Analysis{
		HiddenOptions: []ai.RawOption{
			{Route: "A", Price: "¥1", Save: "1%", Tips: "t1"},
			{Route: "B", Price: "¥2", Save: "2%"},
		},
		AvoidTips: "tips",
	}}
	recorder := &stubRecorder{}
	analyzer := NewRouteAnalyzer(fetcher, advisor, newAirports(t), recorder)

	resp, err := analyzer.Analyze(context.Background(), types.RouteQuery{Departure: "HND", Arrival: "TPE"})
	require.NoError(t, err)

	assert.Equal(t, "HND → TPE", resp.Route)
	assert.Equal(t, []HiddenFlightOption{
		{Route: "A", Price: "¥1", Save: "1%", Tips: "t1"},
		{Route: "B", Price: "¥2", Save: "2%"},
	}, resp.HiddenOptions)
	assert.Equal(t, "tips", resp.AvoidTips)
	assert.Equal(t, "src", resp.RawData.Source)

	require.NotNil(t, advisor.got)
	assert.Equal(t, "X1", advisor.got.Offers[0].FlightNumber)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, history.Entry{
		Departure:   "HND",
		Arrival:     "TPE",
		Route:       "HND → TPE",
		DataSource:  "src",
		OptionCount: 2,
	}, recorder.entries[0])
}

func TestAnalyzeAcceptsAirportsOutsideCatalog(t *testing.T) {
	cases := []struct {
		name        string
		q           types.RouteQuery
		wantArrival bool
	}{
		{"catalogued long-haul", types.RouteQuery{Departure: "NRT", Arrival: "ORD"}, true},
		{"catalogued regional", types.RouteQuery{Departure: "HND", Arrival: "BOS"}, true},
		{"uncatalogued", types.RouteQuery{Departure: "NRT", Arrival: "BHD"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			analyzer := NewRouteAnalyzer(fetcher, &stubAdvisor{out: ai.Analysis{AvoidTips: "x"}}, newAirports(t), nil)

			resp, err := analyzer.Analyze(context.Background(), tc.q)
			require.NoError(t, err)
			assert.Equal(t, 1, fetcher.calls)
			assert.NotNil(t, resp.DepartureAirport)
			assert.Equal(t, tc.wantArrival, resp.ArrivalAirport != nil)
		})
	}
}

func TestAnalyzeEmptyOptionsIsNonNil(t *testing.T) {
	analyzer := NewRouteAnalyzer(&stubFetcher{}, &stubAdvisor{out: ai.Analysis{AvoidTips: "x"}}, newAirports(t), nil)

	resp, err := analyzer.Analyze(context.Background(), types.RouteQuery{Departure: "NRT", Arrival: "ICN"})
	require.NoError(t, err)
	assert.NotNil(t, resp.HiddenOptions)
	assert.Empty(t, resp.HiddenOptions)
}

func TestAnalyzeRejectsInvalidRoute(t *testing.T) {
	cases := []struct {
		name string
		q    types.RouteQuery
		want error
	}{
		{"malformed code", types.RouteQuery{Departure: "N1", Arrival: "ICN"}, airport.ErrInvalidCode},
		{"same airport", types.RouteQuery{Departure: "ICN", Arrival: "ICN"}, airport.ErrSameAirport},
		{"bad date", types.RouteQuery{Departure: "NRT", Arrival: "ICN", Date: "tomorrow"}, airport.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			advisor := &stubAdvisor{}
			analyzer := NewRouteAnalyzer(fetcher, advisor, newAirports(t), nil)

			resp, err := analyzer.Analyze(context.Background(), tc.q)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidRoute)
			assert.ErrorIs(t, err, tc.want)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Message)

			assert.Zero(t, fetcher.calls, "no outbound call on invalid input")
			assert.Zero(t, advisor.calls)
		})
	}
}

func TestAnalyzeIgnoresHistoryFailure(t *testing.T) {
	recorder := &stubRecorder{err: errors.New("db down")}
	analyzer := NewRouteAnalyzer(&stubFetcher{}, &stubAdvisor{out: ai.Analysis{AvoidTips: "x"}}, newAirports(t), recorder)

	resp, err := analyzer.Analyze(context.Background(), types.RouteQuery{Departure: "NRT", Arrival: "ICN"})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, recorder.entries, 1)
}
