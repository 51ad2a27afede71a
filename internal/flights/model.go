package flights

import "fmt"

// FlightOffer is one fare reported by the flight data provider.
type FlightOffer struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	BookingLink   string  `json:"booking_link,omitempty"`
}

// RawFlightData is the provider result for a single query. Offers keep the
// order in which the provider returned them.
type RawFlightData struct {
	Source string        `json:"source"`
	Offers []FlightOffer `json:"offers"`
}

// FailureKind classifies why a live fetch did not produce data.
type FailureKind string

const (
	KindTransport FailureKind = "transport"
	KindStatus    FailureKind = "status"
	KindDecode    FailureKind = "decode"
)

// FetchError is the typed failure of a live provider call.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("flights: %s failure (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("flights: %s failure: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
