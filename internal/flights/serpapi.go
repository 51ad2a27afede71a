package flights

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type searchResponse struct {
	BestFlights    []itinerary `json:"best_flights"`
	OtherFlights   []itinerary `json:"other_flights"`
	SearchMetadata struct {
		GoogleFlightsURL string `json:"google_flights_url"`
	} `json:"search_metadata"`
	Error string `json:"error"`
}

type itinerary struct {
	Flights []segment `json:"flights"`
	Price   price     `json:"price"`
}

type segment struct {
	Airline          string `json:"airline"`
	FlightNumber     string `json:"flight_number"`
	DepartureAirport struct {
		Time string `json:"time"`
	} `json:"departure_airport"`
	ArrivalAirport struct {
		Time string `json:"time"`
	} `json:"arrival_airport"`
}

// offers flattens best then other itineraries, keeps the first maxOffers and
// drops itineraries without segments. Only the endpoints of a connecting
// itinerary are kept: the first segment for the departure side and the last
// one for the arrival time.
func (r searchResponse) offers(currency string) []FlightOffer {
	all := make([]itinerary, 0, len(r.BestFlights)+len(r.OtherFlights))
	all = append(all, r.BestFlights...)
	all = append(all, r.OtherFlights...)
	if len(all) > maxOffers {
		all = all[:maxOffers]
	}

	out := make([]FlightOffer, 0, len(all))
	for _, it := range all {
		if len(it.Flights) == 0 {
			continue
		}
		first := it.Flights[0]
		last := it.Flights[len(it.Flights)-1]
		out = append(out, FlightOffer{
			Airline:       first.Airline,
			FlightNumber:  first.FlightNumber,
			DepartureTime: first.DepartureAirport.Time,
			ArrivalTime:   last.ArrivalAirport.Time,
			Price:         float64(it.Price),
			Currency:      currency,
			BookingLink:   r.SearchMetadata.GoogleFlightsURL,
		})
	}
	return out
}

// price accepts a JSON number or a numeric string.
type price float64

func (p *price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" {
		*p = 0
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("price %s: %w", b, err)
	}
	*p = price(f)
	return nil
}
