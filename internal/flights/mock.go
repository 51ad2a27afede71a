package flights

// MockSource is the provenance label of the built-in offer set.
const MockSource = "Google Flights (Mock)"

var mockOffers = []FlightOffer{
	{
		Airline:       "Japan Airlines",
		FlightNumber:  "JL123",
		DepartureTime: "10:00",
		ArrivalTime:   "11:30",
		Price:         15000,
		Currency:      "JPY",
		BookingLink:   "https://www.jal.co.jp/",
	},
	{
		Airline:       "ANA",
		FlightNumber:  "NH456",
		DepartureTime: "14:00",
		ArrivalTime:   "15:30",
		Price:         22000,
		Currency:      "JPY",
		BookingLink:   "https://www.ana.co.jp/",
	},
	{
		Airline:       "Peach",
		FlightNumber:  "MM789",
		DepartureTime: "18:00",
		ArrivalTime:   "19:30",
		Price:         8500,
		Currency:      "JPY",
		BookingLink:   "https://www.flypeach.com/",
	},
}

// MockData returns the fixed offer set. The result does not depend on the
// query and every call gets its own copy.
func MockData() RawFlightData {
	offers := make([]FlightOffer, len(mockOffers))
	copy(offers, mockOffers)
	return RawFlightData{Source: MockSource, Offers: offers}
}
