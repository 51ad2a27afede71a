// README: Airport catalog entries and validation errors.
package airport

import "errors"

var (
	ErrInvalidCode = errors.New("airport code must be three letters")
	ErrSameAirport = errors.New("departure and arrival are the same airport")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

type Airport struct {
	Code    string `yaml:"code" json:"code"`
	Name    string `yaml:"name" json:"name"`
	City    string `yaml:"city" json:"city"`
	Country string `yaml:"country" json:"country"`
}

type catalogFile struct {
	Airports []Airport `yaml:"airports"`
}
