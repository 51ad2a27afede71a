// README: Route input validation plus airport names from the embedded catalog.
// The catalog is a directory, not a whitelist: any well-formed IATA code passes.
package airport

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"flightopt/internal/types"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const dateLayout = "2006-01-02"

// Service answers airport lookups. It is read-only after construction.
type Service struct {
	byCode map[string]Airport
}

// NewService loads the embedded catalog.
func NewService() (*Service, error) {
	return NewServiceFromYAML(defaultCatalog)
}

// NewServiceFromYAML builds a Service from a catalog document.
func NewServiceFromYAML(content []byte) (*Service, error) {
	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse airport catalog: %w", err)
	}

	byCode := make(map[string]Airport, len(file.Airports))
	for _, a := range file.Airports {
		code := strings.ToUpper(strings.TrimSpace(a.Code))
		if !validCodeFormat(code) {
			return nil, fmt.Errorf("parse airport catalog: %w: %q", ErrInvalidCode, a.Code)
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("parse airport catalog: duplicate code %s", code)
		}
		a.Code = code
		byCode[code] = a
	}
	return &Service{byCode: byCode}, nil
}

// Lookup returns the catalog entry for code, if the catalog names it.
func (s *Service) Lookup(code string) (Airport, bool) {
	a, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// Validate reports whether code is a well-formed IATA airport code.
// The code must already be normalized.
func (s *Service) Validate(code string) error {
	if !validCodeFormat(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return nil
}

// ValidateRoute checks both endpoints and the optional date.
func (s *Service) ValidateRoute(q types.RouteQuery) error {
	if err := s.Validate(q.Departure); err != nil {
		return fmt.Errorf("departure: %w", err)
	}
	if err := s.Validate(q.Arrival); err != nil {
		return fmt.Errorf("arrival: %w", err)
	}
	if q.Departure == q.Arrival {
		return ErrSameAirport
	}
	if q.Date != "" {
		if _, err := time.Parse(dateLayout, q.Date); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, q.Date)
		}
	}
	return nil
}

// Len returns the number of catalog entries.
func (s *Service) Len() int {
	return len(s.byCode)
}

func validCodeFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
