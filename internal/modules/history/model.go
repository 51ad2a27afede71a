// README: Analysis history entry and list limits.
package history

import "time"

const (
	// DefaultLimit is used when the caller does not ask for a page size.
	DefaultLimit = 10
	// MaxLimit caps a single Recent call.
	MaxLimit = 50
)

// Entry is one completed route analysis.
type Entry struct {
	ID          string    `json:"id"`
	Departure   string    `json:"departure"`
	Arrival     string    `json:"arrival"`
	TravelDate  string    `json:"travel_date,omitempty"`
	Route       string    `json:"route"`
	DataSource  string    `json:"data_source"`
	OptionCount int       `json:"option_count"`
	CreatedAt   time.Time `json:"created_at"`
}
