// README: Route query value object shared by the adapters and the orchestrator.
package types

// RouteQuery is one departure/arrival pair with an optional travel date.
// Codes are expected to be normalized (trimmed, upper-cased) by the caller.
type RouteQuery struct {
	Departure string
	Arrival   string
	Date      string
}

// Label returns the human-readable route, "NRT → ICN" or "NRT → ICN (2026-04-01)".
func (q RouteQuery) Label() string {
	label := q.Departure + " → " + q.Arrival
	if q.Date != "" {
		label += " (" + q.Date + ")"
	}
	return label
}
