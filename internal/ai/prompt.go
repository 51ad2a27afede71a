package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"flightopt/internal/flights"
	"flightopt/internal/types"
)

var errMissingAvoidTips = errors.New("reply has no avoid_tips")

const systemPrompt = `Role: You are an airfare expert who finds hidden cheap fares for travellers departing from Japan.
Base your suggestions on the real flight offers provided by the user when they are present.

Consider, where they make sense for the route:
- connections through a third city that undercut the direct fare
- hidden-city tickets (booking a longer itinerary and leaving at the layover)
- nearby alternative airports and shifting the date by a few days

Write "route", "tips" and "avoid_tips" in Japanese. Format "price" as yen, e.g. "¥25,000",
and "save" as a percentage versus the cheapest direct fare, e.g. "35%".

Respond with a single JSON object and nothing else:
{
  "hidden_options": [
    {"route": "string", "price": "string", "save": "string", "tips": "string"}
  ],
  "avoid_tips": "string (advice on avoiding dynamic pricing, paragraphs separated by blank lines)"
}`

// buildUserPrompt lists the route, the optional date and one line per offer.
func buildUserPrompt(q types.RouteQuery, raw *flights.RawFlightData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Departure: %s, Arrival: %s", q.Departure, q.Arrival)
	if q.Date != "" {
		fmt.Fprintf(&b, ", Date: %s", q.Date)
	}

	if raw != nil && len(raw.Offers) > 0 {
		b.WriteString("\n\nReal flight offers:\n")
		for _, o := range raw.Offers {
			price := types.Money{Amount: o.Price, Currency: o.Currency}
			fmt.Fprintf(&b, "- %s (%s): %s-%s, %s\n", o.Airline, o.FlightNumber, o.DepartureTime, o.ArrivalTime, price)
		}
	}
	return b.String()
}

// decodeAnalysis parses a model reply. Replies without advice are rejected so
// the caller can fall back to a complete mock result.
func decodeAnalysis(backend, content string) (Analysis, error) {
	clean := cleanJSONString(content)

	var out Analysis
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return Analysis{}, &CallError{Backend: backend, Kind: KindDecode, Err: err}
	}
	if strings.TrimSpace(out.AvoidTips) == "" {
		return Analysis{}, &CallError{Backend: backend, Kind: KindDecode, Err: errMissingAvoidTips}
	}
	if out.HiddenOptions == nil {
		out.HiddenOptions = []RawOption{}
	}
	return out, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
