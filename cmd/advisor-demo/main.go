package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"flightopt/internal/ai"
	"flightopt/internal/config"
	"flightopt/internal/flights"
)

func main() {
	departure := flag.String("from", "NRT", "departure airport code")
	arrival := flag.String("to", "ICN", "arrival airport code")
	date := flag.String("date", "", "travel date YYYY-MM-DD")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	flightClient := flights.NewClient(flights.Config(cfg.Flights))
	advisor := ai.NewAdvisor(ctx, cfg.Advisor)
	defer advisor.Close()

	dep, arr := strings.ToUpper(*departure), strings.ToUpper(*arrival)
	fmt.Printf("Flight data: %s, advisor: %s\n", flightClient.Mode(), advisor.Mode())

	raw := flightClient.FetchOffers(ctx, dep, arr, *date)
	fmt.Printf("\nOffers from %s:\n", raw.Source)
	for _, o := range raw.Offers {
		fmt.Printf("  %-16s %-7s %s-%s  %.0f %s\n", o.Airline, o.FlightNumber, o.DepartureTime, o.ArrivalTime, o.Price, o.Currency)
	}

	result := advisor.AnalyzeRoute(ctx, dep, arr, *date, &raw)
	fmt.Println("\nHidden options:")
	for i, o := range result.HiddenOptions {
		fmt.Printf("  %d. %s  %s (save %s)\n", i+1, o.Route, o.Price, o.Save)
		if o.Tips != "" {
			fmt.Printf("     %s\n", o.Tips)
		}
	}
	fmt.Printf("\nAvoid tips:\n%s\n", result.AvoidTips)
}
