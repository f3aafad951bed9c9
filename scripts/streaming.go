// Command streaming prints a trip plan as Gemini streams it, then checks the
// result the same way the planner does.
//
//	go run ./scripts -city เชียงใหม่ -style city -days 3
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/go-smart-travel-planner/config"
	generativeAI "github.com/FACorreiaa/go-smart-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

var (
	model = flag.String("model", generativeAI.DefaultModel, "the model name")
	city  = flag.String("city", "เชียงใหม่", "destination city or province")
	style = flag.String("style", string(types.TripStyleCity), "trip style: nature, cafe-hopping, adventure, city")
	days  = flag.Int("days", 3, "number of days")
)

func streamPlan(ctx context.Context) error {
	req := types.TripPlanRequest{City: *city, Style: types.TripStyle(*style), Days: *days}
	if err := req.Validate(0); err != nil {
		return err
	}

	client, err := generativeAI.NewAIClient(ctx, os.Getenv(config.GeminiAPIKeyEnv), *model)
	if err != nil {
		return err
	}

	systemInstruction, prompt := itinerary.Prompts(req)
	raw, err := client.StreamContent(ctx, prompt, generativeAI.JSONConfig(systemInstruction, itinerary.DefaultTemperature), func(chunk string) {
		fmt.Print(chunk)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	plan, err := itinerary.ParseItinerary(raw, req.Days)
	if err != nil {
		return fmt.Errorf("response rejected: %w", err)
	}
	out, _ := json.MarshalIndent(itinerary.KeyLocations(plan), "", "  ")
	fmt.Printf("Accepted %q with %d days. Key locations:\n%s\n", plan.TripTitle, len(plan.Days), out)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}
	flag.Parse()
	if err := streamPlan(context.Background()); err != nil {
		log.Fatal(err)
	}
}
