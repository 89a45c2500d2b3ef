package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	aegis "github.com/aegisai/gosdk"
)

func main() {
	// Load .env if present; environment variables win.
	_ = godotenv.Load()

	apiKey := os.Getenv("AEGIS_API_KEY")
	if apiKey == "" {
		log.Fatal("AEGIS_API_KEY environment variable is required")
	}

	fmt.Printf("Testing Aegis SDK against production servers...\n")
	fmt.Printf("API Key: %s...\n", apiKey[:min(len(apiKey), 10)])

	// Create client with default settings (production endpoint)
	client, err := aegis.New(aegis.WithAPIKey(apiKey))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	testText := "Hello, this is a test message for content safety assessment."
	fmt.Printf("\nAssessing content: %q\n", testText)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.ModerateText(ctx, testText)
	if err != nil {
		if errors.Is(err, aegis.ErrAuthentication) {
			log.Fatalf("❌ Authentication failed: check AEGIS_API_KEY")
		}
		if errors.Is(err, aegis.ErrQuotaExceeded) {
			log.Fatalf("❌ Monthly quota exhausted")
		}

		var apiErr *aegis.APIError
		if errors.As(err, &apiErr) {
			log.Fatalf("❌ Assessment failed (%s): %v", apiErr.Kind, err)
		}
		log.Fatalf("❌ Assessment failed: %v", err)
	}

	// Success! Display results
	fmt.Printf("\n✅ Assessment completed successfully!\n")
	fmt.Printf("Flagged: %v\n", result.Flagged)
	fmt.Printf("Score: %.3f\n", result.Score)
	fmt.Printf("Severity: %s\n", result.Severity)

	if len(result.Tags) > 0 {
		fmt.Printf("\n📊 Matched tags:\n")
		for _, tag := range result.Tags {
			fmt.Printf("  • %s\n", tag)
		}
	} else {
		fmt.Printf("\n📊 No tags matched\n")
	}

	if len(result.CategoryScores) > 0 {
		fmt.Printf("\n📋 Category scores:\n")
		for category, score := range result.CategoryScores {
			fmt.Printf("  • %s: %.3f\n", category, score)
		}
	}

	if usage, ok := client.Usage(); ok {
		fmt.Printf("\n🔢 Quota: %d used of %d (%d remaining)\n",
			usage.Used, usage.Limit, usage.Remaining)
	}
	fmt.Printf("Request ID: %s\n", client.LastRequestID())

	fmt.Printf("\n🎉 SDK test completed successfully!\n")
}
