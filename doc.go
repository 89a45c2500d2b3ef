// Package aegis provides the official Go SDK for the Aegis Content Safety API.
//
// Aegis is a content-safety platform that assesses text, images, audio, and
// video for policy violations. This SDK gives host applications a simple,
// synchronous-looking interface to the service while handling the request
// envelope for them: JSON encoding and decoding, retry with exponential
// backoff, error classification, and quota tracking.
//
// # Quick Start
//
// To get started, you'll need an Aegis API key. Contact support@aegisai.com
// to request one.
//
//	import "github.com/aegisai/gosdk"
//
//	// Create a client
//	client, err := aegis.New(aegis.WithAPIKey("your-api-key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Assess content
//	result, err := client.ModerateText(context.Background(), "Content to assess")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if result.Flagged {
//		fmt.Println("Content flagged:", result.Tags)
//	}
//
// # Content Types
//
// The SDK supports multiple content types:
//
//   - Text content: aegis.NewTextContent("your text")
//   - Image data: aegis.NewImageContent(imageBytes)
//   - Image files: aegis.NewImageFileContent("path/to/image.jpg")
//   - Image URLs: aegis.NewImageURLContent("https://example.com/image.jpg")
//   - Audio URLs: aegis.NewAudioURLContent("https://example.com/clip.ogg")
//   - Video URLs: aegis.NewVideoURLContent("https://example.com/clip.mp4")
//
// # Error Handling and Retries
//
// Failed requests come back as an *APIError carrying an ErrorKind. Transient
// kinds (rate limits, server errors, connection failures) are retried
// automatically with configurable exponential backoff before they are
// surfaced; fatal kinds (authentication, validation, not-found, quota, plan
// access) propagate immediately because another attempt cannot succeed
// without caller intervention. Sentinel errors support errors.Is checks:
//
//	result, err := client.ModerateText(ctx, text)
//	if errors.Is(err, aegis.ErrRateLimited) {
//		// the SDK already retried; slow down at the application level
//	}
//
// The default configuration jitters each delay (RandomizationFactor 0.65)
// so many clients recovering at once do not retry in lockstep; set
// RandomizationFactor to 0 for a fully deterministic schedule.
//
// You can customize retry behavior:
//
//	client, err := aegis.New(
//		aegis.WithAPIKey("your-api-key"),
//		aegis.WithRetryConfig(aegis.RetryConfig{
//			MaxRetries:      3,
//			InitialInterval: 500 * time.Millisecond,
//			MaxInterval:     30 * time.Second,
//			Multiplier:      2.0,
//		}),
//	)
//
// # Quota Tracking
//
// Every response carries the account's monthly usage counters, which the
// client records. Read them with Usage, or fetch fresh counters with Quota:
//
//	if usage, ok := client.Usage(); ok {
//		fmt.Printf("%d of %d requests used\n", usage.Used, usage.Limit)
//	}
//
// # JSON Values
//
// Request and response bodies are represented by the dynamic Value type with
// its own parser and serializer. The parser is intentionally forgiving:
// malformed input parses to null rather than an error, and the tolerant
// field accessors on Object default missing or drifted fields instead of
// failing. Use Client.Do with hand-built Values for endpoints the typed
// methods do not cover.
//
// For more information and examples, visit: https://docs.aegisai.com
package aegis
