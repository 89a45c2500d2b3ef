package aegis

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// Contenter is an interface that represents a content input to send to the API.
type Contenter interface {
	// endpoint is the moderation path this content type is posted to.
	endpoint() string
	// requestBody returns the wire fields describing the content.
	requestBody() (*Object, error)
}

// NewTextContent can be used to create a text input to send to the API.
func NewTextContent(text string) Contenter {
	return &textContent{text: text}
}

type textContent struct {
	text string
}

func (t *textContent) endpoint() string { return "/v1/moderate/text" }

func (t *textContent) requestBody() (*Object, error) {
	return NewObject().Set("content", String(t.text)), nil
}

// NewImageContent can be used to create an image input to send to the API.
// The image bytes are base64-encoded on the wire.
func NewImageContent(imageData []byte) Contenter {
	return &imageContent{imageData: imageData}
}

type imageContent struct {
	imageData []byte
}

func (i *imageContent) endpoint() string { return "/v1/moderate/image" }

func (i *imageContent) requestBody() (*Object, error) {
	return NewObject().Set("image_base64", String(base64.StdEncoding.EncodeToString(i.imageData))), nil
}

// NewImageFileContent can be used to create an image input from a file
// available on the local file system to send to the API.
func NewImageFileContent(imageFile string) Contenter {
	return &imageFileContent{imageFile: imageFile}
}

type imageFileContent struct {
	imageFile string
}

func (i *imageFileContent) endpoint() string { return "/v1/moderate/image" }

func (i *imageFileContent) requestBody() (*Object, error) {
	imageData, err := os.ReadFile(i.imageFile)
	if err != nil {
		return nil, err
	}
	return NewObject().Set("image_base64", String(base64.StdEncoding.EncodeToString(imageData))), nil
}

// NewImageURLContent can be used to create an image input from a URL to send
// to the API.
func NewImageURLContent(imageURL string) Contenter {
	return &imageURLContent{imageURL: imageURL}
}

type imageURLContent struct {
	imageURL string
}

func (i *imageURLContent) endpoint() string { return "/v1/moderate/image" }

func (i *imageURLContent) requestBody() (*Object, error) {
	return NewObject().Set("image_url", String(i.imageURL)), nil
}

// NewAudioURLContent can be used to create an audio input from a URL to send
// to the API.
func NewAudioURLContent(audioURL string) Contenter {
	return &audioURLContent{audioURL: audioURL}
}

type audioURLContent struct {
	audioURL string
}

func (a *audioURLContent) endpoint() string { return "/v1/moderate/audio" }

func (a *audioURLContent) requestBody() (*Object, error) {
	return NewObject().Set("audio_url", String(a.audioURL)), nil
}

// NewVideoURLContent can be used to create a video input from a URL to send
// to the API.
func NewVideoURLContent(videoURL string) Contenter {
	return &videoURLContent{videoURL: videoURL}
}

type videoURLContent struct {
	videoURL string
}

func (v *videoURLContent) endpoint() string { return "/v1/moderate/video" }

func (v *videoURLContent) requestBody() (*Object, error) {
	return NewObject().Set("video_url", String(v.videoURL)), nil
}

// ModerateOptions allow you to configure certain aspects of how the content
// is assessed.
type ModerateOptions struct {
	// PolicyID selects a policy other than the account default.
	PolicyID string
	// Threshold overrides the policy's flagging threshold. A threshold of
	// 0.0 is considered unset.
	Threshold float64
}

// ModerationResult is the structured risk assessment for one piece of
// content. All fields are decoded tolerantly: a missing or drifted field
// comes back as its zero value rather than failing the call.
type ModerationResult struct {
	// Flagged is the overall verdict against the policy threshold.
	Flagged bool
	// Score is the highest category score, between 0.0 and 1.0.
	Score float64
	// Severity is the service's coarse rating, e.g. "low", "medium", "high".
	Severity string
	// Tags are the policy labels that matched the content.
	Tags []string
	// CategoryScores holds the per-category scores. All categories are
	// included, whether or not they exceeded the threshold.
	CategoryScores map[string]float64
}

func decodeModerationResult(v Value) *ModerationResult {
	obj := v.Object()
	result := &ModerationResult{
		Flagged:        obj.BoolField("is_flagged"),
		Score:          obj.FloatField("score"),
		Severity:       obj.StringField("severity"),
		Tags:           obj.StringsField("tags"),
		CategoryScores: make(map[string]float64),
	}
	if scores := obj.ObjectField("category_scores"); scores != nil {
		for _, category := range scores.Keys() {
			result.CategoryScores[category] = scores.FloatField(category)
		}
	}
	return result
}

// Moderate submits a single piece of content for assessment and returns its
// risk report. The request is retried automatically on transient failures.
func (c *Client) Moderate(ctx context.Context, content Contenter, options ModerateOptions) (*ModerationResult, error) {
	body, err := content.requestBody()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare content: %w", err)
	}

	if options.PolicyID != "" {
		body.Set("policy_id", String(options.PolicyID))
	}
	if options.Threshold != 0 {
		body.Set("threshold", Float(options.Threshold))
	}

	resp, err := c.Do(ctx, http.MethodPost, content.endpoint(), body.Value())
	if err != nil {
		return nil, err
	}
	return decodeModerationResult(resp), nil
}

// ModerateText is sugar for the common case of assessing a piece of text
// with the account's default policy.
func (c *Client) ModerateText(ctx context.Context, text string) (*ModerationResult, error) {
	return c.Moderate(ctx, NewTextContent(text), ModerateOptions{})
}

// Quota fetches the current month's usage counters from the service. The
// same counters are also refreshed as a side effect of every call; see
// Usage.
func (c *Client) Quota(ctx context.Context) (UsageSnapshot, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/usage", Null())
	if err != nil {
		return UsageSnapshot{}, err
	}

	obj := resp.Object()
	return UsageSnapshot{
		Limit:     obj.IntField("limit"),
		Used:      obj.IntField("used"),
		Remaining: obj.IntField("remaining"),
	}, nil
}
