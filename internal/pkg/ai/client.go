// Package ai talks to a generative-language API for two cosmetic
// collaborators: punch-photo validation and dashboard insight text.
// Without an API key the client runs in mock mode and always approves.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Verdict is the outcome of a photo validation.
type Verdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// PhotoValidator checks that a punch photo shows a real person.
type PhotoValidator interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (Verdict, error)
}

// Insight produces a short human-readable summary of daily counts.
type Insight interface {
	Summarize(ctx context.Context, present, late, absent int) (string, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient returns a client for both collaborators. An empty apiKey
// enables mock mode.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether real API calls will be made.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *generateInline `json:"inline_data,omitempty"`
}

type generateInline struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const photoPrompt = `You are validating an attendance check-in photo. ` +
	`Answer with a JSON object {"is_valid": bool, "reason": string}. ` +
	`The photo is valid only if it clearly shows one live human face, ` +
	`not a screen, printout or empty scene.`

// Analyze asks the model for a photo verdict. In mock mode the photo
// is approved without a network call.
func (c *Client) Analyze(ctx context.Context, image []byte, mimeType string) (Verdict, error) {
	if !c.Enabled() {
		slog.Debug("AI disabled, approving photo without validation")
		return Verdict{IsValid: true, Reason: "validation skipped"}, nil
	}

	parts := []generatePart{
		{Text: photoPrompt},
		{InlineData: &generateInline{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to analyze photo: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(extractJSON(text)), &verdict); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse photo verdict: %w", err)
	}
	return verdict, nil
}

// Summarize produces one short sentence about today's numbers. In mock
// mode a canned sentence is returned.
func (c *Client) Summarize(ctx context.Context, present, late, absent int) (string, error) {
	if !c.Enabled() {
		return fmt.Sprintf("%d present, %d late, %d absent so far today.", present, late, absent), nil
	}

	prompt := fmt.Sprintf(
		"In one short sentence for an HR dashboard, summarize today's attendance: %d present, %d late, %d absent.",
		present, late, absent,
	)
	text, err := c.generate(ctx, []generatePart{{Text: prompt}})
	if err != nil {
		return "", fmt.Errorf("failed to generate insight: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) generate(ctx context.Context, parts []generatePart) (string, error) {
	var reqBody generateRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []generatePart `json:"parts"`
	}{Parts: parts})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai api returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai api returned no candidates")
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSON strips markdown code fences the model sometimes wraps
// JSON answers in.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			return text[start : end+1]
		}
	}
	return text
}
