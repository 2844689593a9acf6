package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AISource asks a chat-completion vendor to write offers for a card.
// Whatever the model returns is reshaped and passed through; there is no
// validity filtering beyond parsing.
type AISource struct {
	http  *resty.Client
	model string
}

func NewAISource(baseURL, apiKey, model string) *AISource {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")

	return &AISource{http: httpClient, model: model}
}

func (s *AISource) Name() string { return "ai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *AISource) FetchOffers(ctx context.Context, card CardContext) ([]Offer, error) {
	prompt := fmt.Sprintf(
		`List current promotional offers for a %s card issued by %s.
Current month: %s.
Respond with a JSON array only, each element shaped as
{"title": "...", "description": "...", "category": "...", "validTill": "YYYY-MM-DD"}.
Include only offers that are currently active.`,
		card.Network, card.BankName, time.Now().Format("January 2006"),
	)

	var out chatResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "user", Content: prompt},
			},
			Temperature: 0.7,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("offer completion request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("offer completion failed with status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("offer completion returned no choices")
	}

	offers, err := parseOffersJSON(out.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return offers, nil
}

// parseOffersJSON extracts the JSON array from a completion, tolerating
// the code fences models like to wrap answers in.
func parseOffersJSON(content string) ([]Offer, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in completion output")
	}

	var offers []Offer
	if err := json.Unmarshal([]byte(content[start:end+1]), &offers); err != nil {
		return nil, fmt.Errorf("failed to parse completion output: %w", err)
	}

	return offers, nil
}
