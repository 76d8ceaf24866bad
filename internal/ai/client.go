package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completion backend failure kinds. The client never retries; callers decide
// what a failure means (in practice: substitute the static fallback).
var (
	ErrUpstreamUnavailable = fmt.Errorf("completion backend unavailable")
	ErrRateLimited         = fmt.Errorf("completion backend rate limited")
	ErrQuotaExhausted      = fmt.Errorf("completion backend quota exhausted")
)

// GenerationParams are fixed per request kind, not per call.
type GenerationParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client talks to an OpenAI-compatible chat-completions endpoint (Groq by
// default). It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // LLM 调用可能很慢，但不能无限等
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends a rendered prompt and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       params.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response body: %v", ErrUpstreamUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrUpstreamUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}

// statusError maps a non-200 status to the failure taxonomy. A 429 carrying
// the insufficient_quota code means billing, not throughput.
func (c *Client) statusError(status int, body []byte) error {
	var ae apiError
	_ = json.Unmarshal(body, &ae)

	switch {
	case status == http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ErrQuotaExhausted, ae.Error.Message)
	case status == http.StatusTooManyRequests && ae.Error.Code == "insufficient_quota":
		return fmt.Errorf("%w: %s", ErrQuotaExhausted, ae.Error.Message)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, ae.Error.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, status, ae.Error.Message)
	}
}
