// Package llm talks to the OpenRouter chat completions API for the optional
// AI post-processing step.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdfpeek/pdfpeek/internal/config"
	"github.com/pdfpeek/pdfpeek/internal/domain"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

const defaultPrompt = "Analyze this PDF content and provide insights:"

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat completions request body.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream"`
}

// Response is the chat completions response body, streamed or unary.
type Response struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// Choice is a single completion choice.
type Choice struct {
	Delta        Delta  `json:"delta"`
	Message      Delta  `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// Delta carries message content in streaming and unary responses.
type Delta struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is an OpenRouter API client.
type Client struct {
	cfg        config.OpenRouterConfig
	httpClient *http.Client
	baseURL    string
	retry      RetryConfig
	log        zerolog.Logger
}

// NewClient creates a client from cfg.
func NewClient(cfg config.OpenRouterConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    openRouterURL,
		retry:      DefaultRetryConfig(),
		log:        log,
	}
}

// Analyze sends content through the given model and streams the completion
// into resultCh. The channel is not closed by Analyze.
func (c *Client) Analyze(ctx context.Context, model, content, customPrompt string, resultCh chan<- string) error {
	if c.cfg.APIKey == "" {
		return domain.ConfigError("OPENROUTER_KEY not set", nil)
	}

	prompt := defaultPrompt
	if customPrompt != "" {
		prompt = customPrompt
	}

	body, err := json.Marshal(&Request{
		Model:     model,
		Messages:  []Message{{Role: "user", Content: prompt + "\n\n" + content}},
		MaxTokens: c.cfg.MaxTokens,
		Stream:    true,
	})
	if err != nil {
		return domain.APIError("failed to marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("HTTP-Referer", "https://github.com/pdfpeek/pdfpeek")
		req.Header.Set("X-Title", "pdfpeek")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return domain.APIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(msg)), nil)
	}

	if err := NewStreamParser(resp.Body).Drain(resultCh); err != nil {
		return domain.APIError("failed to parse stream", err)
	}
	return nil
}

// AnalyzeWithFallback runs content through the main model, falls back to the
// backup model on failure, and returns the input unchanged when every model
// fails. A successful response is framed with an AI Analysis header and the
// original content appended, so nothing the extractor produced is lost.
func (c *Client) AnalyzeWithFallback(ctx context.Context, content, customPrompt string, useBackup bool) string {
	models := []string{c.cfg.Model, c.cfg.BackupModel}
	if useBackup {
		models = []string{c.cfg.BackupModel}
	}

	for _, model := range models {
		out, err := c.analyzeToString(ctx, model, content, customPrompt)
		if err != nil {
			c.log.Warn().Err(err).Str("model", model).Msg("AI processing failed")
			continue
		}
		return fmt.Sprintf("# AI Analysis (%s)\n\n%s\n\n---\n\n%s", model, out, content)
	}

	return content
}

// analyzeToString collects a streamed completion into one string.
func (c *Client) analyzeToString(ctx context.Context, model, content, customPrompt string) (string, error) {
	resultCh := make(chan string, 64)
	done := make(chan struct{})

	var b strings.Builder
	go func() {
		for chunk := range resultCh {
			b.WriteString(chunk)
		}
		close(done)
	}()

	err := c.Analyze(ctx, model, content, customPrompt, resultCh)
	close(resultCh)
	<-done

	if err != nil {
		return "", err
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", domain.APIError("model returned an empty response", nil)
	}
	return b.String(), nil
}
