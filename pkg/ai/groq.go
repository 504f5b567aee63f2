package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

const defaultGroqModel = "llama-3.3-70b-versatile"

// GroqClient is a minimal client for Groq's OpenAI compatible chat API
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var c config.GroqConfig
	if cfg != nil {
		c = *cfg
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("GROQ_API_URL")
		if c.BaseURL == "" {
			c.BaseURL = "https://api.groq.com"
		}
	}
	if c.Model == "" {
		c.Model = defaultGroqModel
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}

	return &GroqClient{
		apiKey:  c.APIKey,
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		model:   c.Model,
		client:  &http.Client{Timeout: c.Timeout},
	}
}

// Configured reports whether an API key is available
func (g *GroqClient) Configured() bool {
	return g != nil && g.apiKey != ""
}

// ChatMessage is a single chat turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a specific output shape
type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObjectFormat constrains the reply to a single JSON object
var JSONObjectFormat = &ResponseFormat{Type: "json_object"}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the request and returns the first choice's content
func (g *GroqClient) ChatCompletion(ctx context.Context, reqBody ChatRequest) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("groq client not configured")
	}
	if reqBody.Model == "" {
		reqBody.Model = g.model
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode groq response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
