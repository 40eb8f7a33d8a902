// ABOUTME: OpenAI chat completions client that turns a profile into a plan.
// ABOUTME: Makes exactly one request per call and reports typed errors.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL     = "https://api.openai.com"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second

	completionsPath = "/v1/chat/completions"
	maxErrorBody    = 4096
)

// ConfigurationError means the client cannot make a request at all.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "recommendation client not configured: " + e.Reason
}

// UpstreamError covers every failure after a request was attempted.
// StatusCode is 0 when no response arrived.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openai returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("openai request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64
	HTTPClient  *http.Client
	Language    labels.Lang
	Logger      zerolog.Logger
}

// Client requests diet and workout plans from a chat completions endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	http        *http.Client
	lang        labels.Lang
	log         zerolog.Logger
}

// New builds a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		model:       opts.Model,
		temperature: DefaultTemperature,
		http:        opts.HTTPClient,
		lang:        opts.Language,
		log:         opts.Logger.With().Str("component", "recommend").Logger(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if opts.Temperature != nil {
		c.temperature = *opts.Temperature
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.lang == "" {
		c.lang = labels.Default
	}
	return c
}

// Language returns the language prompts are written in.
func (c *Client) Language() labels.Lang {
	return c.lang
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RequestPlan asks the model for a plan of kind tailored to p. The context
// bounds the wait; there is no retry.
func (c *Client) RequestPlan(ctx context.Context, kind models.PlanKind, p *models.Profile, additionalInfo string) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigurationError{Reason: "OPENAI_API_KEY not set"}
	}

	prompt, err := RenderPrompt(kind, p, additionalInfo, c.lang)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	c.log.Debug().
		Str("kind", string(kind)).
		Str("model", c.model).
		Str("lang", string(c.lang)).
		Msg("requesting plan")

	content, err := c.do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("kind", string(kind)).Dur("elapsed", time.Since(start)).Msg("plan request failed")
		return "", err
	}
	c.log.Debug().Str("kind", string(kind)).Dur("elapsed", time.Since(start)).Int("chars", len(content)).Msg("plan received")
	return content, nil
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(raw), maxErrorBody),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Err: errors.New("no choices in response")}
	}
	msg := parsed.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", &UpstreamError{Err: errors.New("no message content in response")}
	}
	return *msg.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
