// Package gateway is the HTTP client for the generative-AI gateway. The
// gateway is OpenAI-compatible: chat-style requests naming a model and a
// message list, responses carrying either plain text or inline image
// parts.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

// Message is one chat turn. Content is either a plain string or a part
// list for multimodal input.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

func ImagePart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}

// Client is the gateway client used by the pipeline stages.
type Client interface {
	// ChatText sends a chat request and returns the assistant text.
	ChatText(ctx context.Context, model string, messages []Message) (string, error)

	// ChatImage sends an image-generation chat request and returns the
	// generated image as a data URI or resolvable URL. It returns ""
	// with a nil error when the model answered with text only.
	ChatImage(ctx context.Context, model string, prompt string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("AI_GATEWAY_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_GATEWAY_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("AI_GATEWAY_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://ai.gateway.lovable.dev"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeoutSec := 120
	if v := os.Getenv("AI_GATEWAY_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("service", "GatewayClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

// HTTPError carries the upstream status so callers can map rate-limit
// and quota signals (429, 402) to user-facing responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gateway http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type responsePart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
	InlineData *struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"inline_data,omitempty"`
}

func (c *client) do(ctx context.Context, body chatRequest) (chatResponse, error) {
	var out chatResponse

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return out, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return out, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("gateway decode error: %w; raw=%s", err, string(raw))
	}
	return out, nil
}

func (c *client) ChatText(ctx context.Context, model string, messages []Message) (string, error) {
	resp, err := c.do(ctx, chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gateway response has no choices")
	}

	content := resp.Choices[0].Message.Content
	if s, ok := decodeStringContent(content); ok {
		return s, nil
	}
	parts, ok := decodePartsContent(content)
	if !ok {
		return "", fmt.Errorf("gateway response content has unknown shape")
	}
	var b strings.Builder
	for _, p := range parts {
		if p.Type == "text" && p.Text != "" {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}

func (c *client) ChatImage(ctx context.Context, model string, prompt string) (string, error) {
	resp, err := c.do(ctx, chatRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gateway response has no choices")
	}

	content := resp.Choices[0].Message.Content
	if _, ok := decodeStringContent(content); ok {
		// Text answer means no image was generated for this request.
		return "", nil
	}
	parts, ok := decodePartsContent(content)
	if !ok {
		return "", fmt.Errorf("gateway response content has unknown shape")
	}
	for _, p := range parts {
		if p.Type == "image_url" && p.ImageURL != nil && strings.TrimSpace(p.ImageURL.URL) != "" {
			return strings.TrimSpace(p.ImageURL.URL), nil
		}
		if p.InlineData != nil && p.InlineData.Data != "" {
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, p.InlineData.Data), nil
		}
	}
	return "", nil
}

func decodeStringContent(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodePartsContent(raw json.RawMessage) ([]responsePart, bool) {
	var parts []responsePart
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, false
	}
	return parts, true
}
