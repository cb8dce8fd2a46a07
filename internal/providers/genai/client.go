package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"studio/internal/domain"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	// Timeout bounds each HTTP attempt. Expiry is treated as a retryable
	// transport error, not a fatal one.
	Timeout time.Duration
	// RequestsPerMinute throttles outbound calls. Zero or negative disables
	// throttling.
	RequestsPerMinute int
	// RetryInterval is the initial backoff interval between attempts.
	RetryInterval time.Duration
	Logger        *zerolog.Logger
}

// Client is a lightweight facade over the Gemini generateContent API. The
// variably-shaped response (text parts, inline data) is decoded exactly once
// here into a flat Part list, so callers never inspect wire-level attributes.
type Client struct {
	apiKey        string
	baseURL       string
	textModel     string
	imageModel    string
	httpClient    *http.Client
	limiter       *rate.Limiter
	retryInterval time.Duration
	logger        zerolog.Logger
}

// Blob is an inline image sent with a request.
type Blob struct {
	MIME string
	Data []byte
}

// Part is one decoded element of a model response: either inline image bytes
// or plain text, never both.
type Part struct {
	Text string
	MIME string
	Data []byte
}

// IsImage reports whether the part carries inline image bytes.
func (p Part) IsImage() bool {
	return len(p.Data) > 0
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	CandidateCount     int      `json:"candidateCount,omitempty"`
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-3-pro-image-preview"
	defaultTimeout    = 90 * time.Second
)

// NewClient constructs a Gemini client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("genai: api key is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = defaultTextModel
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute)
	}

	retryInterval := opts.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 500 * time.Millisecond
	}

	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		apiKey:        strings.TrimSpace(opts.APIKey),
		baseURL:       baseURL,
		textModel:     textModel,
		imageModel:    imageModel,
		httpClient:    httpClient,
		limiter:       limiter,
		retryInterval: retryInterval,
		logger:        logger,
	}, nil
}

// ImageModel returns the configured image model identifier.
func (c *Client) ImageModel() string {
	return c.imageModel
}

// GenerateImage sends a prompt plus ordered inline reference images to the
// image model and returns the decoded response parts. The order of blobs is
// preserved on the wire; prompt text that numbers the images relies on it.
func (c *Client) GenerateImage(ctx context.Context, prompt string, images []Blob) ([]Part, error) {
	parts := make([]geminiPart, 0, len(images)+1)
	parts = append(parts, geminiPart{Text: prompt})
	for _, img := range images {
		mime := img.MIME
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			CandidateCount:     1,
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, c.imageModel, payload, &response); err != nil {
		return nil, err
	}
	return decodeParts(response)
}

// GenerateJSON sends a system instruction plus user text (and an optional
// moodboard image) to the text model with a JSON response MIME type, and
// returns the first non-empty text part.
func (c *Client) GenerateJSON(ctx context.Context, system, user string, moodboard *Blob) (string, error) {
	parts := []geminiPart{{Text: user}}
	if moodboard != nil && len(moodboard.Data) > 0 {
		mime := moodboard.MIME
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(moodboard.Data),
		}})
	}

	payload := geminiGenerateContentRequest{
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		SystemInstruction: &geminiContent{Role: "user", Parts: []geminiPart{{Text: system}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.5,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, c.textModel, payload, &response); err != nil {
		return "", err
	}
	decoded, err := decodeParts(response)
	if err != nil {
		return "", err
	}
	for _, part := range decoded {
		if strings.TrimSpace(part.Text) != "" {
			return part.Text, nil
		}
	}
	return "", errors.New("genai: no text content returned")
}

func (c *Client) invoke(ctx context.Context, model string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))

	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("invoke gemini: %w: %v", domain.ErrTransport, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			apiErr := readAPIError(resp)
			if retryableStatus(resp.StatusCode) {
				return fmt.Errorf("gemini status %d: %w: %s", resp.StatusCode, domain.ErrTransport, apiErr)
			}
			return backoff.Permanent(fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode gemini response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	err = backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, 1), ctx))
	if err != nil {
		c.logger.Warn().Err(err).Str("model", model).Msg("genai: generateContent failed")
		return err
	}
	return nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func readAPIError(resp *http.Response) string {
	data, _ := io.ReadAll(resp.Body)
	var apiErr geminiErrorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return strings.TrimSpace(string(data))
}

func decodeParts(resp geminiGenerateContentResponse) ([]Part, error) {
	var parts []Part
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			switch {
			case part.InlineData != nil && part.InlineData.Data != "":
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode inline data: %w", err)
				}
				parts = append(parts, Part{MIME: part.InlineData.MimeType, Data: data})
			case part.Text != "":
				parts = append(parts, Part{Text: part.Text})
			}
		}
	}
	return parts, nil
}
