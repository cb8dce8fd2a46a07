package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"studio/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, transport http.RoundTripper) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:        "dummy",
		HTTPClient:    &http.Client{Transport: transport},
		RetryInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestGenerateImageDecodesInlineData(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x01}
	body := `{"candidates":[{"content":{"parts":[` +
		`{"text":"Here is your shot."},` +
		`{"inlineData":{"mimeType":"image/png","data":"` + base64.StdEncoding.EncodeToString(imageBytes) + `"}}` +
		`]}}]}`

	var capturedPath string
	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		capturedPath = r.URL.Path
		if got := r.Header.Get("x-goog-api-key"); got != "dummy" {
			t.Fatalf("api key header = %q", got)
		}
		var payload geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(payload.Contents) != 1 || len(payload.Contents[0].Parts) != 2 {
			t.Fatalf("unexpected request shape: %+v", payload.Contents)
		}
		if payload.Contents[0].Parts[0].Text != "studio prompt" {
			t.Fatalf("prompt part = %q", payload.Contents[0].Parts[0].Text)
		}
		return jsonResponse(http.StatusOK, body), nil
	}))

	parts, err := client.GenerateImage(context.Background(), "studio prompt", []Blob{{MIME: "image/png", Data: []byte{1, 2}}})
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if !strings.Contains(capturedPath, client.ImageModel()) {
		t.Fatalf("request path = %q, want image model", capturedPath)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if parts[0].IsImage() {
		t.Fatal("text part decoded as image")
	}
	if !parts[1].IsImage() || string(parts[1].Data) != string(imageBytes) {
		t.Fatal("inline data part not decoded to raw bytes")
	}
}

func TestGenerateImageRetriesServerErrors(t *testing.T) {
	attempts := 0
	body := `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"` +
		base64.StdEncoding.EncodeToString([]byte{1}) + `"}}]}}]}`

	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusInternalServerError, `{"error":{"code":500,"message":"backend error"}}`), nil
		}
		return jsonResponse(http.StatusOK, body), nil
	}))

	if _, err := client.GenerateImage(context.Background(), "prompt", nil); err != nil {
		t.Fatalf("GenerateImage returned error after retry: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("made %d attempts, want 2", attempts)
	}
}

func TestGenerateImageDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusBadRequest, `{"error":{"code":400,"message":"invalid argument"}}`), nil
	}))

	_, err := client.GenerateImage(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("GenerateImage succeeded on a 400 response")
	}
	if errors.Is(err, domain.ErrTransport) {
		t.Fatalf("client error classified as transport failure: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("made %d attempts, want 1", attempts)
	}
}

func TestGenerateImageTransportFailureIsTagged(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	}))

	_, err := client.GenerateImage(context.Background(), "prompt", nil)
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("GenerateImage error = %v, want ErrTransport", err)
	}
}

func TestGenerateJSONReturnsFirstTextPart(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"[{\"title\":\"Hero\",\"description\":\"full body\"}]"}]}}]}`

	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		var payload geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.SystemInstruction == nil {
			t.Fatal("request missing system instruction")
		}
		if payload.GenerationConfig == nil || payload.GenerationConfig.ResponseMimeType != "application/json" {
			t.Fatalf("unexpected generation config: %+v", payload.GenerationConfig)
		}
		return jsonResponse(http.StatusOK, body), nil
	}))

	out, err := client.GenerateJSON(context.Background(), "plan shots", "brief", nil)
	if err != nil {
		t.Fatalf("GenerateJSON returned error: %v", err)
	}
	if !strings.Contains(out, "Hero") {
		t.Fatalf("GenerateJSON output = %q", out)
	}
}

func TestGenerateJSONNoTextIsAnError(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"AA=="}}]}}]}`
	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}))

	if _, err := client.GenerateJSON(context.Background(), "system", "user", nil); err == nil {
		t.Fatal("GenerateJSON succeeded without any text part")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("NewClient accepted empty api key")
	}
}
