package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/audio/speech"
	defaultVoice    = "alloy"
	requestTimeout  = 30 * time.Second
)

// Client calls the provider's speech endpoint and returns the audio bytes
// as-is in the requested format.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tts api key is required")
	}
	if model == "" {
		model = "gpt-4o-mini-tts"
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		model:      model,
	}, nil
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize implements domain.SpeechSynthesizer.
func (c *Client) Synthesize(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechAudio, error) {
	voice := req.Voice
	if voice == "" {
		voice = defaultVoice
	}
	format := req.Format
	if format == "" {
		format = "wav"
	}

	body, err := json.Marshal(speechRequest{
		Model:          c.model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: format,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding speech request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building speech request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: speech synthesis: %v", domain.ErrGatewayUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("%w: speech synthesis status %d: %s",
			domain.ErrGatewayUnavailable, res.StatusCode, detail)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading speech response: %v", domain.ErrGatewayUnavailable, err)
	}

	return &domain.SpeechAudio{
		MIME: mimeForFormat(format),
		Data: data,
	}, nil
}

func mimeForFormat(format string) string {
	switch format {
	case "ogg", "opus":
		return "audio/ogg"
	case "mp3":
		return "audio/mpeg"
	default:
		return "audio/wav"
	}
}
