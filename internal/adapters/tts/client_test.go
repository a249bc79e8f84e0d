package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

func TestClientPassesFormatThrough(t *testing.T) {
	var got speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte("fake audio bytes"))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.endpoint = srv.URL

	audio, err := c.Synthesize(context.Background(), domain.SpeechRequest{
		Text:   "please hold",
		Format: "opus",
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if got.ResponseFormat != "opus" {
		t.Fatalf("expected response_format %q on the wire, got %q", "opus", got.ResponseFormat)
	}
	if got.Input != "please hold" {
		t.Fatalf("unexpected input %q", got.Input)
	}
	if got.Voice != defaultVoice {
		t.Fatalf("expected default voice %q, got %q", defaultVoice, got.Voice)
	}
	if audio.MIME != "audio/ogg" {
		t.Fatalf("expected audio/ogg for opus, got %q", audio.MIME)
	}
}

func TestClientMapsProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported response_format", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient("test-key", "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.endpoint = srv.URL

	_, err = c.Synthesize(context.Background(), domain.SpeechRequest{Text: "hi"})
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}
