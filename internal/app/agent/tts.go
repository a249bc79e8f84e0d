package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

// ttsSession joins the room as a real participant and answers Say by
// synthesizing speech and publishing it as an audio track.
type ttsSession struct {
	roomName  string
	identity  string
	publisher domain.RoomPublisher
	synth     domain.SpeechSynthesizer

	conn domain.RoomConnection

	// Audio files stay on disk while the provider may still be streaming
	// them; cleaned up on Stop.
	tempFiles []string
}

func newTTSSession(roomName, identity string, publisher domain.RoomPublisher, synth domain.SpeechSynthesizer) *ttsSession {
	return &ttsSession{
		roomName:  roomName,
		identity:  identity,
		publisher: publisher,
		synth:     synth,
	}
}

func (s *ttsSession) Start(ctx context.Context) error {
	conn, err := s.publisher.Join(ctx, s.roomName, s.identity)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *ttsSession) Say(ctx context.Context, text string) error {
	// "opus" arrives in an ogg container, which the room publisher can
	// stream as a file track.
	audio, err := s.synth.Synthesize(ctx, domain.SpeechRequest{
		Text:   text,
		Format: "opus",
	})
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "agent-tts-*.ogg")
	if err != nil {
		return fmt.Errorf("creating tts temp file: %w", err)
	}
	if _, err := f.Write(audio.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("writing tts audio: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("closing tts audio: %w", err)
	}
	s.tempFiles = append(s.tempFiles, f.Name())

	observability.LoggerFromContext(ctx).Info("agent speaking",
		"room", s.roomName,
		"bytes", len(audio.Data))

	return s.conn.PublishAudioFile(ctx, f.Name())
}

func (s *ttsSession) Stop(ctx context.Context) error {
	if s.conn != nil {
		s.conn.Disconnect()
		s.conn = nil
	}
	for _, path := range s.tempFiles {
		os.Remove(path)
	}
	s.tempFiles = nil
	return nil
}

func (s *ttsSession) Kind() string { return "tts" }
