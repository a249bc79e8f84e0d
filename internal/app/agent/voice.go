package agent

import (
	"context"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

const voiceGreeting = "Hello! I'm your AI assistant. I'm here to help during your call."

// voiceSession is the conversational tier: it speaks like the TTS tier but
// first turns the prompt into a short reply through the language model, and
// greets the room when it joins.
type voiceSession struct {
	*ttsSession
	llm domain.SummaryClient
}

func newVoiceSession(roomName, identity string, publisher domain.RoomPublisher, synth domain.SpeechSynthesizer, llm domain.SummaryClient) *voiceSession {
	return &voiceSession{
		ttsSession: newTTSSession(roomName, identity, publisher, synth),
		llm:        llm,
	}
}

func (s *voiceSession) Start(ctx context.Context) error {
	if err := s.ttsSession.Start(ctx); err != nil {
		return err
	}
	if err := s.ttsSession.Say(ctx, voiceGreeting); err != nil {
		// The greeting is cosmetic; a failed one should not take the
		// session down.
		observability.LoggerFromContext(ctx).Warn("agent greeting failed",
			"room", s.roomName,
			"error", err)
	}
	return nil
}

func (s *voiceSession) Say(ctx context.Context, text string) error {
	reply, err := s.llm.Reply(ctx, text)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("agent reply generation failed, speaking prompt as-is",
			"room", s.roomName,
			"error", err)
		reply = text
	}
	return s.ttsSession.Say(ctx, reply)
}

func (s *voiceSession) Kind() string { return "voice_ai" }
