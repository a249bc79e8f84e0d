package agent

import "github.com/Adityasingh-8858/warm-transfer/internal/domain"

// Tiers configures which agent implementations may run. The mock flag wins
// over everything, matching the operator expectation that forcing mock mode
// never places real participants in rooms.
type Tiers struct {
	EnableVoiceAI bool
	ForceMock     bool

	Publisher domain.RoomPublisher // nil when no provider credentials
	Synth     domain.SpeechSynthesizer
	LiveSynth bool // false when Synth is the offline mock
	LLM       domain.SummaryClient
	LiveLLM   bool
}

// DefaultFactories builds the tier priority list: voice AI, then TTS-only,
// then mock. The first factory whose requirements are met wins at Start.
func DefaultFactories(t Tiers) []Factory {
	voice := func(roomName, identity string) (Session, error) {
		if t.ForceMock || !t.EnableVoiceAI || t.Publisher == nil || !t.LiveSynth || !t.LiveLLM {
			return nil, ErrTierUnavailable
		}
		return newVoiceSession(roomName, identity, t.Publisher, t.Synth, t.LLM), nil
	}

	tts := func(roomName, identity string) (Session, error) {
		if t.ForceMock || t.Publisher == nil || !t.LiveSynth {
			return nil, ErrTierUnavailable
		}
		return newTTSSession(roomName, identity, t.Publisher, t.Synth), nil
	}

	mock := func(roomName, identity string) (Session, error) {
		return NewMockSession(roomName, identity), nil
	}

	return []Factory{voice, tts, mock}
}
