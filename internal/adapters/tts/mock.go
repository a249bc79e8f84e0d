package tts

import (
	"context"
	"math"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

const (
	toneFrequency = 440.0
	// Playback length scales with the text as a stand-in for real speech
	// pacing, clamped to keep payloads bounded.
	minToneSeconds = 1.0
	maxToneSeconds = 8.0
	secondsPerRune = 0.06
)

// MockSynthesizer produces a deterministic sine tone wrapped as WAV, sized in
// proportion to the input text. It never touches the network; useful for
// offline operation and tests.
type MockSynthesizer struct{}

func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechAudio, error) {
	seconds := minToneSeconds + secondsPerRune*float64(len([]rune(req.Text)))
	if seconds > maxToneSeconds {
		seconds = maxToneSeconds
	}

	samples := int(seconds * sampleRate)
	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := math.Sin(2 * math.Pi * toneFrequency * float64(i) / sampleRate)
		s := int16(v * 0.25 * math.MaxInt16)
		pcm[2*i] = byte(s)
		pcm[2*i+1] = byte(s >> 8)
	}

	return &domain.SpeechAudio{
		MIME: "audio/wav",
		Data: pcmToWAV(pcm),
	}, nil
}
