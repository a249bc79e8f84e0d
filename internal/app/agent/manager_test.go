package agent_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Adityasingh-8858/warm-transfer/internal/app/agent"
	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

func mockOnlyManager() *agent.Manager {
	return agent.NewManager(agent.DefaultFactories(agent.Tiers{ForceMock: true}))
}

func TestStartIsIdempotent(t *testing.T) {
	m := mockOnlyManager()
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", "ai-agent"); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := m.Start(ctx, "room-1", "ai-agent"); err != nil {
		t.Fatalf("second Start should be a no-op success: %v", err)
	}

	kind, running := m.Running("room-1")
	if !running || kind != "mock" {
		t.Fatalf("expected one running mock session, got %q/%v", kind, running)
	}
}

func TestSayWithoutSession(t *testing.T) {
	m := mockOnlyManager()

	err := m.Say(context.Background(), "empty-room", "hello")
	if !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSayAfterStop(t *testing.T) {
	m := mockOnlyManager()
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Stop(ctx, "room-1"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	err := m.Say(ctx, "room-1", "anyone there?")
	if !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession after stop, got %v", err)
	}
}

func TestStopIdleRoomIsNoop(t *testing.T) {
	m := mockOnlyManager()

	if err := m.Stop(context.Background(), "never-started"); err != nil {
		t.Fatalf("Stop on idle room should succeed: %v", err)
	}
}

func TestRestartAfterStop(t *testing.T) {
	m := mockOnlyManager()
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Stop(ctx, "room-1"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if _, running := m.Running("room-1"); !running {
		t.Fatal("expected a running session after restart")
	}
}

func TestMockSessionRecordsSays(t *testing.T) {
	m := mockOnlyManager()
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := m.Say(ctx, "room-1", fmt.Sprintf("line %d", i)); err != nil {
			t.Fatalf("Say %d failed: %v", i, err)
		}
	}

	sess, ok := m.Session("room-1")
	if !ok {
		t.Fatal("expected a live session")
	}
	mock, ok := sess.(*agent.MockSession)
	if !ok {
		t.Fatalf("expected mock session, got %T", sess)
	}
	says := mock.Says()
	if len(says) != 3 || says[0] != "line 0" || says[2] != "line 2" {
		t.Fatalf("unexpected recorded says: %v", says)
	}
}

func TestSayRejectsEmptyText(t *testing.T) {
	m := mockOnlyManager()
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := m.Say(ctx, "room-1", "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// failing session tier, to check fall-through at start.
type brokenSession struct{ kind string }

func (b brokenSession) Start(ctx context.Context) error         { return fmt.Errorf("boom") }
func (b brokenSession) Say(ctx context.Context, t string) error { return nil }
func (b brokenSession) Stop(ctx context.Context) error          { return nil }
func (b brokenSession) Kind() string                            { return b.kind }

func TestStartFallsThroughFailingTier(t *testing.T) {
	factories := []agent.Factory{
		func(room, id string) (agent.Session, error) { return brokenSession{kind: "voice_ai"}, nil },
		func(room, id string) (agent.Session, error) { return agent.NewMockSession(room, id), nil },
	}
	m := agent.NewManager(factories)

	if err := m.Start(context.Background(), "room-1", ""); err != nil {
		t.Fatalf("Start should fall back to the next tier: %v", err)
	}
	kind, running := m.Running("room-1")
	if !running || kind != "mock" {
		t.Fatalf("expected mock fallback, got %q/%v", kind, running)
	}
}

func TestDefaultFactoriesHonorForceMock(t *testing.T) {
	m := agent.NewManager(agent.DefaultFactories(agent.Tiers{
		ForceMock:     true,
		EnableVoiceAI: true,
		LiveSynth:     true,
		LiveLLM:       true,
	}))

	if err := m.Start(context.Background(), "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	kind, _ := m.Running("room-1")
	if kind != "mock" {
		t.Fatalf("force-mock must pin the mock tier, got %q", kind)
	}
}

// Fakes for the live tiers: a publisher that records published files and a
// synthesizer that records the requests it served.

type fakeConn struct {
	mu        sync.Mutex
	published []string
}

func (c *fakeConn) PublishAudioFile(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, path)
	return nil
}

func (c *fakeConn) Disconnect() {}

type fakePublisher struct {
	conn fakeConn
}

func (p *fakePublisher) Join(ctx context.Context, roomName, identity string) (domain.RoomConnection, error) {
	return &p.conn, nil
}

type recordingSynth struct {
	mu       sync.Mutex
	requests []domain.SpeechRequest
}

func (s *recordingSynth) Synthesize(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechAudio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return &domain.SpeechAudio{MIME: "audio/ogg", Data: []byte("not real audio")}, nil
}

func TestTTSTierRequestsOpusAudio(t *testing.T) {
	pub := &fakePublisher{}
	synth := &recordingSynth{}
	m := agent.NewManager(agent.DefaultFactories(agent.Tiers{
		Publisher: pub,
		Synth:     synth,
		LiveSynth: true,
	}))
	ctx := context.Background()

	if err := m.Start(ctx, "room-1", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	kind, _ := m.Running("room-1")
	if kind != "tts" {
		t.Fatalf("expected the tts tier, got %q", kind)
	}
	if err := m.Say(ctx, "room-1", "please hold"); err != nil {
		t.Fatalf("Say failed: %v", err)
	}
	if err := m.Stop(ctx, "room-1"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if len(synth.requests) != 1 {
		t.Fatalf("expected one synthesis request, got %d", len(synth.requests))
	}
	// OpenAI's speech endpoint accepts opus, not ogg; the container it
	// returns is still ogg, hence the file suffix.
	if got := synth.requests[0].Format; got != "opus" {
		t.Fatalf("expected format %q, got %q", "opus", got)
	}
	if len(pub.conn.published) != 1 || !strings.HasSuffix(pub.conn.published[0], ".ogg") {
		t.Fatalf("expected one published .ogg file, got %v", pub.conn.published)
	}
}
