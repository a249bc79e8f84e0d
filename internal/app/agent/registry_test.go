package agent

import (
	"context"
	"fmt"
	"testing"
)

// Slot bookkeeping is invisible through the exported API, so these tests
// live inside the package.

func (m *Manager) slotCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

func TestStopReleasesRoomSlot(t *testing.T) {
	m := NewManager(DefaultFactories(Tiers{ForceMock: true}))
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		room := fmt.Sprintf("room-%d", i)
		if err := m.Start(ctx, room, ""); err != nil {
			t.Fatalf("Start %s failed: %v", room, err)
		}
		if err := m.Stop(ctx, room); err != nil {
			t.Fatalf("Stop %s failed: %v", room, err)
		}
	}

	if n := m.slotCount(); n != 0 {
		t.Fatalf("expected no slots after stopping every room, got %d", n)
	}
}

func TestIdleRoomOpsLeaveNoSlot(t *testing.T) {
	m := NewManager(DefaultFactories(Tiers{ForceMock: true}))
	ctx := context.Background()

	_ = m.Say(ctx, "never-started", "hello")
	_ = m.Stop(ctx, "never-started")
	m.Running("never-started")

	if n := m.slotCount(); n != 0 {
		t.Fatalf("idle-room operations must not register slots, got %d", n)
	}
}

func TestFailedStartReleasesSlot(t *testing.T) {
	factories := []Factory{
		func(room, id string) (Session, error) { return stallSession{}, nil },
	}
	m := NewManager(factories)

	if err := m.Start(context.Background(), "room-1", ""); err == nil {
		t.Fatal("expected Start to fail with no viable tier")
	}
	if n := m.slotCount(); n != 0 {
		t.Fatalf("failed start must not leave a slot behind, got %d", n)
	}
}

type stallSession struct{}

func (stallSession) Start(ctx context.Context) error         { return fmt.Errorf("boom") }
func (stallSession) Say(ctx context.Context, t string) error { return nil }
func (stallSession) Stop(ctx context.Context) error          { return nil }
func (stallSession) Kind() string                            { return "tts" }
