package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

const DefaultIdentity = "ai-agent"

// Manager is the keyed registry of agent sessions: room name is the key, at
// most one live session per room. Operations on the same room serialize on
// that room's lock; different rooms never contend.
type Manager struct {
	factories []Factory

	mu    sync.Mutex
	rooms map[string]*roomSlot
}

type roomSlot struct {
	mu   sync.Mutex
	sess Session
}

func NewManager(factories []Factory) *Manager {
	return &Manager{
		factories: factories,
		rooms:     make(map[string]*roomSlot),
	}
}

// slot returns the room's slot, creating one if absent. Only Start creates
// slots; every other operation uses lookup so idle rooms leave no trace.
func (m *Manager) slot(roomName string) *roomSlot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rooms[roomName]
	if !ok {
		s = &roomSlot{}
		m.rooms[roomName] = s
	}
	return s
}

func (m *Manager) lookup(roomName string) *roomSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[roomName]
}

// isCurrent reports whether s is still the registered slot for the room. A
// slot goes stale when release drops it while another goroutine is waiting
// on its lock.
func (m *Manager) isCurrent(roomName string, s *roomSlot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[roomName] == s
}

// release drops the room's slot once its session is gone, so the registry
// does not grow with room-name churn. The caller holds s.mu.
func (m *Manager) release(roomName string, s *roomSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[roomName] == s {
		delete(m.rooms, roomName)
	}
}

// Start launches a session in the room using the first viable tier. Starting
// a room that already has a live session is a no-op success: duplicate
// synthetic participants are worse than a redundant call.
func (m *Manager) Start(ctx context.Context, roomName, identity string) error {
	if roomName == "" {
		return fmt.Errorf("%w: room_name is required", domain.ErrInvalidInput)
	}
	if identity == "" {
		identity = DefaultIdentity
	}

	var slot *roomSlot
	for {
		slot = m.slot(roomName)
		slot.mu.Lock()
		if m.isCurrent(roomName, slot) {
			break
		}
		slot.mu.Unlock()
	}
	defer slot.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With("room", roomName, "identity", identity)

	if slot.sess != nil {
		log.Info("agent already running", "kind", slot.sess.Kind())
		return nil
	}

	var startErrs []string
	for _, factory := range m.factories {
		sess, err := factory(roomName, identity)
		if err != nil {
			if errors.Is(err, ErrTierUnavailable) {
				continue
			}
			m.release(roomName, slot)
			return err
		}

		if err := sess.Start(ctx); err != nil {
			// A tier that fails at start falls through to the next
			// one rather than failing the request.
			log.Warn("agent tier failed to start", "kind", sess.Kind(), "error", err)
			startErrs = append(startErrs, fmt.Sprintf("%s: %v", sess.Kind(), err))
			continue
		}

		log.Info("agent started", "kind", sess.Kind())
		slot.sess = sess
		return nil
	}

	m.release(roomName, slot)
	return fmt.Errorf("no agent tier could start for room %q: %s",
		roomName, strings.Join(startErrs, "; "))
}

func (m *Manager) Say(ctx context.Context, roomName, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	slot := m.lookup(roomName)
	if slot == nil {
		return fmt.Errorf("%w: room %q", domain.ErrNoActiveSession, roomName)
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.sess == nil {
		return fmt.Errorf("%w: room %q", domain.ErrNoActiveSession, roomName)
	}
	return slot.sess.Say(ctx, text)
}

// Stop tears down the room's session; stopping an idle room is a no-op
// success.
func (m *Manager) Stop(ctx context.Context, roomName string) error {
	slot := m.lookup(roomName)
	if slot == nil {
		return nil
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.sess == nil {
		m.release(roomName, slot)
		return nil
	}

	err := slot.sess.Stop(ctx)
	slot.sess = nil
	m.release(roomName, slot)
	if err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info("agent stopped", "room", roomName)
	return nil
}

// Running reports whether the room currently has a live session, and its
// tier name when it does.
func (m *Manager) Running(roomName string) (string, bool) {
	sess, ok := m.Session(roomName)
	if !ok {
		return "", false
	}
	return sess.Kind(), true
}

// Session returns the room's live session, if any. Callers that need more
// than the tier name, such as inspecting a mock session's recorded lines,
// go through this.
func (m *Manager) Session(roomName string) (Session, bool) {
	slot := m.lookup(roomName)
	if slot == nil {
		return nil, false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.sess == nil {
		return nil, false
	}
	return slot.sess, true
}
