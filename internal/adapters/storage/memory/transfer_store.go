package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

// TransferStore is a simple in-memory implementation of domain.TransferStore.
// It is NOT persistent and is only suitable for development / tests.
type TransferStore struct {
	mu      sync.RWMutex
	records map[domain.TransferID]*domain.TransferRecord
	order   []domain.TransferID // insertion order, oldest first
}

func NewTransferStore() *TransferStore {
	return &TransferStore{
		records: make(map[domain.TransferID]*domain.TransferRecord),
	}
}

func (s *TransferStore) Insert(ctx context.Context, rec *domain.TransferRecord) (domain.TransferID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = domain.TransferID(uuid.NewString())
	}

	stored := *rec
	s.records[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

func (s *TransferStore) Get(ctx context.Context, id domain.TransferID) (*domain.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := *rec
	return &out, nil
}

// List walks the insertion order backwards so the result is
// most-recent-first with a stable order even for same-instant inserts.
func (s *TransferStore) List(ctx context.Context, roomName string, limit int) ([]*domain.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.TransferRecord, 0, limit)
	for i := len(s.order) - 1; i >= 0; i-- {
		rec := s.records[s.order[i]]
		if roomName != "" && rec.RoomName != roomName {
			continue
		}
		cp := *rec
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *TransferStore) SetAgentB(ctx context.Context, id domain.TransferID, agentB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}

	rec.AgentB = &agentB
	return nil
}
