package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/google/uuid"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

// Store is an optional cloud-backed domain.TransferStore for deployments
// that already live on GCP and don't want a local database file.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (WARM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) transfersCol() *firestore.CollectionRef {
	return s.client.Collection("transfers")
}

func (s *Store) transferDocRef(id domain.TransferID) *firestore.DocumentRef {
	return s.transfersCol().Doc(string(id))
}

type transferDoc struct {
	RoomName    string    `firestore:"room_name"`
	AgentA      string    `firestore:"agent_a"`
	AgentB      *string   `firestore:"agent_b"`
	Summary     string    `firestore:"summary"`
	CallContext string    `firestore:"call_context"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func (s *Store) Insert(ctx context.Context, rec *domain.TransferRecord) (domain.TransferID, error) {
	if rec.ID == "" {
		rec.ID = domain.TransferID(uuid.NewString())
	}

	doc := transferDoc{
		RoomName:    rec.RoomName,
		AgentA:      rec.AgentA,
		AgentB:      rec.AgentB,
		Summary:     rec.Summary,
		CallContext: rec.CallContext,
		CreatedAt:   rec.CreatedAt,
	}

	if _, err := s.transferDocRef(rec.ID).Create(ctx, doc); err != nil {
		return "", fmt.Errorf("firestore Insert: %w", err)
	}
	return rec.ID, nil
}

func (s *Store) Get(ctx context.Context, id domain.TransferID) (*domain.TransferRecord, error) {
	snap, err := s.transferDocRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc transferDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}

	return toRecord(id, &doc), nil
}

func (s *Store) List(ctx context.Context, roomName string, limit int) ([]*domain.TransferRecord, error) {
	q := s.transfersCol().Query
	if roomName != "" {
		q = q.Where("room_name", "==", roomName)
	}
	q = q.OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.TransferRecord
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List: %w", err)
		}

		var doc transferDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode transferDoc: %w", err)
		}

		out = append(out, toRecord(domain.TransferID(snap.Ref.ID), &doc))
	}
	return out, nil
}

func (s *Store) SetAgentB(ctx context.Context, id domain.TransferID, agentB string) error {
	_, err := s.transferDocRef(id).Update(ctx, []firestore.Update{
		{Path: "agent_b", Value: agentB},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("firestore SetAgentB: %w", err)
	}
	return nil
}

func toRecord(id domain.TransferID, doc *transferDoc) *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:          id,
		RoomName:    doc.RoomName,
		AgentA:      doc.AgentA,
		AgentB:      doc.AgentB,
		Summary:     doc.Summary,
		CallContext: doc.CallContext,
		CreatedAt:   doc.CreatedAt,
	}
}
