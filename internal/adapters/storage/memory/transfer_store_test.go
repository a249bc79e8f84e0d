package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Adityasingh-8858/warm-transfer/internal/adapters/storage/memory"
	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

func TestInsertAssignsID(t *testing.T) {
	store := memory.NewTransferStore()

	id, err := store.Insert(context.Background(), &domain.TransferRecord{
		RoomName:  "support-1",
		AgentA:    "agent-a",
		Summary:   "s",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	got, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != id {
		t.Fatalf("id mismatch: %v vs %v", got.ID, id)
	}
}

func TestListMostRecentFirstWithFilter(t *testing.T) {
	store := memory.NewTransferStore()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		room := "room-a"
		if i%2 == 1 {
			room = "room-b"
		}
		_, err := store.Insert(ctx, &domain.TransferRecord{
			ID:       domain.TransferID(fmt.Sprintf("rec-%d", i)),
			RoomName: room,
			AgentA:   "agent-a",
			Summary:  "s",
		})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	got, err := store.List(ctx, "room-a", 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "rec-2" || got[1].ID != "rec-0" {
		t.Fatalf("unexpected listing: %+v", got)
	}

	limited, err := store.List(ctx, "", 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "rec-3" {
		t.Fatalf("limit not applied most-recent-first: %+v", limited)
	}
}

func TestSetAgentBLastWriteWins(t *testing.T) {
	store := memory.NewTransferStore()
	ctx := context.Background()

	id, _ := store.Insert(ctx, &domain.TransferRecord{RoomName: "r", AgentA: "a", Summary: "s"})

	if err := store.SetAgentB(ctx, id, "first"); err != nil {
		t.Fatalf("SetAgentB failed: %v", err)
	}
	if err := store.SetAgentB(ctx, id, "second"); err != nil {
		t.Fatalf("SetAgentB failed: %v", err)
	}

	got, _ := store.Get(ctx, id)
	if got.AgentB == nil || *got.AgentB != "second" {
		t.Fatalf("expected last write to win, got %v", got.AgentB)
	}

	if err := store.SetAgentB(ctx, "missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
