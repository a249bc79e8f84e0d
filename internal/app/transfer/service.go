package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

const (
	// Bound every outbound provider call; a timeout is handled like any
	// other provider error for that step.
	defaultCallTimeout = 10 * time.Second

	DefaultListLimit = 50
)

// Service drives the warm-transfer workflow: generate a briefing summary,
// provision a briefing room, persist the attempt, and on completion remove
// the outgoing agent and record the incoming one.
type Service struct {
	gateway domain.RoomGateway
	llm     domain.SummaryClient
	store   domain.TransferStore

	now         func() time.Time
	callTimeout time.Duration
}

func NewService(gateway domain.RoomGateway, llm domain.SummaryClient, store domain.TransferStore) *Service {
	return &Service{
		gateway:     gateway,
		llm:         llm,
		store:       store,
		now:         time.Now,
		callTimeout: defaultCallTimeout,
	}
}

type InitiateInput struct {
	CallContext    string
	RoomName       string // optional
	AgentAIdentity string // optional
}

type InitiateOutput struct {
	ID      domain.TransferID
	Summary string

	// BriefingRoomName is empty when briefing-room provisioning failed;
	// the summary and record still stand.
	BriefingRoomName string
}

// Initiate runs the first half of the state machine. Steps are strictly
// ordered: summary, then briefing room, then persistence. A summary failure
// aborts with nothing persisted; a room-creation failure only drops the
// briefing room from the response.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (*InitiateOutput, error) {
	if strings.TrimSpace(in.CallContext) == "" {
		return nil, fmt.Errorf("%w: call_context is required", domain.ErrInvalidInput)
	}

	roomName := in.RoomName
	if roomName == "" {
		roomName = domain.UnknownValue
	}
	agentA := in.AgentAIdentity
	if agentA == "" {
		agentA = domain.UnknownValue
	}

	log := observability.LoggerFromContext(ctx).With(
		"room", roomName,
		"agent_a", agentA,
	)
	log.Info("initiating transfer")

	summaryCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	summary, err := s.llm.Summarize(summaryCtx, in.CallContext)
	cancel()
	if err != nil {
		log.Error("summary generation failed", "error", err)
		return nil, err
	}

	briefingRoom := deriveBriefingRoomName(in.RoomName)
	roomCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	err = s.gateway.CreateRoom(roomCtx, briefingRoom)
	cancel()
	if err != nil {
		// The summary is still worth persisting; the caller just gets
		// no briefing room.
		log.Warn("briefing room creation failed", "briefing_room", briefingRoom, "error", err)
		briefingRoom = ""
	}

	rec := &domain.TransferRecord{
		ID:          domain.TransferID(uuid.NewString()),
		RoomName:    roomName,
		AgentA:      agentA,
		Summary:     summary,
		CallContext: in.CallContext,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		log.Error("failed to persist transfer record", "error", err)
		return nil, err
	}

	log.Info("transfer briefed", "transfer_id", id, "briefing_room", briefingRoom)

	return &InitiateOutput{
		ID:               id,
		Summary:          summary,
		BriefingRoomName: briefingRoom,
	}, nil
}

type CompleteInput struct {
	OriginalRoomName string
	AgentAIdentity   string
	AgentBIdentity   string
	TransferID       domain.TransferID // optional
}

// CompleteResult distinguishes "done" from "done, but cleanup partially
// failed". A soft failure is not an error: the request succeeded, the caller
// is informed, nothing should be blindly retried.
type CompleteResult struct {
	Success bool
	Message string
}

// Complete removes the outgoing agent from the original room and records the
// incoming agent. Removal failure degrades to a soft failure; record
// bookkeeping problems are logged and tolerated.
func (s *Service) Complete(ctx context.Context, in CompleteInput) (*CompleteResult, error) {
	if in.OriginalRoomName == "" || in.AgentAIdentity == "" || in.AgentBIdentity == "" {
		return nil, fmt.Errorf("%w: original_room_name, agent_a_identity and agent_b_identity are required",
			domain.ErrInvalidInput)
	}

	log := observability.LoggerFromContext(ctx).With(
		"room", in.OriginalRoomName,
		"agent_a", in.AgentAIdentity,
		"agent_b", in.AgentBIdentity,
	)
	log.Info("completing transfer", "transfer_id", in.TransferID)

	removeCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	removeErr := s.gateway.RemoveParticipant(removeCtx, in.OriginalRoomName, in.AgentAIdentity)
	cancel()
	if removeErr != nil {
		log.Warn("participant removal failed", "error", removeErr)
	}

	if in.TransferID != "" {
		if err := s.store.SetAgentB(ctx, in.TransferID, in.AgentBIdentity); err != nil {
			// Completion is not gated on bookkeeping.
			log.Warn("failed to record agent_b", "transfer_id", in.TransferID, "error", err)
		}
	}

	if removeErr != nil {
		return &CompleteResult{
			Success: false,
			Message: fmt.Sprintf("Transfer recorded, but removing %s from %s failed: %v",
				in.AgentAIdentity, in.OriginalRoomName, removeErr),
		}, nil
	}

	log.Info("transfer completed")
	return &CompleteResult{
		Success: true,
		Message: fmt.Sprintf("Transfer completed. %s removed from %s",
			in.AgentAIdentity, in.OriginalRoomName),
	}, nil
}

func (s *Service) ListTransfers(ctx context.Context, roomName string, limit int) ([]*domain.TransferRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.List(ctx, roomName, limit)
}

func (s *Service) GetTransfer(ctx context.Context, id domain.TransferID) (*domain.TransferRecord, error) {
	return s.store.Get(ctx, id)
}

// deriveBriefingRoomName builds a collision-resistant side-room name that
// stays recognizably tied to the originating room.
func deriveBriefingRoomName(roomName string) string {
	base := roomName
	if base == "" {
		base = "transfer"
	}
	return fmt.Sprintf("%s-briefing-%s", base, uuid.NewString()[:8])
}
