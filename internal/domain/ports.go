package domain

import "context"

// RoomGateway defines how the core talks to the real-time provider's control
// plane. Media transport never passes through here.
type RoomGateway interface {
	// AccessToken issues a signed join token. Idempotent; the room is
	// created on first join.
	AccessToken(roomName, identity string) (string, error)

	// CreateRoom is idempotent; an already-existing room is not an error.
	CreateRoom(ctx context.Context, roomName string) error

	ListRooms(ctx context.Context) ([]Room, error)

	// ListParticipants degrades to an empty slice on provider failure:
	// the listing feeds best-effort UI context, not transactional state.
	ListParticipants(ctx context.Context, roomName string) ([]Participant, error)

	// RemoveParticipant is best-effort; an identity that is already absent
	// is success (the desired end state holds).
	RemoveParticipant(ctx context.Context, roomName, identity string) error
}

// SummaryClient defines how the core interacts with a text-generation service.
type SummaryClient interface {
	// Summarize turns raw call context into a concise briefing for the
	// incoming agent.
	Summarize(ctx context.Context, callContext string) (string, error)

	// Reply produces a short conversational reply, used by the voice
	// agent when it speaks in a room.
	Reply(ctx context.Context, prompt string) (string, error)
}

// TransferStore defines persistence for transfer records.
type TransferStore interface {
	// Insert appends a record, assigning an id if the caller left it
	// empty, and returns the id.
	Insert(ctx context.Context, rec *TransferRecord) (TransferID, error)

	// Get returns ErrNotFound for an unknown id.
	Get(ctx context.Context, id TransferID) (*TransferRecord, error)

	// List returns records most-recent-first. An empty roomName means no
	// filter; limit caps result size.
	List(ctx context.Context, roomName string, limit int) ([]*TransferRecord, error)

	// SetAgentB records the incoming agent on an existing record.
	// Last-write-wins; returns ErrNotFound for an unknown id.
	SetAgentB(ctx context.Context, id TransferID, agentB string) error
}

// SpeechRequest asks for synthesized audio of Text in the given Format
// ("wav", "mp3" or "opus"). Voice is optional; providers pick a default.
type SpeechRequest struct {
	Text   string
	Voice  string
	Format string
}

type SpeechAudio struct {
	MIME string
	Data []byte
}

// SpeechSynthesizer defines how text becomes audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) (*SpeechAudio, error)
}

// RoomPublisher places a synthetic participant in a room.
type RoomPublisher interface {
	Join(ctx context.Context, roomName, identity string) (RoomConnection, error)
}

// RoomConnection is a live synthetic participant. PublishAudioFile replaces
// any previously published track with the audio at path.
type RoomConnection interface {
	PublishAudioFile(ctx context.Context, path string) error
	Disconnect()
}
