package domain

import "time"

type TransferID string

// UnknownValue marks a caller-input gap: the initiation endpoint accepts
// transfers without a room or agent identity and the record keeps the gap
// visible for audit instead of inventing a default.
const UnknownValue = "unknown"

type Timestamp = time.Time

// Room is a control-plane view of a live room, queried on demand and never
// cached by the core.
type Room struct {
	Name            string
	SID             string
	NumParticipants uint32
	CreationTime    time.Time
}

// Participant is identity + membership as reported by the provider.
type Participant struct {
	Identity string
	Name     string
	Metadata string
}
