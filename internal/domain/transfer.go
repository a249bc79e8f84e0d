package domain

// TransferRecord is one warm-transfer attempt. Records are append-only: the
// only mutation after insert is setting AgentB at completion time.
type TransferRecord struct {
	ID          TransferID
	RoomName    string
	AgentA      string
	AgentB      *string // nil until completion names the incoming agent
	Summary     string
	CallContext string
	CreatedAt   Timestamp
}
