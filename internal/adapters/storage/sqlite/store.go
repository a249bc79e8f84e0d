package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS transfer_summaries (
	id TEXT PRIMARY KEY,
	room_name TEXT NOT NULL,
	agent_a TEXT NOT NULL,
	agent_b TEXT,
	summary TEXT NOT NULL,
	call_context TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transfer_summaries_room
	ON transfer_summaries (room_name);
`

// Store is the durable domain.TransferStore backed by SQLite. Designed for
// low write volume; the pool mostly serves concurrent readers.
type Store struct {
	pool *sqlitex.Pool
}

// Open creates the database file if needed and applies the schema. The
// parent directory must exist.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open %q: %w", path, err)
	}

	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("sqlite store: take connection: %w", err)
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sqlite store: apply schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	return s.pool.Close()
}

func (s *Store) Insert(ctx context.Context, rec *domain.TransferRecord) (domain.TransferID, error) {
	if rec.ID == "" {
		rec.ID = domain.TransferID(uuid.NewString())
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", fmt.Errorf("sqlite store: insert: %w", err)
	}
	defer s.pool.Put(conn)

	var agentB any
	if rec.AgentB != nil {
		agentB = *rec.AgentB
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO transfer_summaries
			(id, room_name, agent_a, agent_b, summary, call_context, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				string(rec.ID),
				rec.RoomName,
				rec.AgentA,
				agentB,
				rec.Summary,
				rec.CallContext,
				rec.CreatedAt.UnixNano(),
			},
		})
	if err != nil {
		return "", fmt.Errorf("sqlite store: insert %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

func (s *Store) Get(ctx context.Context, id domain.TransferID) (*domain.TransferRecord, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: get: %w", err)
	}
	defer s.pool.Put(conn)

	var rec *domain.TransferRecord
	err = sqlitex.Execute(conn,
		`SELECT id, room_name, agent_a, agent_b, summary, call_context, created_at
			FROM transfer_summaries WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{string(id)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rec = scanRecord(stmt)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("sqlite store: get %s: %w", id, err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List orders by created_at with rowid as tiebreaker, so the
// most-recent-first order is a stable total order under any limit.
func (s *Store) List(ctx context.Context, roomName string, limit int) ([]*domain.TransferRecord, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: list: %w", err)
	}
	defer s.pool.Put(conn)

	query := `SELECT id, room_name, agent_a, agent_b, summary, call_context, created_at
		FROM transfer_summaries`
	args := []any{}
	if roomName != "" {
		query += ` WHERE room_name = ?`
		args = append(args, roomName)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	var out []*domain.TransferRecord
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, scanRecord(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite store: list: %w", err)
	}
	return out, nil
}

func (s *Store) SetAgentB(ctx context.Context, id domain.TransferID, agentB string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite store: set agent_b: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE transfer_summaries SET agent_b = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{agentB, string(id)},
		})
	if err != nil {
		return fmt.Errorf("sqlite store: set agent_b on %s: %w", id, err)
	}
	if conn.Changes() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRecord(stmt *sqlite.Stmt) *domain.TransferRecord {
	rec := &domain.TransferRecord{
		ID:          domain.TransferID(stmt.ColumnText(0)),
		RoomName:    stmt.ColumnText(1),
		AgentA:      stmt.ColumnText(2),
		Summary:     stmt.ColumnText(4),
		CallContext: stmt.ColumnText(5),
		CreatedAt:   time.Unix(0, stmt.ColumnInt64(6)).UTC(),
	}
	if stmt.ColumnType(3) != sqlite.TypeNull {
		agentB := stmt.ColumnText(3)
		rec.AgentB = &agentB
	}
	return rec
}
