package memory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists session histories in Postgres.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore connects a pool and returns a Postgres-backed Store.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// EnsureSchema creates the backing table when it does not exist yet.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := ps.DB.Exec(ctx, `
                CREATE TABLE IF NOT EXISTS session_messages (
                        id BIGSERIAL PRIMARY KEY,
                        session_id TEXT NOT NULL,
                        role TEXT NOT NULL,
                        content TEXT NOT NULL,
                        at TIMESTAMPTZ NOT NULL DEFAULT now()
                );
                CREATE INDEX IF NOT EXISTS session_messages_session_idx
                        ON session_messages (session_id, at);
        `)
	return err
}

func (ps *PostgresStore) Get(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}
	rows, err := ps.DB.Query(ctx, `
                SELECT role, content, at FROM (
                        SELECT role, content, at FROM session_messages
                        WHERE session_id = $1
                        ORDER BY at DESC, id DESC
                        LIMIT $2
                ) recent ORDER BY at ASC;
        `, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.Role, &m.Content, &m.At); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (ps *PostgresStore) Append(ctx context.Context, sessionID string, msg Message) error {
	// Per-session advisory lock keeps concurrent appends for one session
	// from interleaving.
	tx, err := ps.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
                INSERT INTO session_messages (session_id, role, content, at)
                VALUES ($1, $2, $3, $4);
        `, sessionID, msg.Role, msg.Content, msg.At); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (ps *PostgresStore) Reset(ctx context.Context, sessionID string) error {
	_, err := ps.DB.Exec(ctx, `DELETE FROM session_messages WHERE session_id = $1;`, sessionID)
	return err
}

// Close releases the pool.
func (ps *PostgresStore) Close() {
	if ps.DB != nil {
		ps.DB.Close()
	}
}

var _ Store = (*PostgresStore)(nil)
