package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lix/internal/shared"
)

// SQLiteStore is a [SessionStore] persisting records in the sessions table.
//
// The table is created by the embedded migrations (see [shared.OpenDatabase]).
// Callers own the database handle.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a [SQLiteStore] over an open, migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Put inserts or overwrites the record keyed by its member ID.
func (s *SQLiteStore) Put(record TokenRecord) error {
	if record.MemberID == "" {
		return fmt.Errorf("%w: record has no member ID", shared.ErrInvalidInput)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	var expiresAt sql.NullTime
	if !record.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: record.ExpiresAt, Valid: true}
	}

	query := `
		INSERT INTO sessions (member_id, access_token, author_urn, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_id) DO UPDATE SET
			access_token = excluded.access_token,
			author_urn = excluded.author_urn,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`

	_, err := s.db.Exec(query, record.MemberID, record.AccessToken, record.AuthorURN, record.CreatedAt, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a member's record.
func (s *SQLiteStore) Get(memberID string) (TokenRecord, error) {
	query := `
		SELECT member_id, access_token, author_urn, created_at, expires_at
		FROM sessions
		WHERE member_id = ?
	`

	var (
		record    TokenRecord
		expiresAt sql.NullTime
	)

	err := s.db.QueryRow(query, memberID).Scan(&record.MemberID, &record.AccessToken, &record.AuthorURN, &record.CreatedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return TokenRecord{}, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, memberID)
	}
	if err != nil {
		return TokenRecord{}, fmt.Errorf("failed to query session: %w", err)
	}

	if expiresAt.Valid {
		record.ExpiresAt = expiresAt.Time
	}

	return record, nil
}

// Delete removes a member's record.
func (s *SQLiteStore) Delete(memberID string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE member_id = ?", memberID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Count reports how many members currently hold records.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// List returns every stored record, ordered by member ID.
func (s *SQLiteStore) List() ([]TokenRecord, error) {
	query := `
		SELECT member_id, access_token, author_urn, created_at, expires_at
		FROM sessions
		ORDER BY member_id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []TokenRecord
	for rows.Next() {
		var (
			record    TokenRecord
			expiresAt sql.NullTime
		)
		if err := rows.Scan(&record.MemberID, &record.AccessToken, &record.AuthorURN, &record.CreatedAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if expiresAt.Valid {
			record.ExpiresAt = expiresAt.Time
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return records, nil
}
