package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session records one run of the app: which input mode it settled on and
// how much pinching actually happened.
type Session struct {
	ID         string
	InputMode  string
	PinchCount int
	ProbeCount int
	StartedAt  time.Time
	EndedAt    sql.NullTime
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session row. StartedAt is stamped here.
func (r *SessionRepository) Create(sess *Session) error {
	sess.StartedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, input_mode, pinch_count, probe_count, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.InputMode, sess.PinchCount, sess.ProbeCount, sess.StartedAt,
	)
	return err
}

// Finish stamps the end time and stores the final counters.
func (r *SessionRepository) Finish(id, inputMode string, pinchCount, probeCount int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET input_mode = ?, pinch_count = ?, probe_count = ?, ended_at = ?
		 WHERE id = ?`,
		inputMode, pinchCount, probeCount, time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, input_mode, pinch_count, probe_count, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.InputMode, &sess.PinchCount, &sess.ProbeCount, &sess.StartedAt, &sess.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// List retrieves the most recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, input_mode, pinch_count, probe_count, started_at, ended_at
		 FROM sessions ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}

		err := rows.Scan(&sess.ID, &sess.InputMode, &sess.PinchCount, &sess.ProbeCount, &sess.StartedAt, &sess.EndedAt)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
