package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Settings table - a single row of interaction tuning values
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			camera_id INTEGER NOT NULL DEFAULT 0,
			pinch_threshold REAL NOT NULL DEFAULT 0.08,
			near_radius REAL NOT NULL DEFAULT 12,
			far_radius REAL NOT NULL DEFAULT 40,
			radius_smoothing REAL NOT NULL DEFAULT 0.03,
			orbit_smoothing REAL NOT NULL DEFAULT 0.1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sessions table - one row per run of the app
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			input_mode TEXT NOT NULL DEFAULT '',
			pinch_count INTEGER NOT NULL DEFAULT 0,
			probe_count INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
