package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "blackhole-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "blackhole-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"settings", "sessions"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}
}

func TestSettings_SeededWithDefaults(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Settings().Get()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}

	def := DefaultSettings()
	if got.PinchThreshold != def.PinchThreshold {
		t.Errorf("pinch threshold = %f, want %f", got.PinchThreshold, def.PinchThreshold)
	}
	if got.NearRadius != def.NearRadius || got.FarRadius != def.FarRadius {
		t.Errorf("radii = %f/%f, want %f/%f", got.NearRadius, got.FarRadius, def.NearRadius, def.FarRadius)
	}
}

func TestSettings_UpdateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := &Settings{
		CameraID:        1,
		PinchThreshold:  0.12,
		NearRadius:      10,
		FarRadius:       50,
		RadiusSmoothing: 0.05,
		OrbitSmoothing:  0.2,
	}
	if err := s.Settings().Update(want); err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}

	got, err := s.Settings().Get()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got.PinchThreshold != 0.12 || got.CameraID != 1 || got.FarRadius != 50 {
		t.Errorf("settings did not round-trip: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("updated_at should be stamped on update")
	}
}

func TestSettings_UpdateRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero threshold", func(v *Settings) { v.PinchThreshold = 0 }},
		{"threshold of one", func(v *Settings) { v.PinchThreshold = 1 }},
		{"near beyond far", func(v *Settings) { v.NearRadius = 60 }},
		{"negative camera", func(v *Settings) { v.CameraID = -1 }},
		{"zero smoothing", func(v *Settings) { v.OrbitSmoothing = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultSettings()
			tt.mutate(&v)
			if err := s.Settings().Update(&v); err == nil {
				t.Error("update should reject invalid settings")
			}
		})
	}

	// The stored row must be untouched.
	got, err := s.Settings().Get()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got.PinchThreshold != DefaultSettings().PinchThreshold {
		t.Errorf("rejected updates must not modify the row, got threshold %f", got.PinchThreshold)
	}
}

func TestSessions_CreateAndFinish(t *testing.T) {
	s := newTestStore(t)

	sess := &Session{ID: uuid.New().String()}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	got, err := s.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if got.EndedAt.Valid {
		t.Error("a fresh session should not have an end time")
	}

	if err := s.Sessions().Finish(sess.ID, "hand tracking", 7, 7); err != nil {
		t.Fatalf("failed to finish session: %v", err)
	}

	got, err = s.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if !got.EndedAt.Valid {
		t.Error("finished session should have an end time")
	}
	if got.PinchCount != 7 || got.ProbeCount != 7 {
		t.Errorf("counters = %d/%d, want 7/7", got.PinchCount, got.ProbeCount)
	}
	if got.InputMode != "hand tracking" {
		t.Errorf("input mode = %q, want %q", got.InputMode, "hand tracking")
	}
}

func TestSessions_FinishUnknownID(t *testing.T) {
	s := newTestStore(t)

	err := s.Sessions().Finish(uuid.New().String(), "mouse", 0, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("finish of unknown session = %v, want ErrNotFound", err)
	}
}

func TestSessions_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first := &Session{ID: uuid.New().String()}
	second := &Session{ID: uuid.New().String()}
	if err := s.Sessions().Create(first); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := s.Sessions().Create(second); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	sessions, err := s.Sessions().List(10)
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].StartedAt.Before(sessions[1].StartedAt) {
		t.Error("sessions should be ordered newest first")
	}
}
