package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Settings holds the persisted interaction tuning. There is exactly one
// row; the zero id trick keeps it that way.
type Settings struct {
	CameraID        int     `json:"camera_id"`
	PinchThreshold  float64 `json:"pinch_threshold"`
	NearRadius      float64 `json:"near_radius"`
	FarRadius       float64 `json:"far_radius"`
	RadiusSmoothing float64 `json:"radius_smoothing"`
	OrbitSmoothing  float64 `json:"orbit_smoothing"`
	UpdatedAt       time.Time
}

// DefaultSettings returns the out-of-the-box tuning.
func DefaultSettings() Settings {
	return Settings{
		CameraID:        0,
		PinchThreshold:  0.08,
		NearRadius:      12,
		FarRadius:       40,
		RadiusSmoothing: 0.03,
		OrbitSmoothing:  0.1,
	}
}

// Validate rejects tuning values that would break the interaction.
func (s Settings) Validate() error {
	if s.PinchThreshold <= 0 || s.PinchThreshold >= 1 {
		return errors.New("pinch threshold must be in (0, 1)")
	}
	if s.NearRadius <= 0 || s.FarRadius <= s.NearRadius {
		return errors.New("far radius must exceed near radius, both positive")
	}
	if s.RadiusSmoothing <= 0 || s.RadiusSmoothing > 1 {
		return errors.New("radius smoothing must be in (0, 1]")
	}
	if s.OrbitSmoothing <= 0 || s.OrbitSmoothing > 1 {
		return errors.New("orbit smoothing must be in (0, 1]")
	}
	if s.CameraID < 0 {
		return errors.New("camera id must not be negative")
	}
	return nil
}

// SettingsRepository provides access to the tuning row.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// seedDefaults inserts the default tuning row if none exists.
func (r *SettingsRepository) seedDefaults() error {
	def := DefaultSettings()
	_, err := r.db.Exec(
		`INSERT OR IGNORE INTO settings
		 (id, camera_id, pinch_threshold, near_radius, far_radius, radius_smoothing, orbit_smoothing, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		def.CameraID, def.PinchThreshold, def.NearRadius, def.FarRadius,
		def.RadiusSmoothing, def.OrbitSmoothing, time.Now(),
	)
	return err
}

// Get retrieves the current tuning.
func (r *SettingsRepository) Get() (*Settings, error) {
	s := &Settings{}

	err := r.db.QueryRow(
		`SELECT camera_id, pinch_threshold, near_radius, far_radius, radius_smoothing, orbit_smoothing, updated_at
		 FROM settings WHERE id = 1`,
	).Scan(&s.CameraID, &s.PinchThreshold, &s.NearRadius, &s.FarRadius,
		&s.RadiusSmoothing, &s.OrbitSmoothing, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

// Update replaces the tuning row after validating it.
func (r *SettingsRepository) Update(s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE settings
		 SET camera_id = ?, pinch_threshold = ?, near_radius = ?, far_radius = ?,
		     radius_smoothing = ?, orbit_smoothing = ?, updated_at = ?
		 WHERE id = 1`,
		s.CameraID, s.PinchThreshold, s.NearRadius, s.FarRadius,
		s.RadiusSmoothing, s.OrbitSmoothing, s.UpdatedAt,
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
