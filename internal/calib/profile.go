package calib

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AxisRange is the recorded usable travel of one axis.
type AxisRange struct {
	Min int16 `yaml:"min"`
	Max int16 `yaml:"max"`
}

// Profile is the calibration data for one device model.
type Profile struct {
	Model   string      `yaml:"model"`
	Axes    []AxisRange `yaml:"axes"`
	Buttons []int       `yaml:"buttons"`
}

// NormalizeAxis maps a raw axis sample into [-1, 1] using the recorded range.
// Axes outside the profile, or with degenerate ranges, normalize to 0.
func (p Profile) NormalizeAxis(axis int, raw int16) float64 {
	if axis < 0 || axis >= len(p.Axes) {
		return 0
	}
	r := p.Axes[axis]
	span := float64(r.Max) - float64(r.Min)
	if span <= 0 {
		return 0
	}
	v := (float64(raw)-float64(r.Min))/span*2 - 1
	return math.Max(-1, math.Min(1, v))
}

// ApplyDeadzone zeroes values within the threshold around center.
func ApplyDeadzone(v, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Store persists calibration profiles keyed by device model in a YAML file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all saved profiles. A missing file yields an empty map.
func (s *Store) Load() (map[string]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Profile{}, nil
		}
		return nil, fmt.Errorf("calib: reading %s: %w", s.path, err)
	}

	profiles := map[string]Profile{}
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("calib: parsing %s: %w", s.path, err)
	}
	return profiles, nil
}

// Save writes or replaces the profile for its model. The file is rewritten
// atomically via a temp file so an interrupted save cannot corrupt it.
func (s *Store) Save(p Profile) error {
	profiles, err := s.Load()
	if err != nil {
		return err
	}
	profiles[p.Model] = p

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("calib: encoding profiles: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("calib: creating %s: %w", dir, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("calib: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("calib: replacing %s: %w", s.path, err)
	}
	return nil
}
