// Package profile persists calibration profiles: per-pedal control points,
// dead zones, and axis assignments, plus the handful of runtime settings
// the tool needs. Profiles are YAML files handled through viper.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/spf13/viper"

	"pedalshaper/internal/curve"
	"pedalshaper/internal/pedals"
)

// PedalProfile is the persisted calibration for a single pedal. RawMin and
// RawMax describe the range the hardware reports; load-cell pedals report
// 0..32767 rather than the full int16 range.
type PedalProfile struct {
	Points   []curve.ControlPoint `mapstructure:"points"`
	DeadZone curve.DeadZone       `mapstructure:"deadzone"`
	Axis     int32                `mapstructure:"axis"`
	Invert   bool                 `mapstructure:"invert"`
	RawMin   int16                `mapstructure:"rawmin"`
	RawMax   int16                `mapstructure:"rawmax"`
}

// Profile is the full on-disk configuration.
type Profile struct {
	Listen   string       `mapstructure:"listen"`
	Rate     int          `mapstructure:"rate"`
	Simulate bool         `mapstructure:"simulate"`
	Throttle PedalProfile `mapstructure:"throttle"`
	Brake    PedalProfile `mapstructure:"brake"`
	Clutch   PedalProfile `mapstructure:"clutch"`
}

// Store reads and writes one profile file.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewStore returns a store bound to the given file path.
func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return &Store{v: v, path: path}
}

// Path returns the profile file path.
func (s *Store) Path() string {
	return s.path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8090")
	v.SetDefault("rate", 60)
	v.SetDefault("simulate", false)
	for i, pedal := range pedals.Pedals() {
		v.SetDefault(pedal+".axis", i)
		v.SetDefault(pedal+".invert", false)
		v.SetDefault(pedal+".rawmin", -32768)
		v.SetDefault(pedal+".rawmax", 32767)
	}
}

// Load reads the profile, filling defaults for anything unset. A missing
// file is not an error: a fresh installation starts from the identity
// profile.
func (s *Store) Load() (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	setDefaults(s.v)
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("reading profile %s: %w", s.path, err)
		}
	}

	var p Profile
	if err := s.v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", s.path, err)
	}
	normalize(&p)
	return &p, nil
}

// Save writes the profile back to disk.
func (s *Store) Save(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set("listen", p.Listen)
	s.v.Set("rate", p.Rate)
	s.v.Set("simulate", p.Simulate)
	for _, e := range []struct {
		name string
		pp   PedalProfile
	}{
		{pedals.PedalThrottle, p.Throttle},
		{pedals.PedalBrake, p.Brake},
		{pedals.PedalClutch, p.Clutch},
	} {
		s.v.Set(e.name+".points", pointMaps(e.pp.Points))
		s.v.Set(e.name+".deadzone.min", e.pp.DeadZone.Min)
		s.v.Set(e.name+".deadzone.max", e.pp.DeadZone.Max)
		s.v.Set(e.name+".axis", e.pp.Axis)
		s.v.Set(e.name+".invert", e.pp.Invert)
		s.v.Set(e.name+".rawmin", e.pp.RawMin)
		s.v.Set(e.name+".rawmax", e.pp.RawMax)
	}

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing profile %s: %w", s.path, err)
	}
	return nil
}

// pointMaps flattens control points for viper, which marshals []map values
// more predictably than arbitrary structs.
func pointMaps(pts []curve.ControlPoint) []map[string]float64 {
	out := make([]map[string]float64, len(pts))
	for i, p := range pts {
		out[i] = map[string]float64{"x": p.X, "y": p.Y}
	}
	return out
}

// normalize fills identity points into any pedal with no stored curve and
// the full int16 range into any pedal with a degenerate raw range.
func normalize(p *Profile) {
	for _, pp := range []*PedalProfile{&p.Throttle, &p.Brake, &p.Clutch} {
		if len(pp.Points) == 0 {
			pp.Points = []curve.ControlPoint{{X: 0, Y: 0}, {X: 100, Y: 100}}
		}
		if pp.RawMin == pp.RawMax {
			pp.RawMin, pp.RawMax = -32768, 32767
		}
	}
}

// Apply pushes a loaded profile into the three curve models.
func Apply(p *Profile, set *pedals.CurveSet) {
	for _, e := range []struct {
		pp    PedalProfile
		model *curve.Model
	}{
		{p.Throttle, set.Throttle},
		{p.Brake, set.Brake},
		{p.Clutch, set.Clutch},
	} {
		e.model.SetPoints(e.pp.Points)
		e.model.SetDeadZones(e.pp.DeadZone.Min, e.pp.DeadZone.Max)
	}
}

// Snapshot pulls the current curve models back into the profile before a
// save. Axis assignments and runtime settings are left as loaded.
func Snapshot(p *Profile, set *pedals.CurveSet) {
	for _, e := range []struct {
		pp    *PedalProfile
		model *curve.Model
	}{
		{&p.Throttle, set.Throttle},
		{&p.Brake, set.Brake},
		{&p.Clutch, set.Clutch},
	} {
		e.pp.Points = e.model.Points()
		e.pp.DeadZone = e.model.DeadZones()
	}
}

// AxisMap extracts the pedal-to-axis assignment from a profile.
func (p *Profile) AxisMap() pedals.AxisMap {
	return pedals.AxisMap{
		Throttle: axisConfig(p.Throttle),
		Brake:    axisConfig(p.Brake),
		Clutch:   axisConfig(p.Clutch),
	}
}

func axisConfig(pp PedalProfile) pedals.AxisConfig {
	return pedals.AxisConfig{
		Index:  pp.Axis,
		Invert: pp.Invert,
		RawMin: pp.RawMin,
		RawMax: pp.RawMax,
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
