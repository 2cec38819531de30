package evergreen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the scene engine and the gesture recognizer.
// Start from DefaultConfig and override fields, or load a YAML file with
// LoadConfig.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Gesture GestureConfig `yaml:"gesture"`

	// Seed feeds the engine's random source. Zero picks a time-based seed.
	Seed uint64 `yaml:"seed"`
	// Debug enables per-frame stats logging at debug level.
	Debug bool `yaml:"debug"`
}

// SceneConfig tunes the particle scene.
type SceneConfig struct {
	TreeHeight       float64 `yaml:"tree_height"`
	TreeBaseRadius   float64 `yaml:"tree_base_radius"`
	ExplodeRadius    float64 `yaml:"explode_radius"`
	PhotoOrbitRadius float64 `yaml:"photo_orbit_radius"`

	GoldCount  int `yaml:"gold_count"`
	RedCount   int `yaml:"red_count"`
	GiftCount  int `yaml:"gift_count"`
	SnowCount  int `yaml:"snow_count"`
	PhotoCount int `yaml:"photo_count"`

	// MorphSpeed is the per-frame smoothing factor toward the target shape.
	MorphSpeed float64 `yaml:"morph_speed"`
	// TransitionDuration is how long a state change takes to settle.
	TransitionDuration time.Duration `yaml:"transition_duration"`
	FireworkCapacity   int           `yaml:"firework_capacity"`
	// ResizeDebounce is the quiet period after the last resize before the
	// new viewport is applied.
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	// HandRotationRange maps hand x in [0,1] to a rotation of ±range/2 radians.
	HandRotationRange float64 `yaml:"hand_rotation_range"`
}

// GestureConfig tunes the V-gesture recognizer.
type GestureConfig struct {
	TrailLength   int           `yaml:"trail_length"`
	MinPoints     int           `yaml:"min_points"`
	YMinDrop      float64       `yaml:"y_min_drop"`
	YMinRise      float64       `yaml:"y_min_rise"`
	XMinMovement  float64       `yaml:"x_min_movement"`
	MaxTimeWindow time.Duration `yaml:"max_time_window"`
	// Cooldown is the minimum interval between two classification attempts.
	Cooldown        time.Duration `yaml:"cooldown"`
	SparkleCount    int           `yaml:"sparkle_count"`
	SmoothingWindow int           `yaml:"smoothing_window"`
	Threshold       float64       `yaml:"threshold"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
	OutroDuration   time.Duration `yaml:"outro_duration"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Scene: SceneConfig{
			TreeHeight:         70,
			TreeBaseRadius:     35,
			ExplodeRadius:      60,
			PhotoOrbitRadius:   45,
			GoldCount:          2000,
			RedCount:           300,
			GiftCount:          150,
			SnowCount:          1500,
			PhotoCount:         5,
			MorphSpeed:         0.08,
			TransitionDuration: 800 * time.Millisecond,
			FireworkCapacity:   500,
			ResizeDebounce:     250 * time.Millisecond,
			HandRotationRange:  4.0,
		},
		Gesture: GestureConfig{
			TrailLength:     40,
			MinPoints:       15,
			YMinDrop:        0.08,
			YMinRise:        0.06,
			XMinMovement:    0.06,
			MaxTimeWindow:   2 * time.Second,
			Cooldown:        150 * time.Millisecond,
			SparkleCount:    80,
			SmoothingWindow: 3,
			Threshold:       0.7,
			CompletionDelay: 800 * time.Millisecond,
			OutroDuration:   1500 * time.Millisecond,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// default values. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("evergreen: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file. A missing file yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		Logger().Warn("config file not found, using defaults", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("evergreen: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("evergreen: load config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("evergreen: marshal config: %w", err)
	}
	return out, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	s, g := c.Scene, c.Gesture
	switch {
	case s.TreeHeight <= 0:
		return fmt.Errorf("evergreen: scene.tree_height must be positive, got %v", s.TreeHeight)
	case s.TreeBaseRadius <= 0:
		return fmt.Errorf("evergreen: scene.tree_base_radius must be positive, got %v", s.TreeBaseRadius)
	case s.ExplodeRadius <= 0:
		return fmt.Errorf("evergreen: scene.explode_radius must be positive, got %v", s.ExplodeRadius)
	case s.PhotoOrbitRadius <= 0:
		return fmt.Errorf("evergreen: scene.photo_orbit_radius must be positive, got %v", s.PhotoOrbitRadius)
	case s.GoldCount < 0 || s.RedCount < 0 || s.GiftCount < 0 || s.SnowCount < 0 || s.PhotoCount < 0:
		return errors.New("evergreen: scene particle counts must not be negative")
	case s.MorphSpeed <= 0 || s.MorphSpeed > 1:
		return fmt.Errorf("evergreen: scene.morph_speed must be in (0,1], got %v", s.MorphSpeed)
	case s.TransitionDuration <= 0:
		return fmt.Errorf("evergreen: scene.transition_duration must be positive, got %v", s.TransitionDuration)
	case s.FireworkCapacity <= 0:
		return fmt.Errorf("evergreen: scene.firework_capacity must be positive, got %d", s.FireworkCapacity)
	case s.ResizeDebounce < 0:
		return fmt.Errorf("evergreen: scene.resize_debounce must not be negative, got %v", s.ResizeDebounce)
	case g.TrailLength <= 0:
		return fmt.Errorf("evergreen: gesture.trail_length must be positive, got %d", g.TrailLength)
	case g.MinPoints <= 0 || g.MinPoints > g.TrailLength:
		return fmt.Errorf("evergreen: gesture.min_points must be in [1,%d], got %d", g.TrailLength, g.MinPoints)
	case g.MaxTimeWindow <= 0:
		return fmt.Errorf("evergreen: gesture.max_time_window must be positive, got %v", g.MaxTimeWindow)
	case g.Cooldown < 0 || g.CompletionDelay < 0 || g.OutroDuration < 0:
		return errors.New("evergreen: gesture durations must not be negative")
	case g.SmoothingWindow < 0:
		return fmt.Errorf("evergreen: gesture.smoothing_window must not be negative, got %d", g.SmoothingWindow)
	case g.SparkleCount <= 0:
		return fmt.Errorf("evergreen: gesture.sparkle_count must be positive, got %d", g.SparkleCount)
	case g.Threshold <= 0 || g.Threshold > 1:
		return fmt.Errorf("evergreen: gesture.threshold must be in (0,1], got %v", g.Threshold)
	}
	return nil
}
