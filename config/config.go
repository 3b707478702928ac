// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Dash admission policies.
const (
	DashAlways   = "always"
	DashAirborne = "airborne"
	DashGrounded = "grounded"
)

// Attack modes.
const (
	AttackRay    = "ray"
	AttackHitbox = "hitbox"
)

// Sensor shapes.
const (
	SensorRay = "ray"
	SensorBox = "box"
)

// Map names.
const (
	MapArena = "arena"
	MapRogue = "rogue"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Sensor     SensorConfig     `yaml:"sensor"`
	Walk       WalkConfig       `yaml:"walk"`
	Jump       JumpConfig       `yaml:"jump"`
	Dash       DashConfig       `yaml:"dash"`
	Attack     AttackConfig     `yaml:"attack"`
	Brains     BrainsConfig     `yaml:"brains"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly three component vector.
type Vec3 [3]float64

// V converts to the float32 vector type used by the simulation.
func (v Vec3) V() mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds rigid-body integration parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`
	Gravity    Vec3    `yaml:"gravity"`
	Iterations int     `yaml:"iterations"` // Static collision resolution passes per step
	MaxSpeed   float64 `yaml:"max_speed"`  // Hard clamp on linear speed (0 = none)
	KillPlane  float64 `yaml:"kill_plane"` // Bodies below this height are respawned
}

// SensorConfig describes the downward proximity probe every character carries.
type SensorConfig struct {
	Shape       string  `yaml:"shape"`
	Origin      Vec3    `yaml:"origin"` // Offset from the body translation
	Direction   Vec3    `yaml:"direction"`
	MaxDistance float64 `yaml:"max_distance"`
	HalfExtents Vec3    `yaml:"half_extents"` // Box cast only
}

// WalkConfig holds the Walk basis defaults.
type WalkConfig struct {
	Speed          float64 `yaml:"speed"`
	SprintSpeed    float64 `yaml:"sprint_speed"`
	FloatingHeight float64 `yaml:"floating_height"`
	FloatingMargin float64 `yaml:"floating_margin"`
	SpringStrength float64 `yaml:"spring_strength"`
	SpringDamper   float64 `yaml:"spring_damper"`
	TurningAngVel  float64 `yaml:"turning_angvel"`
	AirborneGrace  float64 `yaml:"airborne_grace"` // Seconds without floor contact before airborne
	Up             Vec3    `yaml:"up"`
	Forward        Vec3    `yaml:"forward"`
}

// JumpConfig holds the Jump action defaults.
type JumpConfig struct {
	Velocity       float64 `yaml:"velocity"`
	TakeoffTimeout float64 `yaml:"takeoff_timeout"` // Seconds to leave the floor before the jump gives up
}

// DashConfig holds the Dash action defaults.
type DashConfig struct {
	Speed     float64 `yaml:"speed"`
	Duration  float64 `yaml:"duration"`
	Admission string  `yaml:"admission"`
}

// AttackConfig holds the Attack action defaults.
type AttackConfig struct {
	Mode              string  `yaml:"mode"`
	WindUp            float64 `yaml:"windup"`
	Backswing         float64 `yaml:"backswing"`
	Range             float64 `yaml:"range"`
	Power             int32   `yaml:"power"`
	HitboxHalfExtents Vec3    `yaml:"hitbox_half_extents"`
	HitboxForward     float64 `yaml:"hitbox_forward"`
	HitboxUp          float64 `yaml:"hitbox_up"`
	HitboxLifetime    float64 `yaml:"hitbox_lifetime"`
}

// BrainsConfig holds parameters for the built-in brains.
type BrainsConfig struct {
	WanderSpeed        float64      `yaml:"wander_speed"`
	WanderTurnInterval float64      `yaml:"wander_turn_interval"`
	WanderTurnAngle    float64      `yaml:"wander_turn_angle"`
	ChaseSpeed         float64      `yaml:"chase_speed"`
	ChaseRange         float64      `yaml:"chase_range"`
	ChaseAttackRange   float64      `yaml:"chase_attack_range"`
	Script             []ScriptStep `yaml:"script"`
}

// ScriptStep is one segment of a scripted brain's timeline.
// Steps are active while From <= t < To (seconds since spawn).
type ScriptStep struct {
	From     float64  `yaml:"from"`
	To       float64  `yaml:"to"`
	Velocity Vec3     `yaml:"velocity"`
	Facing   Vec3     `yaml:"facing"`
	Actions  []string `yaml:"actions"`
}

// WorldConfig holds map generation parameters.
type WorldConfig struct {
	Map         string  `yaml:"map"`
	Size        float64 `yaml:"size"`         // Side length of the square play area
	TileSize    float64 `yaml:"tile_size"`    // Rogue map terrain tile size
	NoiseScale  float64 `yaml:"noise_scale"`  // Rogue map noise frequency
	HeightScale float64 `yaml:"height_scale"` // Rogue map maximum tile height
}

// PopulationConfig holds body spawn counts and shared body parameters.
type PopulationConfig struct {
	Player      bool    `yaml:"player"`
	Wanderers   int     `yaml:"wanderers"`
	Jumpers     int     `yaml:"jumpers"`
	Chasers     int     `yaml:"chasers"`
	Scripted    int     `yaml:"scripted"`
	HalfExtents Vec3    `yaml:"half_extents"`
	Mass        float64 `yaml:"mass"`
}

// TelemetryConfig holds telemetry and logging parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks per perf rolling window
	LogEvents   bool    `yaml:"log_events"`   // Log every lifecycle event at debug level
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32      float32
	Tick      time.Duration
	Gravity   mgl32.Vec3
	Up        mgl32.Vec3
	Forward   mgl32.Vec3
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	}
	if c.Walk.AirborneGrace < 0 || c.Dash.Duration < 0 || c.Attack.WindUp < 0 ||
		c.Attack.Backswing < 0 || c.Attack.HitboxLifetime < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	}
	if c.Sensor.MaxDistance <= 0 {
		return fmt.Errorf("%w: sensor.max_distance must be positive", ErrInvalid)
	}
	if c.Jump.TakeoffTimeout <= 0 {
		return fmt.Errorf("%w: jump.takeoff_timeout must be positive", ErrInvalid)
	}
	axes := []struct {
		name string
		v    Vec3
	}{
		{"walk.up", c.Walk.Up},
		{"walk.forward", c.Walk.Forward},
		{"sensor.direction", c.Sensor.Direction},
	}
	for _, a := range axes {
		if a.v.V().Len() == 0 {
			return fmt.Errorf("%w: %s must be non-zero", ErrInvalid, a.name)
		}
	}
	switch c.Dash.Admission {
	case DashAlways, DashAirborne, DashGrounded:
	default:
		return fmt.Errorf("%w: unknown dash.admission %q", ErrInvalid, c.Dash.Admission)
	}
	switch c.Attack.Mode {
	case AttackRay, AttackHitbox:
	default:
		return fmt.Errorf("%w: unknown attack.mode %q", ErrInvalid, c.Attack.Mode)
	}
	switch c.Sensor.Shape {
	case SensorRay, SensorBox:
	default:
		return fmt.Errorf("%w: unknown sensor.shape %q", ErrInvalid, c.Sensor.Shape)
	}
	switch c.World.Map {
	case MapArena, MapRogue:
	default:
		return fmt.Errorf("%w: unknown world.map %q", ErrInvalid, c.World.Map)
	}
	if c.Population.Mass <= 0 {
		return fmt.Errorf("%w: population.mass must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	// Truncated to whole nanoseconds so timers count ticks the same way on every run.
	c.Derived.Tick = Seconds(c.Physics.DT)
	c.Derived.Gravity = c.Physics.Gravity.V()
	c.Derived.Up = c.Walk.Up.V().Normalize()
	c.Derived.Forward = c.Walk.Forward.V().Normalize()
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// Seconds converts a float seconds value into a duration, truncating sub-nanosecond parts.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
