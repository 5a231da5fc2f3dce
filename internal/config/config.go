package config

import (
	"fmt"
	"math"
	"os"

	"knightfall/internal/action"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Camera  CameraConfig  `yaml:"camera"`
	World   WorldConfig   `yaml:"world"`
	Audio   AudioConfig   `yaml:"audio"`
	Session SessionConfig `yaml:"session"`
}

type DisplayConfig struct {
	ScreenWidth   int     `yaml:"screen_width"`
	ScreenHeight  int     `yaml:"screen_height"`
	WindowTitle   string  `yaml:"window_title"`
	Resizable     bool    `yaml:"resizable"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"` // top-down view scale
	TPS           int     `yaml:"tps"`
	Debug         bool    `yaml:"debug" env:"KNIGHTFALL_DEBUG"`
}

type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
}

// ClipConfig describes one action clip.
type ClipConfig struct {
	Duration float64 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
}

type PlayerConfig struct {
	MaxHealth         float64               `yaml:"max_health"`
	Radius            float64               `yaml:"radius"`
	MoveSpeed         float64               `yaml:"move_speed"`
	JumpVelocity      float64               `yaml:"jump_velocity"`
	RotationSpeed     float64               `yaml:"rotation_speed"`
	MaxMana           float64               `yaml:"max_mana"`
	AttackManaCost    float64               `yaml:"attack_mana_cost"`
	ManaRegenRate     float64               `yaml:"mana_regen_rate"`
	ManaRegenCooldown float64               `yaml:"mana_regen_cooldown"`
	AttackDamage      float64               `yaml:"attack_damage"`
	AttackRange       float64               `yaml:"attack_range"`
	AttackAngleDeg    float64               `yaml:"attack_angle_deg"` // full cone
	AttackCooldown    float64               `yaml:"attack_cooldown"`
	Spawn             SpawnConfig           `yaml:"spawn"`
	Clips             map[string]ClipConfig `yaml:"clips"`
}

type EnemyConfig struct {
	MaxHealth      float64               `yaml:"max_health"`
	Radius         float64               `yaml:"radius"`
	MovementSpeed  float64               `yaml:"movement_speed"`
	SightRange     float64               `yaml:"sight_range"`
	AttackRange    float64               `yaml:"attack_range"`
	AttackDamage   float64               `yaml:"attack_damage"`
	AttackAngleDeg float64               `yaml:"attack_angle_deg"` // full cone
	AttackCooldown float64               `yaml:"attack_cooldown"`
	AttackWindUp   float64               `yaml:"attack_wind_up"`
	Decider        string                `yaml:"decider" env:"KNIGHTFALL_DECIDER"` // rule or script
	Script         string                `yaml:"script" env:"KNIGHTFALL_SCRIPT"`
	Spawns         []SpawnConfig         `yaml:"spawns"`
	Clips          map[string]ClipConfig `yaml:"clips"`
}

// SpawnConfig is a start position in world units with a facing in degrees.
type SpawnConfig struct {
	Position [3]float64 `yaml:"position"`
	YawDeg   float64    `yaml:"yaw_deg"`
}

type CameraConfig struct {
	Distance          float64 `yaml:"distance"`
	Height            float64 `yaml:"height"`
	Lag               float64 `yaml:"lag"`
	MinPitchDeg       float64 `yaml:"min_pitch_deg"`
	MaxPitchDeg       float64 `yaml:"max_pitch_deg"`
	InitialPitchDeg   float64 `yaml:"initial_pitch_deg"`
	BaseRotationSpeed float64 `yaml:"base_rotation_speed"`
	LookAtHeight      float64 `yaml:"look_at_height"`
	Sensitivity       float64 `yaml:"sensitivity" env:"KNIGHTFALL_SENSITIVITY"`
}

type WorldConfig struct {
	GroundSize  float64 `yaml:"ground_size"`
	TreeCount   int     `yaml:"tree_count"`
	TreeRadius  float64 `yaml:"tree_radius"`
	ClearRadius float64 `yaml:"clear_radius"`
}

type AudioConfig struct {
	SampleRate  int     `yaml:"sample_rate"`
	MusicVolume float64 `yaml:"music_volume" env:"KNIGHTFALL_MUSIC_VOLUME"`
	SFXVolume   float64 `yaml:"sfx_volume" env:"KNIGHTFALL_SFX_VOLUME"`
	Muted       bool    `yaml:"muted" env:"KNIGHTFALL_MUTE"`
}

type SessionConfig struct {
	Seed int64 `yaml:"seed" env:"KNIGHTFALL_SEED"`
}

// Default returns the built-in tuning.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:   1024,
			ScreenHeight:  768,
			WindowTitle:   "Knightfall",
			Resizable:     true,
			PixelsPerUnit: 14,
			TPS:           60,
		},
		Physics: PhysicsConfig{Gravity: -18},
		Player: PlayerConfig{
			MaxHealth:         100,
			Radius:            0.4,
			MoveSpeed:         5,
			JumpVelocity:      7,
			RotationSpeed:     10,
			MaxMana:           50,
			AttackManaCost:    10,
			ManaRegenRate:     5,
			ManaRegenCooldown: 1.5,
			AttackDamage:      15,
			AttackRange:       1.8,
			AttackAngleDeg:    72,
			AttackCooldown:    0.8,
			Spawn:             SpawnConfig{Position: [3]float64{0, 0, 5}},
			Clips: map[string]ClipConfig{
				"idle":   {Duration: 2.0, Loop: true},
				"walk":   {Duration: 1.0, Loop: true},
				"attack": {Duration: 0.9},
				"jump":   {Duration: 0.8},
				"defend": {Duration: 1.0, Loop: true},
				"death":  {Duration: 1.2},
			},
		},
		Enemy: EnemyConfig{
			MaxHealth:      50,
			Radius:         0.5,
			MovementSpeed:  1.5,
			SightRange:     20,
			AttackRange:    2.0,
			AttackDamage:   10,
			AttackAngleDeg: 180,
			AttackCooldown: 2.0,
			AttackWindUp:   0.5,
			Decider:        "rule",
			Spawns:         []SpawnConfig{{Position: [3]float64{5, 0, 0}}},
			Clips: map[string]ClipConfig{
				"idle":   {Duration: 2.0, Loop: true},
				"walk":   {Duration: 1.0, Loop: true},
				"attack": {Duration: 1.0},
				"death":  {Duration: 1.5},
			},
		},
		Camera: CameraConfig{
			Distance:          6,
			Height:            1.8,
			Lag:               0.1,
			MinPitchDeg:       -60,
			MaxPitchDeg:       50,
			InitialPitchDeg:   30,
			BaseRotationSpeed: 0.005,
			LookAtHeight:      1.26,
			Sensitivity:       1,
		},
		World: WorldConfig{
			GroundSize:  50,
			TreeCount:   30,
			TreeRadius:  0.8,
			ClearRadius: 5,
		},
		Audio: AudioConfig{
			SampleRate:  44100,
			MusicVolume: 0.3,
			SFXVolume:   0.6,
		},
		Session: SessionConfig{Seed: 1},
	}
}

// LoadConfig reads filename over the defaults, applies environment overrides
// and validates the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults without touching the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}

// AttackAngle is the full player cone in radians.
func (p PlayerConfig) AttackAngle() float64 {
	return deg(p.AttackAngleDeg)
}

// AttackAngle is the full enemy cone in radians.
func (e EnemyConfig) AttackAngle() float64 {
	return deg(e.AttackAngleDeg)
}

// Yaw is the spawn facing in radians.
func (s SpawnConfig) Yaw() float64 {
	return deg(s.YawDeg)
}

func (c CameraConfig) MinPitch() float64 {
	return deg(c.MinPitchDeg)
}

func (c CameraConfig) MaxPitch() float64 {
	return deg(c.MaxPitchDeg)
}

func (c CameraConfig) InitialPitch() float64 {
	return deg(c.InitialPitchDeg)
}

// Registry converts clip entries to an action registry. Unknown action
// names are an error.
func Registry(clips map[string]ClipConfig) (action.Registry, error) {
	reg := make(action.Registry, len(clips))
	for name, c := range clips {
		a, ok := action.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q in clips", name)
		}
		reg[a] = action.Clip{Duration: c.Duration, Loop: c.Loop}
	}
	return reg, nil
}

// GetScreenWidth returns the configured screen width
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

// GetScreenHeight returns the configured screen height
func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}
