package config

import (
	"errors"
	"fmt"

	"knightfall/internal/mathutil"
)

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !mathutil.IsFinite(v) || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !mathutil.IsFinite(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	if !mathutil.IsFinite(c.Physics.Gravity) || c.Physics.Gravity > 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must point down, got %v", c.Physics.Gravity))
	}

	p := c.Player
	positive("player.max_health", p.MaxHealth)
	positive("player.radius", p.Radius)
	nonNegative("player.move_speed", p.MoveSpeed)
	nonNegative("player.jump_velocity", p.JumpVelocity)
	positive("player.rotation_speed", p.RotationSpeed)
	nonNegative("player.max_mana", p.MaxMana)
	nonNegative("player.attack_mana_cost", p.AttackManaCost)
	nonNegative("player.mana_regen_rate", p.ManaRegenRate)
	nonNegative("player.mana_regen_cooldown", p.ManaRegenCooldown)
	nonNegative("player.attack_damage", p.AttackDamage)
	nonNegative("player.attack_range", p.AttackRange)
	nonNegative("player.attack_angle_deg", p.AttackAngleDeg)
	nonNegative("player.attack_cooldown", p.AttackCooldown)
	errs = append(errs, checkClips("player.clips", p.Clips)...)

	e := c.Enemy
	positive("enemy.max_health", e.MaxHealth)
	positive("enemy.radius", e.Radius)
	nonNegative("enemy.movement_speed", e.MovementSpeed)
	nonNegative("enemy.sight_range", e.SightRange)
	nonNegative("enemy.attack_range", e.AttackRange)
	nonNegative("enemy.attack_damage", e.AttackDamage)
	nonNegative("enemy.attack_angle_deg", e.AttackAngleDeg)
	nonNegative("enemy.attack_cooldown", e.AttackCooldown)
	nonNegative("enemy.attack_wind_up", e.AttackWindUp)
	if e.Decider != "rule" && e.Decider != "script" {
		errs = append(errs, fmt.Errorf("enemy.decider must be rule or script, got %q", e.Decider))
	}
	errs = append(errs, checkClips("enemy.clips", e.Clips)...)

	cam := c.Camera
	positive("camera.distance", cam.Distance)
	nonNegative("camera.lag", cam.Lag)
	positive("camera.base_rotation_speed", cam.BaseRotationSpeed)
	nonNegative("camera.sensitivity", cam.Sensitivity)
	if cam.MinPitchDeg > cam.MaxPitchDeg {
		errs = append(errs, fmt.Errorf("camera pitch range [%v, %v] is empty", cam.MinPitchDeg, cam.MaxPitchDeg))
	}

	positive("world.ground_size", c.World.GroundSize)
	nonNegative("world.tree_radius", c.World.TreeRadius)
	nonNegative("world.clear_radius", c.World.ClearRadius)
	if c.World.TreeCount < 0 {
		errs = append(errs, fmt.Errorf("world.tree_count must not be negative, got %d", c.World.TreeCount))
	}

	for name, v := range map[string]float64{"audio.music_volume": c.Audio.MusicVolume, "audio.sfx_volume": c.Audio.SFXVolume} {
		if !mathutil.IsFinite(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, v))
		}
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	positive("display.pixels_per_unit", c.Display.PixelsPerUnit)
	if c.Display.TPS <= 0 {
		errs = append(errs, fmt.Errorf("display.tps must be positive, got %d", c.Display.TPS))
	}

	return errors.Join(errs...)
}

func checkClips(field string, clips map[string]ClipConfig) []error {
	var errs []error
	if _, err := Registry(clips); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", field, err))
	}
	for name, c := range clips {
		if !c.Loop && (!mathutil.IsFinite(c.Duration) || c.Duration <= 0) {
			errs = append(errs, fmt.Errorf("%s.%s: one-shot clip needs a positive duration", field, name))
		}
	}
	return errs
}
