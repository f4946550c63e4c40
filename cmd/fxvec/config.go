package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fxvec/physics"
	"github.com/lixenwraith/fxvec/vmath"
)

// SceneConfig is the sandbox YAML file
// Values are decimal for readability and converted to Q32.32 once at load
type SceneConfig struct {
	Bodies      int     `yaml:"bodies"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	MaxSpeed    float64 `yaml:"max_speed"`
	GravityX    float64 `yaml:"gravity_x"`
	GravityY    float64 `yaml:"gravity_y"`
	Restitution float64 `yaml:"restitution"`
	FPS         int     `yaml:"fps"`
	ToneHz      float64 `yaml:"tone_hz"`
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Bodies:      16,
		Radius:      1.0,
		Mass:        1.0,
		MaxSpeed:    30.0,
		GravityX:    0,
		GravityY:    9.8,
		Restitution: 0.85,
		FPS:         30,
		ToneHz:      880,
	}
}

// LoadSceneConfig reads path over the defaults; empty path returns defaults
func LoadSceneConfig(path string) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scene config: %w", err)
	}
	if err := decodeSceneConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("scene config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeSceneConfig(data []byte, cfg *SceneConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if cfg.FPS <= 0 || cfg.FPS > 240 {
		return fmt.Errorf("fps %d out of range [1, 240]", cfg.FPS)
	}
	if cfg.ToneHz < 0 {
		return fmt.Errorf("tone_hz %v is negative", cfg.ToneHz)
	}
	return nil
}

// World converts the scene into a physics configuration for a width x height cell grid
// Terminal cells are roughly twice as tall as wide, so the world is twice the row count
func (s SceneConfig) World(width, height int, seed uint64) (physics.Config, error) {
	var cfg physics.Config
	// FromFloat panics on out-of-range input; surface that as a config error
	err := catchOverflow(func() {
		cfg = physics.Config{
			Width:       vmath.FromInt(width),
			Height:      vmath.FromInt(height * 2),
			Bodies:      s.Bodies,
			Radius:      vmath.FromFloat(s.Radius),
			Mass:        vmath.FromFloat(s.Mass),
			MaxSpeed:    vmath.FromFloat(s.MaxSpeed),
			Gravity:     vmath.NewVec2(vmath.FromFloat(s.GravityX), vmath.FromFloat(s.GravityY)),
			Restitution: vmath.FromFloat(s.Restitution),
			Seed:        seed,
		}
	})
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func catchOverflow(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, vmath.ErrOverflow) {
				panic(r)
			}
			err = fmt.Errorf("%w: %w", physics.ErrInvalidConfig, e)
		}
	}()
	fn()
	return nil
}
