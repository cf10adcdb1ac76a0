package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig is the YAML-loaded description of one demo scene: the
// starting camera pose, render tuning, and where to find the map and
// texture assets. It mirrors the shape of the teacher's config.Config,
// trimmed to the knobs the rendering core actually takes (spec.md §6).
type SceneConfig struct {
	Display struct {
		ScreenWidth  int    `yaml:"screen_width"`
		ScreenHeight int    `yaml:"screen_height"`
		WindowTitle  string `yaml:"window_title"`
	} `yaml:"display"`

	Camera struct {
		X             float64 `yaml:"x"`
		Y             float64 `yaml:"y"`
		DirX          float64 `yaml:"dir_x"`
		DirY          float64 `yaml:"dir_y"`
		PlaneX        float64 `yaml:"plane_x"`
		PlaneY        float64 `yaml:"plane_y"`
		PlaneYInitial float64 `yaml:"plane_y_initial"`
		Z             float64 `yaml:"z"`
	} `yaml:"camera"`

	Render struct {
		LightRange   float64 `yaml:"light_range"`
		StepRange    int     `yaml:"step_range"`
		SpriteStride int     `yaml:"sprite_stride"`
		StopAtWindow bool    `yaml:"stop_at_window"`
		Aspect       float64 `yaml:"aspect"`
	} `yaml:"render"`

	Movement struct {
		MoveSpeed     float64 `yaml:"move_speed"`
		RotationSpeed float64 `yaml:"rotation_speed"`
	} `yaml:"movement"`

	Map struct {
		Width int    `yaml:"width"`
		Path  string `yaml:"path"`
	} `yaml:"map"`

	Textures TextureManifest `yaml:"textures"`
}

// TextureManifest lists, per logical texture type, the PNG file(s) to
// register. Angles beyond the first are optional; BuildTextureStore
// registers a flat placeholder texture for any type with no path
// configured.
type TextureManifest struct {
	Wall    string   `yaml:"wall"`
	Floor   string   `yaml:"floor"`
	Ceiling string   `yaml:"ceiling"`
	Road    string   `yaml:"road"`
	Door    string   `yaml:"door"`
	Window  string   `yaml:"window"`
	Sky     string   `yaml:"sky"`
	Tree    []string `yaml:"tree"` // one PNG per angle, in order
}

// LoadSceneConfig reads and parses a scene YAML file.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene config %q: %w", path, err)
	}
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scene config %q: %w", path, err)
	}
	return &cfg, nil
}

// MustLoadSceneConfig loads cfg and panics on error, mirroring the
// teacher's config.MustLoadConfig host-startup-failure idiom.
func MustLoadSceneConfig(path string) *SceneConfig {
	cfg, err := LoadSceneConfig(path)
	if err != nil {
		panic("raydemo: failed to load scene config: " + err.Error())
	}
	return cfg
}
