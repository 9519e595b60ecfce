package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cnotv/generative-art-sub002/grid"
)

// PlaygroundSpec is the tunable surface of the pathfinder view. Specs
// live as yaml next to the binary (disk overrides the embedded default)
// and hot-reload through the watcher.
type PlaygroundSpec struct {
	Grid            grid.Config   `yaml:"grid"`
	ObstacleDensity float64       `yaml:"obstacle_density"`
	FramesPerCell   int           `yaml:"frames_per_cell"`
	CameraPreset    string        `yaml:"camera_preset"`
	LayoutScript    string        `yaml:"layout_script"`
	Start           grid.Position `yaml:"start"`
	Seed            int64         `yaml:"seed"`
}

// Load reads and validates a playground spec by file name.
func Load(name string) (PlaygroundSpec, error) {
	data, err := read(name)
	if err != nil {
		return PlaygroundSpec{}, fmt.Errorf("config: load %s: %w", name, err)
	}

	var spec PlaygroundSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return PlaygroundSpec{}, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	spec.applyDefaults()
	if err := spec.validate(); err != nil {
		return PlaygroundSpec{}, fmt.Errorf("config: %s: %w", name, err)
	}
	return spec, nil
}

func (s *PlaygroundSpec) applyDefaults() {
	if s.Grid.Width <= 0 {
		s.Grid.Width = 16
	}
	if s.Grid.Height <= 0 {
		s.Grid.Height = 16
	}
	if s.Grid.CellSize <= 0 {
		s.Grid.CellSize = 32
	}
	if s.FramesPerCell <= 0 {
		s.FramesPerCell = 30
	}
	if s.CameraPreset == "" {
		s.CameraPreset = "fit"
	}
	if s.LayoutScript == "" {
		s.LayoutScript = "scatter.tengo"
	}
}

func (s *PlaygroundSpec) validate() error {
	if s.ObstacleDensity < 0 || s.ObstacleDensity >= 1 {
		return fmt.Errorf("obstacle_density %v out of [0, 1)", s.ObstacleDensity)
	}
	if !s.Grid.InBounds(s.Start) {
		return fmt.Errorf("start %+v outside %dx%d grid", s.Start, s.Grid.Width, s.Grid.Height)
	}
	return nil
}
