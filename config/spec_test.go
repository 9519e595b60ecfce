package config

import "testing"

func TestLoadEmbeddedDefault(t *testing.T) {
	spec, err := Load("playground.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if spec.Grid.Width != 16 || spec.Grid.Height != 16 {
		t.Fatalf("grid dims %dx%d, want 16x16", spec.Grid.Width, spec.Grid.Height)
	}
	if spec.Grid.CellSize != 32 {
		t.Fatalf("cell size %v, want 32", spec.Grid.CellSize)
	}
	if spec.FramesPerCell != 30 {
		t.Fatalf("frames per cell %d, want 30", spec.FramesPerCell)
	}
	if spec.CameraPreset != "fit" {
		t.Fatalf("camera preset %q, want fit", spec.CameraPreset)
	}
	if spec.LayoutScript != "scatter.tengo" {
		t.Fatalf("layout script %q", spec.LayoutScript)
	}
	if !spec.Grid.InBounds(spec.Start) {
		t.Fatalf("start %+v outside grid", spec.Start)
	}
}

func TestLoadRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "../escape.yaml", "playground.tengo", "missing.yaml"} {
		if _, err := Load(name); err == nil {
			t.Fatalf("Load(%q) succeeded, want error", name)
		}
	}
}

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	var spec PlaygroundSpec
	spec.applyDefaults()

	if spec.Grid.Width != 16 || spec.Grid.Height != 16 || spec.Grid.CellSize != 32 {
		t.Fatalf("grid defaults %+v", spec.Grid)
	}
	if spec.FramesPerCell != 30 || spec.CameraPreset != "fit" || spec.LayoutScript != "scatter.tengo" {
		t.Fatalf("defaults %+v", spec)
	}
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlaygroundSpec)
	}{
		{"density_negative", func(s *PlaygroundSpec) { s.ObstacleDensity = -0.1 }},
		{"density_full", func(s *PlaygroundSpec) { s.ObstacleDensity = 1 }},
		{"start_out_of_bounds", func(s *PlaygroundSpec) { s.Start.X = 99 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec PlaygroundSpec
			spec.applyDefaults()
			c.mutate(&spec)
			if err := spec.validate(); err == nil {
				t.Fatalf("validate accepted a bad spec")
			}
		})
	}
}
