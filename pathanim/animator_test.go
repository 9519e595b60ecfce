package pathanim

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/cnotv/generative-art-sub002/grid"
	"github.com/cnotv/generative-art-sub002/timeline"
)

func testGridConfig() grid.Config {
	return grid.Config{Width: 16, Height: 16, CellSize: 32}
}

func straightPath(n int) []grid.Position {
	path := make([]grid.Position, 0, n)
	for i := 0; i < n; i++ {
		path = append(path, grid.Position{X: i, Z: 0})
	}
	return path
}

func TestAnimateDegeneratePaths(t *testing.T) {
	cases := []struct {
		name string
		path []grid.Position
	}{
		{"nil_path", nil},
		{"empty_path", []grid.Position{}},
		{"single_cell", []grid.Position{{X: 3, Z: 3}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := timeline.NewManager()
			completions := 0
			Animate(Params{
				Path:       c.path,
				Object:     &Object{},
				Grid:       testGridConfig(),
				Timeline:   m,
				OnComplete: func() { completions++ },
			})
			if completions != 1 {
				t.Fatalf("OnComplete fired %d times, want immediate single completion", completions)
			}
			if m.Len() != 0 {
				t.Fatalf("degenerate path registered %d actions", m.Len())
			}
		})
	}
}

func TestAnimateSegmentCountAndStarts(t *testing.T) {
	m := timeline.NewManager()
	Animate(Params{
		Path:          straightPath(8),
		Object:        &Object{},
		Grid:          testGridConfig(),
		Timeline:      m,
		FramesPerCell: 40,
	})

	actions := m.Actions()
	if len(actions) != 7 {
		t.Fatalf("registered %d actions for 7 moves, want 7", len(actions))
	}
	for i, a := range actions {
		if a.Start != i*40 {
			t.Fatalf("segment %d starts at %d, want %d", i, a.Start, i*40)
		}
		if a.Duration != 40 {
			t.Fatalf("segment %d duration %d, want 40", i, a.Duration)
		}
		if a.Category != Category {
			t.Fatalf("segment %d category %q", i, a.Category)
		}
		if !a.AutoRemove {
			t.Fatalf("segment %d is not single-use", i)
		}
	}
}

func TestAnimateInterpolatesAndFaces(t *testing.T) {
	cfg := testGridConfig()
	m := timeline.NewManager()
	obj := &Object{Position: cfg.ToWorld(0, 0), Animation: AnimIdle}

	Animate(Params{
		Path:          []grid.Position{{X: 0, Z: 0}, {X: 1, Z: 0}},
		Object:        obj,
		Grid:          cfg,
		Timeline:      m,
		FramesPerCell: 10,
	})

	m.Tick(0)
	if obj.Animation != AnimWalk {
		t.Fatalf("animation at segment start = %q, want walk", obj.Animation)
	}
	wantYaw := math.Atan2(1, 0)
	if math.Abs(obj.RotationY-wantYaw) > 1e-9 {
		t.Fatalf("yaw = %v, want %v", obj.RotationY, wantYaw)
	}

	m.Tick(5)
	from := cfg.ToWorld(0, 0)
	to := cfg.ToWorld(1, 0)
	wantX := from.X + (to.X-from.X)*0.5
	if math.Abs(obj.Position.X-wantX) > 1e-9 {
		t.Fatalf("midpoint X = %v, want %v", obj.Position.X, wantX)
	}

	m.Tick(10)
	if math.Abs(obj.Position.X-to.X) > 1e-9 || math.Abs(obj.Position.Z-to.Z) > 1e-9 {
		t.Fatalf("final position %+v, want %+v", obj.Position, to)
	}
	if obj.Animation != AnimIdle {
		t.Fatalf("animation after completion = %q, want idle", obj.Animation)
	}
}

func TestAnimateTeleportSegment(t *testing.T) {
	cfg := testGridConfig()
	m := timeline.NewManager()
	obj := &Object{RotationY: 1.25}

	// Second leg jumps across the grid: a wormhole.
	Animate(Params{
		Path:          []grid.Position{{X: 1, Z: 1}, {X: 2, Z: 1}, {X: 14, Z: 14}},
		Object:        obj,
		Grid:          cfg,
		Timeline:      m,
		FramesPerCell: 40,
	})

	actions := m.Actions()
	if len(actions) != 2 {
		t.Fatalf("registered %d actions, want 2", len(actions))
	}

	jump := actions[1]
	if jump.Duration >= 40 {
		t.Fatalf("teleport duration %d, want near-instant", jump.Duration)
	}
	if jump.Start != 40 {
		t.Fatalf("teleport starts at %d, want right after the first leg", jump.Start)
	}

	// Play the first leg, remember the facing, then ride the jump.
	for f := 0; f <= 40; f++ {
		m.Tick(f)
	}
	walkYaw := obj.RotationY
	for f := 41; f <= 40+jump.Duration; f++ {
		m.Tick(f)
	}

	if obj.RotationY != walkYaw {
		t.Fatalf("teleport changed facing from %v to %v", walkYaw, obj.RotationY)
	}
	want := cfg.ToWorld(14, 14)
	if math.Abs(obj.Position.X-want.X) > 1e-9 || math.Abs(obj.Position.Z-want.Z) > 1e-9 {
		t.Fatalf("position after jump %+v, want %+v", obj.Position, want)
	}
}

func TestAnimateSyncsPhysicsBody(t *testing.T) {
	cfg := testGridConfig()
	m := timeline.NewManager()
	obj := &Object{Body: cp.NewKinematicBody()}

	Animate(Params{
		Path:          []grid.Position{{X: 0, Z: 0}, {X: 0, Z: 1}},
		Object:        obj,
		Grid:          cfg,
		Timeline:      m,
		FramesPerCell: 4,
	})

	for f := 0; f <= 4; f++ {
		m.Tick(f)
	}

	want := cfg.ToWorld(0, 1)
	pos := obj.Body.Position()
	if math.Abs(pos.X-want.X) > 1e-9 || math.Abs(pos.Y-want.Z) > 1e-9 {
		t.Fatalf("body translation %+v, want (%v, %v)", pos, want.X, want.Z)
	}
}

func TestAnimateAdvancesAnimationClock(t *testing.T) {
	m := timeline.NewManager()
	obj := &Object{}

	Animate(Params{
		Path:          straightPath(2),
		Object:        obj,
		Grid:          testGridConfig(),
		Timeline:      m,
		FramesPerCell: 5,
		GetDelta:      func() float64 { return 0.25 },
	})

	for f := 0; f <= 5; f++ {
		m.Tick(f)
	}
	if math.Abs(obj.AnimTime-1.5) > 1e-9 {
		t.Fatalf("animation clock = %v, want 1.5 after 6 animated frames", obj.AnimTime)
	}
}

func TestAnimateStartAtOffset(t *testing.T) {
	m := timeline.NewManager()
	Animate(Params{
		Path:          straightPath(3),
		Object:        &Object{},
		Grid:          testGridConfig(),
		Timeline:      m,
		FramesPerCell: 10,
		StartAt:       100,
	})

	actions := m.Actions()
	if actions[0].Start != 100 || actions[1].Start != 110 {
		t.Fatalf("starts %d, %d; want 100, 110", actions[0].Start, actions[1].Start)
	}
}

func TestEndToEndRouteAnimation(t *testing.T) {
	cfg := testGridConfig()
	g := grid.New(cfg)

	route := grid.BestRoute(g, grid.Position{X: 1, Z: 1}, grid.Position{X: 14, Z: 14})
	if len(route) != 27 {
		t.Fatalf("route length = %d, want 27", len(route))
	}

	m := timeline.NewManager()
	obj := &Object{Position: cfg.ToWorld(1, 1)}
	doneFrame := -1
	completions := 0

	Animate(Params{
		Path:          route,
		Object:        obj,
		Grid:          cfg,
		Timeline:      m,
		FramesPerCell: 40,
		OnComplete:    func() { completions++ },
	})

	actions := m.Actions()
	if len(actions) != 26 {
		t.Fatalf("registered %d actions, want 26", len(actions))
	}
	for i, a := range actions {
		if a.Start != i*40 {
			t.Fatalf("segment %d starts at %d, want %d", i, a.Start, i*40)
		}
	}
	if actions[len(actions)-1].Start != 1000 {
		t.Fatalf("final segment starts at %d, want 1000", actions[len(actions)-1].Start)
	}

	for f := 0; f <= 1040; f++ {
		m.Tick(f)
		if completions == 1 && doneFrame < 0 {
			doneFrame = f
		}
	}

	if completions != 1 {
		t.Fatalf("OnComplete fired %d times, want 1", completions)
	}
	if doneFrame < 1040 {
		t.Fatalf("completed at frame %d, want at or after 1040", doneFrame)
	}
	if m.Len() != 0 {
		t.Fatalf("%d segment actions survived auto-removal", m.Len())
	}

	goal := cfg.ToWorld(14, 14)
	if math.Abs(obj.Position.X-goal.X) > 1e-9 || math.Abs(obj.Position.Z-goal.Z) > 1e-9 {
		t.Fatalf("final position %+v, want %+v", obj.Position, goal)
	}
}
