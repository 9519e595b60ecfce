// Package scene hosts the playground views. The pathfinder scene wires
// the grid, A* search, timeline scheduler, and path animator to the
// render loop, physics space, and pointer input.
package scene

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cnotv/generative-art-sub002/config"
	"github.com/cnotv/generative-art-sub002/grid"
	"github.com/cnotv/generative-art-sub002/pathanim"
	"github.com/cnotv/generative-art-sub002/script"
	"github.com/cnotv/generative-art-sub002/timeline"
)

const physicsDt = 1.0 / 60.0

// Pathfinder is the grid pathfinding visualization scene. One timeline
// manager lives exactly as long as the scene does.
type Pathfinder struct {
	spec     config.PlaygroundSpec
	specName string
	debug    bool

	grid      *grid.Grid
	timeline  *timeline.Manager
	physics   *Physics
	character *pathanim.Object
	camera    Camera
	preset    string
	watcher   *config.Watcher
	rng       *rand.Rand

	frame     int
	path      []grid.Position
	visited   []grid.Position
	noPath    bool
	animating bool
}

// NewPathfinder builds the scene from a named playground spec.
func NewPathfinder(specName string, debug bool) (*Pathfinder, error) {
	spec, err := config.Load(specName)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Pathfinder{
		spec:     spec,
		specName: specName,
		debug:    debug,
		timeline: timeline.NewManager(),
		physics:  NewPhysics(),
		preset:   spec.CameraPreset,
		rng:      rand.New(rand.NewSource(seed)),
	}

	s.rebuildGrid()

	startWorld := spec.Grid.ToWorld(spec.Start.X, spec.Start.Z)
	s.character = &pathanim.Object{
		Position:  startWorld,
		Animation: pathanim.AnimIdle,
	}
	s.character.Body = s.physics.NewCharacterBody(startWorld, spec.Grid.CellSize*0.35)

	s.watcher = openWatcher()
	return s, nil
}

// openWatcher watches the on-disk override dirs when they exist; a
// missing dir just means no live editing this session.
func openWatcher() *config.Watcher {
	var dirs []string
	for _, dir := range []string{config.SpecDir, script.LayoutDir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("scene: watcher disabled: %v", err)
		return nil
	}
	return w
}

// Close tears the scene down: the watcher stops and the timeline's
// action collection is cleared.
func (s *Pathfinder) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.timeline.Clear()
}

// Timeline exposes the scene's scheduler to the driving game loop.
func (s *Pathfinder) Timeline() *timeline.Manager {
	return s.timeline
}

// Frame returns the scene's monotonic frame counter.
func (s *Pathfinder) Frame() int {
	return s.frame
}

// rebuildGrid runs the layout script and replaces the grid snapshot,
// static physics shapes, and any in-flight animation.
func (s *Pathfinder) rebuildGrid() {
	reserved := []grid.Position{s.spec.Start}
	if s.character != nil {
		if cell := s.spec.Grid.FromWorld(s.character.Position); s.spec.Grid.InBounds(cell) {
			reserved = append(reserved, cell)
		}
	}

	layout, err := script.RunLayout(s.spec.LayoutScript, s.spec.Grid, s.spec.ObstacleDensity, reserved, s.rng.Int63())
	if err != nil {
		log.Printf("scene: layout script failed, falling back to uniform scatter: %v", err)
		layout = script.Layout{
			Obstacles: grid.GenerateObstaclePositions(s.spec.Grid.Width, s.spec.Grid.Height, s.spec.ObstacleDensity, reserved, s.rng),
		}
	}

	g := grid.New(s.spec.Grid).MarkObstacles(layout.Obstacles)
	if len(layout.Teleport) == 2 && g.InBounds(layout.Teleport[0]) && g.InBounds(layout.Teleport[1]) {
		g = g.WithTeleportPair(layout.Teleport[0], layout.Teleport[1])
	}

	s.swapGrid(g)
}

// swapGrid installs a new immutable grid snapshot and cancels the
// in-flight animation; cancelled segments never fire their completion.
func (s *Pathfinder) swapGrid(g *grid.Grid) {
	s.grid = g
	s.physics.Rebuild(g)
	s.timeline.RemoveCategory(pathanim.Category)
	s.path = nil
	s.visited = nil
	s.noPath = false
	s.animating = false
	if s.character != nil {
		s.character.Animation = pathanim.AnimIdle
	}
}

// SetGoal recomputes the route from the character's current cell and
// restarts the animation. A nil route leaves the character where it is
// and raises the no-path indicator.
func (s *Pathfinder) SetGoal(goal grid.Position) {
	start := s.spec.Grid.FromWorld(s.character.Position)
	route, visited := grid.BestRouteDebug(s.grid, start, goal)

	s.timeline.RemoveCategory(pathanim.Category)
	s.animating = false
	s.visited = visited

	if route == nil {
		s.path = nil
		s.noPath = true
		return
	}

	// Clicking a wormhole entrance rides it: the exit cell is appended
	// as a non-adjacent leg, which the animator plays as a jump.
	if last := route[len(route)-1]; s.grid.Cell(last.X, last.Z).Type == grid.CellTeleportIn {
		if out, ok := s.grid.FindCell(grid.CellTeleportOut); ok {
			route = append(route, out)
		}
	}

	s.path = route
	s.noPath = false
	s.animating = true
	pathanim.Animate(pathanim.Params{
		Path:          route,
		Object:        s.character,
		Grid:          s.spec.Grid,
		Timeline:      s.timeline,
		FramesPerCell: s.spec.FramesPerCell,
		StartAt:       s.frame + 1,
		GetDelta:      func() float64 { return physicsDt },
		OnComplete:    func() { s.animating = false },
	})
}

// ToggleObstacle flips a cell between empty and obstacle, producing a
// new grid snapshot.
func (s *Pathfinder) ToggleObstacle(cell grid.Position) {
	t := grid.CellObstacle
	if s.grid.Cell(cell.X, cell.Z).Type == grid.CellObstacle {
		t = grid.CellEmpty
	}
	s.swapGrid(s.grid.WithCellType(cell.X, cell.Z, t))
}

// Regenerate re-runs the layout script with the current density.
func (s *Pathfinder) Regenerate() {
	s.rebuildGrid()
}

// AdjustDensity nudges the obstacle density, clamped to [0, 0.9].
func (s *Pathfinder) AdjustDensity(delta float64) {
	d := s.spec.ObstacleDensity + delta
	if d < 0 {
		d = 0
	}
	if d > 0.9 {
		d = 0.9
	}
	s.spec.ObstacleDensity = d
}

// Density returns the current obstacle density.
func (s *Pathfinder) Density() float64 {
	return s.spec.ObstacleDensity
}

// ToggleCameraPreset cycles between the fit and close presets.
func (s *Pathfinder) ToggleCameraPreset() {
	if s.preset == CameraClose {
		s.preset = CameraFit
	} else {
		s.preset = CameraClose
	}
}

// CameraPreset returns the active camera preset name.
func (s *Pathfinder) CameraPreset() string {
	return s.preset
}

// Update advances the scene one frame: reload events, pointer input,
// one timeline tick with the monotonic frame counter, one physics step.
func (s *Pathfinder) Update(screenW, screenH float64, allowInput bool) {
	s.frame++
	s.drainWatcher()

	s.camera = cameraForPreset(s.preset, s.spec.Grid, screenW, screenH)
	if s.preset == CameraClose {
		s.camera.Center = s.character.Position
	}

	if allowInput {
		s.handleInput()
	}

	s.timeline.Tick(s.frame)
	s.physics.Step(physicsDt)
}

func (s *Pathfinder) handleInput() {
	leftClick := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	rightClick := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if leftClick || rightClick {
		mx, my := ebiten.CursorPosition()
		world := s.camera.ScreenToWorld(float64(mx), float64(my))
		cell := s.spec.Grid.FromWorld(world)
		// Pointer rays can land anywhere; bounds are checked here, not
		// inside the grid primitives.
		if !s.grid.InBounds(cell) {
			return
		}
		if leftClick {
			s.SetGoal(cell)
		} else {
			s.ToggleObstacle(cell)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.ToggleCameraPreset()
	}
}

func (s *Pathfinder) drainWatcher() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.reload(name)
		case err := <-s.watcher.Errors:
			log.Printf("scene: watcher: %v", err)
		default:
			return
		}
	}
}

func (s *Pathfinder) reload(name string) {
	log.Printf("scene: reloading after change to %s", name)
	if spec, err := config.Load(s.specName); err == nil {
		spec.CameraPreset = s.preset // keep the user's toggle
		s.spec = spec
	} else {
		log.Printf("scene: keeping previous spec: %v", err)
	}
	s.rebuildGrid()
}

// Draw renders the grid cells, the current route, the character, and
// the HUD indicators.
func (s *Pathfinder) Draw(dst *ebiten.Image) {
	cfg := s.spec.Grid
	cellPx := float32(cfg.CellSize * s.camera.Zoom)

	for z := 0; z < cfg.Height; z++ {
		for x := 0; x < cfg.Width; x++ {
			w := cfg.ToWorld(x, z)
			sx, sy := s.camera.WorldToScreen(w)
			px := float32(sx) - cellPx/2
			py := float32(sy) - cellPx/2
			vector.DrawFilledRect(dst, px+1, py+1, cellPx-2, cellPx-2, cellColor(s.grid.Cell(x, z).Type), false)
		}
	}

	if s.debug {
		for _, p := range s.visited {
			w := cfg.ToWorld(p.X, p.Z)
			sx, sy := s.camera.WorldToScreen(w)
			vector.DrawFilledRect(dst, float32(sx)-cellPx/2+1, float32(sy)-cellPx/2+1, cellPx-2, cellPx-2,
				color.NRGBA{R: 0x3a, G: 0x5a, B: 0x8c, A: 0x60}, false)
		}
	}

	if len(s.path) > 1 {
		for i := 1; i < len(s.path); i++ {
			a := cfg.ToWorld(s.path[i-1].X, s.path[i-1].Z)
			b := cfg.ToWorld(s.path[i].X, s.path[i].Z)
			ax, ay := s.camera.WorldToScreen(a)
			bx, by := s.camera.WorldToScreen(b)
			clr := color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xb0}
			if grid.ManhattanDistance(s.path[i-1], s.path[i]) > 1 {
				clr = color.NRGBA{R: 0xc0, G: 0x40, B: 0xff, A: 0x80}
			}
			vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), 2, clr, true)
		}
	}

	s.drawCharacter(dst)

	if s.noPath {
		ebitenutil.DebugPrintAt(dst, "no path found", int(s.camera.ScreenW/2)-40, 8)
	}
	if s.debug {
		state := "idle"
		if s.animating {
			state = "moving"
		}
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("frame %d  actions %d  visited %d  %s", s.frame, s.timeline.Len(), len(s.visited), state), 8, 24)
	}
}

func (s *Pathfinder) drawCharacter(dst *ebiten.Image) {
	sx, sy := s.camera.WorldToScreen(s.character.Position)
	r := float32(s.spec.Grid.CellSize * 0.35 * s.camera.Zoom)
	if s.character.Animation == pathanim.AnimWalk {
		// Small stride pulse driven by the animation clock.
		r *= 1 + 0.08*float32(math.Sin(s.character.AnimTime*12))
	}
	vector.DrawFilledCircle(dst, float32(sx), float32(sy), r, color.NRGBA{R: 0x2e, G: 0xc4, B: 0xb6, A: 0xff}, true)

	// Facing line from yaw; yaw 0 looks along +Z.
	dx := math.Sin(s.character.RotationY)
	dz := math.Cos(s.character.RotationY)
	vector.StrokeLine(dst,
		float32(sx), float32(sy),
		float32(sx+dx*float64(r)*1.4), float32(sy+dz*float64(r)*1.4),
		2, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true)
}

func cellColor(t grid.CellType) color.Color {
	switch t {
	case grid.CellEmpty:
		return color.NRGBA{R: 0x20, G: 0x24, B: 0x2c, A: 0xff}
	case grid.CellObstacle:
		return color.NRGBA{R: 0x8a, G: 0x3b, B: 0x3b, A: 0xff}
	case grid.CellSlow:
		return color.NRGBA{R: 0x6b, G: 0x5e, B: 0x2e, A: 0xff}
	case grid.CellTeleportIn:
		return color.NRGBA{R: 0x7b, G: 0x2f, B: 0xbf, A: 0xff}
	case grid.CellTeleportOut:
		return color.NRGBA{R: 0x2f, G: 0x7b, B: 0xbf, A: 0xff}
	}
	return color.NRGBA{R: 0x20, G: 0x24, B: 0x2c, A: 0xff}
}
