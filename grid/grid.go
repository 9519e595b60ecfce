package grid

import (
	"math"
	"math/rand"
)

// Vec3 is a world-space point. The grid lies on the XZ plane; Y is the
// plane's elevation.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Position is an integer grid coordinate. It carries no bounds
// information; callers validate against the owning grid's config.
type Position struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// ManhattanDistance returns |ax-bx| + |az-bz|.
func ManhattanDistance(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	return dx + dz
}

// Config describes a grid's dimensions and its placement in the world.
type Config struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
	Center   Vec3    `yaml:"center"`
}

// ToWorld maps a grid coordinate to the world-space center of that cell.
// The grid's world footprint is centered on Config.Center.
func (c Config) ToWorld(gx, gz int) Vec3 {
	return Vec3{
		X: (float64(gx)-float64(c.Width)/2)*c.CellSize + c.Center.X,
		Y: c.Center.Y,
		Z: (float64(gz)-float64(c.Height)/2)*c.CellSize + c.Center.Z,
	}
}

// FromWorld maps a world-space point to the grid cell containing it,
// flooring to integer indices. The result may be out of bounds; callers
// deriving points from pointer raycasts must check InBounds first.
func (c Config) FromWorld(w Vec3) Position {
	return Position{
		X: int(math.Floor((w.X-c.Center.X)/c.CellSize + float64(c.Width)/2)),
		Z: int(math.Floor((w.Z-c.Center.Z)/c.CellSize + float64(c.Height)/2)),
	}
}

// InBounds reports whether p addresses a cell of this config.
func (c Config) InBounds(p Position) bool {
	return p.X >= 0 && p.X < c.Width && p.Z >= 0 && p.Z < c.Height
}

// Grid is a rectangular occupancy matrix. A grid is never mutated in
// place: every edit returns a new grid so consumers holding an earlier
// reference keep a consistent snapshot.
type Grid struct {
	Config Config
	Cells  [][]Cell // Cells[z][x]
}

// New allocates a Width x Height grid with every cell empty and tagged
// with its own coordinates.
func New(cfg Config) *Grid {
	cells := make([][]Cell, cfg.Height)
	for z := 0; z < cfg.Height; z++ {
		row := make([]Cell, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			row[x] = Cell{X: x, Z: z, Type: CellEmpty}
		}
		cells[z] = row
	}
	return &Grid{Config: cfg, Cells: cells}
}

// Cell returns the cell at (x, z). Indices are not validated here; use
// Config.InBounds at call sites that take coordinates from outside.
func (g *Grid) Cell(x, z int) Cell {
	return g.Cells[z][x]
}

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p Position) bool {
	return g.Config.InBounds(p)
}

// WithCellType returns a new grid identical to g except the cell at
// (x, z) has the given type. The receiver is left untouched.
func (g *Grid) WithCellType(x, z int, t CellType) *Grid {
	cells := make([][]Cell, len(g.Cells))
	for zi, row := range g.Cells {
		copied := make([]Cell, len(row))
		copy(copied, row)
		cells[zi] = copied
	}
	cells[z][x] = Cell{X: x, Z: z, Type: t}
	return &Grid{Config: g.Config, Cells: cells}
}

// MarkObstacle returns a new grid with the cell at p made impassable.
func (g *Grid) MarkObstacle(p Position) *Grid {
	return g.WithCellType(p.X, p.Z, CellObstacle)
}

// MarkObstacles folds MarkObstacle over positions.
func (g *Grid) MarkObstacles(positions []Position) *Grid {
	out := g
	for _, p := range positions {
		out = out.MarkObstacle(p)
	}
	return out
}

// WithTeleportPair returns a new grid with a linked entrance/exit pair.
func (g *Grid) WithTeleportPair(in, out Position) *Grid {
	return g.WithCellType(in.X, in.Z, CellTeleportIn).WithCellType(out.X, out.Z, CellTeleportOut)
}

// FindCell returns the first cell of the given type in row-major order.
func (g *Grid) FindCell(t CellType) (Position, bool) {
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Type == t {
				return Position{X: c.X, Z: c.Z}, true
			}
		}
	}
	return Position{}, false
}

// GenerateObstaclePositions scatters obstacle cells over a Width x Height
// grid with the given per-cell probability, skipping reserved cells.
func GenerateObstaclePositions(width, height int, density float64, reserved []Position, rng *rand.Rand) []Position {
	keep := make(map[Position]bool, len(reserved))
	for _, p := range reserved {
		keep[p] = true
	}
	var out []Position
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			p := Position{X: x, Z: z}
			if keep[p] {
				continue
			}
			if rng.Float64() < density {
				out = append(out, p)
			}
		}
	}
	return out
}
