package scene

import (
	"github.com/jakecoffman/cp"

	"github.com/cnotv/generative-art-sub002/grid"
)

// Physics owns the chipmunk space backing a scene: one static box per
// obstacle cell plus the kinematic character body the path animator
// drives. Nothing here simulates the scripted motion; the space exists
// so obstacle and character shapes stay coherent with the visuals.
type Physics struct {
	space  *cp.Space
	static []*cp.Shape
}

// NewPhysics creates an empty space. The grid plane has no gravity.
func NewPhysics() *Physics {
	space := cp.NewSpace()
	space.Iterations = 10
	return &Physics{space: space}
}

// Space returns the underlying chipmunk space.
func (p *Physics) Space() *cp.Space {
	if p == nil {
		return nil
	}
	return p.space
}

// Rebuild swaps the static obstacle shapes to match a new grid
// snapshot. Called whenever the grid reference is replaced.
func (p *Physics) Rebuild(g *grid.Grid) {
	if p == nil || p.space == nil || g == nil {
		return
	}

	for _, s := range p.static {
		p.space.RemoveShape(s)
	}
	p.static = p.static[:0]

	cfg := g.Config
	half := cfg.CellSize / 2
	for z := 0; z < cfg.Height; z++ {
		for x := 0; x < cfg.Width; x++ {
			if g.Cell(x, z).Type != grid.CellObstacle {
				continue
			}
			w := cfg.ToWorld(x, z)
			bb := cp.BB{L: w.X - half, B: w.Z - half, R: w.X + half, T: w.Z + half}
			shape := cp.NewBox2(p.space.StaticBody, bb, 0)
			shape.SetElasticity(0)
			shape.SetFriction(1)
			p.space.AddShape(shape)
			p.static = append(p.static, shape)
		}
	}
}

// NewCharacterBody creates the kinematic body the path animator keeps
// in sync with the character's world position.
func (p *Physics) NewCharacterBody(pos grid.Vec3, radius float64) *cp.Body {
	body := p.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.7)
	p.space.AddShape(shape)
	return body
}

// Step advances the space by dt seconds.
func (p *Physics) Step(dt float64) {
	if p == nil || p.space == nil {
		return
	}
	p.space.Step(dt)
}
