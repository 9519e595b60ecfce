package pathanim

import (
	"github.com/jakecoffman/cp"

	"github.com/cnotv/generative-art-sub002/grid"
)

// Animation states the animator toggles on the moving object. Renderers
// decide what each state looks like.
const (
	AnimWalk = "walk"
	AnimIdle = "idle"
)

// Object is the moving entity handle the animator writes to: a world
// position, a yaw facing, an animation state, and an optional physics
// body kept in lockstep with the visual position. The animator never
// reads simulated state back from the body.
type Object struct {
	Position  grid.Vec3
	RotationY float64
	Animation string
	AnimTime  float64

	Body *cp.Body
}

// SyncBody mirrors the object's world translation into the attached
// physics body. The grid plane's X/Z map onto the 2D space's X/Y.
func (o *Object) SyncBody() {
	if o.Body == nil {
		return
	}
	o.Body.SetPosition(cp.Vector{X: o.Position.X, Y: o.Position.Z})
}
