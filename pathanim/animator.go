// Package pathanim turns a static grid path into a time-sliced sequence
// of timeline actions that move a single object cell to cell.
package pathanim

import (
	"fmt"
	"math"

	"github.com/cnotv/generative-art-sub002/common"
	"github.com/cnotv/generative-art-sub002/grid"
	"github.com/cnotv/generative-art-sub002/timeline"
)

// Category tags every segment action, letting a scene cancel a whole
// in-flight animation with one RemoveCategory call before re-animating.
const Category = "pathfinding"

const (
	defaultFramesPerCell = 30

	// Non-adjacent cells are wormhole jumps: near-instant, no facing.
	teleportFrames = 2
)

// Params configures one animation run.
type Params struct {
	Path          []grid.Position
	Object        *Object
	Grid          grid.Config
	Timeline      *timeline.Manager
	FramesPerCell int
	// StartAt offsets every segment's start frame, anchoring the
	// animation to the manager's current frame counter.
	StartAt int
	// GetDelta, when set, advances the object's animation clock each
	// animated frame with the render loop's frame delta.
	GetDelta func() float64
	// OnComplete runs once when the final segment's window closes, or
	// immediately for a degenerate path.
	OnComplete func()
}

// Animate registers one auto-removing timeline action per path segment,
// scheduled back to back in path order starting at Params.StartAt.
func Animate(p Params) {
	if len(p.Path) <= 1 {
		if p.OnComplete != nil {
			p.OnComplete()
		}
		return
	}
	if p.Object == nil || p.Timeline == nil {
		return
	}

	framesPerCell := p.FramesPerCell
	if framesPerCell <= 0 {
		framesPerCell = defaultFramesPerCell
	}

	obj := p.Object
	start := p.StartAt
	for i := 1; i < len(p.Path); i++ {
		from := p.Path[i-1]
		to := p.Path[i]
		fromWorld := p.Grid.ToWorld(from.X, from.Z)
		toWorld := p.Grid.ToWorld(to.X, to.Z)

		teleport := grid.ManhattanDistance(from, to) > 1
		duration := framesPerCell
		if teleport {
			duration = teleportFrames
		}

		segStart := start
		action := &timeline.Action{
			Name:       fmt.Sprintf("segment %d (%d,%d)->(%d,%d)", i, from.X, from.Z, to.X, to.Z),
			Category:   Category,
			Start:      segStart,
			Duration:   duration,
			AutoRemove: true,
			Do: func(frame int) {
				progress := common.Clamp(float64(frame-segStart)/float64(duration), 0, 1)
				obj.Position = grid.Vec3{
					X: common.Lerp(fromWorld.X, toWorld.X, progress),
					Y: common.Lerp(fromWorld.Y, toWorld.Y, progress),
					Z: common.Lerp(fromWorld.Z, toWorld.Z, progress),
				}
				obj.SyncBody()
				if p.GetDelta != nil {
					obj.AnimTime += p.GetDelta()
				}
			},
		}

		if !teleport {
			dx := float64(to.X - from.X)
			dz := float64(to.Z - from.Z)
			action.OnCycleStart = func(int) {
				// Grid-to-world is a uniform scale, so the grid delta
				// gives the world yaw directly.
				obj.RotationY = math.Atan2(dx, dz)
				obj.Animation = AnimWalk
			}
		}

		if i == len(p.Path)-1 {
			done := p.OnComplete
			action.OnComplete = func() {
				obj.Animation = AnimIdle
				if done != nil {
					done()
				}
			}
		}

		p.Timeline.Add(action)
		start += duration
	}
}
