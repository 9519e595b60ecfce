package scene

import (
	"github.com/cnotv/generative-art-sub002/grid"
)

// Camera presets for the pathfinder view.
const (
	CameraFit   = "fit"   // whole grid in frame
	CameraClose = "close" // zoomed in, following the character
)

// Camera maps between the grid's world plane (X right, Z down) and
// screen pixels.
type Camera struct {
	Zoom    float64
	Center  grid.Vec3 // world point shown at screen center
	ScreenW float64
	ScreenH float64
}

func cameraForPreset(preset string, cfg grid.Config, screenW, screenH float64) Camera {
	cam := Camera{Center: cfg.Center, ScreenW: screenW, ScreenH: screenH}
	worldW := float64(cfg.Width) * cfg.CellSize
	worldH := float64(cfg.Height) * cfg.CellSize

	switch preset {
	case CameraClose:
		cam.Zoom = screenH / (8 * cfg.CellSize)
	default: // CameraFit
		zx := screenW / worldW
		zy := screenH / worldH
		if zx < zy {
			cam.Zoom = zx * 0.9
		} else {
			cam.Zoom = zy * 0.9
		}
	}
	return cam
}

// WorldToScreen projects a world point to screen pixels.
func (c Camera) WorldToScreen(w grid.Vec3) (float64, float64) {
	return (w.X-c.Center.X)*c.Zoom + c.ScreenW/2, (w.Z-c.Center.Z)*c.Zoom + c.ScreenH/2
}

// ScreenToWorld is the inverse projection onto the grid plane.
func (c Camera) ScreenToWorld(sx, sy float64) grid.Vec3 {
	return grid.Vec3{
		X: (sx-c.ScreenW/2)/c.Zoom + c.Center.X,
		Z: (sy-c.ScreenH/2)/c.Zoom + c.Center.Z,
	}
}
