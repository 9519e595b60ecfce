package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cnotv/generative-art-sub002/scene"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Game drives the active scene once per rendered frame and overlays the
// control panel.
type Game struct {
	scene     *scene.Pathfinder
	panel     *ebitenui.UI
	showPanel bool
	debug     bool

	frames int
}

func NewGame(specName string, debug bool) (*Game, error) {
	sc, err := scene.NewPathfinder(specName, debug)
	if err != nil {
		return nil, err
	}

	g := &Game{scene: sc, debug: debug}
	g.panel = NewPanelUI(g)
	return g, nil
}

func (g *Game) Close() {
	g.scene.Close()
}

func (g *Game) Update() error {
	g.frames++

	// Esc and Tab both toggle the panel; an open panel pauses the scene.
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPanel = !g.showPanel
	}

	if g.showPanel {
		g.panel.Update()
	}

	g.step()
	return nil
}

// step advances the scene one frame unless the panel has it paused,
// keeping the scene's frame counter still while the panel is open.
func (g *Game) step() {
	if g.showPanel {
		return
	}
	g.scene.Update(baseWidth, baseHeight, true)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	if g.showPanel {
		g.panel.Draw(screen)
	}

	hud := "click: move   right-click: toggle wall   R: regen   C: camera   Esc: pause"
	if g.debug {
		hud = fmt.Sprintf("%s   FPS: %.1f", hud, ebiten.ActualFPS())
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
