// Package script runs tengo layout scripts that place obstacles and
// wormhole pairs, so layouts can be reshaped without recompiling.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/cnotv/generative-art-sub002/grid"
)

// Layout is what a layout script produced: obstacle cells and an
// optional linked teleport entrance/exit pair.
type Layout struct {
	Obstacles []grid.Position
	Teleport  []grid.Position // empty or [entrance, exit]
}

// RunLayout executes the named layout script. The script sees __width,
// __height, __density, __seed, and __reserved (cells it must leave
// open), and assigns `obstacles` ([[x, z], ...]) and optionally
// `teleport` ([[x, z], [x, z]]).
func RunLayout(name string, cfg grid.Config, density float64, reserved []grid.Position, seed int64) (Layout, error) {
	src, err := load(name)
	if err != nil {
		return Layout{}, fmt.Errorf("script: load %s: %w", name, err)
	}

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand"))
	_ = s.Add("__width", cfg.Width)
	_ = s.Add("__height", cfg.Height)
	_ = s.Add("__density", density)
	_ = s.Add("__seed", seed)
	_ = s.Add("__reserved", positionsToScript(reserved))

	compiled, err := s.Run()
	if err != nil {
		return Layout{}, fmt.Errorf("script: run %s: %w", name, err)
	}

	obstacles, err := positionsFromScript(compiled.Get("obstacles"))
	if err != nil {
		return Layout{}, fmt.Errorf("script: %s: obstacles: %w", name, err)
	}
	teleport, err := positionsFromScript(compiled.Get("teleport"))
	if err != nil {
		return Layout{}, fmt.Errorf("script: %s: teleport: %w", name, err)
	}
	if len(teleport) != 0 && len(teleport) != 2 {
		return Layout{}, fmt.Errorf("script: %s: teleport needs exactly 2 cells, got %d", name, len(teleport))
	}

	return Layout{Obstacles: obstacles, Teleport: teleport}, nil
}

func positionsToScript(positions []grid.Position) []interface{} {
	out := make([]interface{}, 0, len(positions))
	for _, p := range positions {
		out = append(out, []interface{}{p.X, p.Z})
	}
	return out
}

func positionsFromScript(v *tengo.Variable) ([]grid.Position, error) {
	if v == nil || v.IsUndefined() {
		return nil, nil
	}
	raw := v.Array()
	out := make([]grid.Position, 0, len(raw))
	for i, el := range raw {
		pair, ok := el.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("entry %d is not an [x, z] pair", i)
		}
		x, okX := scriptInt(pair[0])
		z, okZ := scriptInt(pair[1])
		if !okX || !okZ {
			return nil, fmt.Errorf("entry %d has non-integer coordinates", i)
		}
		out = append(out, grid.Position{X: x, Z: z})
	}
	return out, nil
}

func scriptInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
