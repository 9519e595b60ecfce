package grid

import (
	"container/heap"
	"math"
)

// BestRoute finds the shortest walkable path from start to goal using A*
// over 4-connected neighbors with unit step cost. The returned path runs
// from start to goal inclusive; nil means no path exists. An unwalkable
// start and an out-of-bounds goal both return nil immediately. Slow
// cells are walkable at the same cost as empty ones; terrain weighting
// is a deliberate extension point.
func BestRoute(g *Grid, start, goal Position) []Position {
	path, _ := BestRouteDebug(g, start, goal)
	return path
}

// BestRouteDebug is BestRoute plus the cells the search expanded, in
// expansion order, for the debug overlay. Callers that only want the
// path use BestRoute.
func BestRouteDebug(g *Grid, start, goal Position) (path, visited []Position) {
	cfg := g.Config
	if !cfg.InBounds(start) || !cfg.InBounds(goal) {
		return nil, nil
	}
	if !g.Cell(start.X, start.Z).Walkable() {
		return nil, nil
	}

	size := cfg.Width * cfg.Height
	startIdx := start.Z*cfg.Width + start.X
	goalIdx := goal.Z*cfg.Width + goal.X

	cameFrom := make([]int, size)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, size)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{
		pos: start,
		g:   0,
		h:   float64(ManhattanDistance(start, goal)),
		f:   float64(ManhattanDistance(start, goal)),
	})

	visited = make([]Position, 0, 64)

	// Pops are capped at the cell count; on a connected grid the cap is
	// never hit before the open set empties.
	for pops := 0; open.Len() > 0 && pops < size; pops++ {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.Z*cfg.Width + cur.X
		if current.g > gScore[curIdx] {
			continue // stale entry superseded by a cheaper route
		}

		visited = append(visited, cur)

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, cfg.Width, startIdx, goalIdx), visited
		}

		for _, n := range neighbors(cur, cfg.Width, cfg.Height) {
			if !g.Cell(n.X, n.Z).Walkable() {
				continue
			}
			idx := n.Z*cfg.Width + n.X
			tentative := gScore[curIdx] + 1
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				h := float64(ManhattanDistance(n, goal))
				heap.Push(open, &openItem{pos: n, g: tentative, h: h, f: tentative + h})
			}
		}
	}

	return nil, visited
}

func reconstructPath(cameFrom []int, width, startIdx, goalIdx int) []Position {
	if startIdx == goalIdx {
		return []Position{{X: startIdx % width, Z: startIdx / width}}
	}
	if cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]Position, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, Position{X: cur % width, Z: cur / width})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p Position, width, height int) []Position {
	out := make([]Position, 0, 4)
	if p.X > 0 {
		out = append(out, Position{X: p.X - 1, Z: p.Z})
	}
	if p.X < width-1 {
		out = append(out, Position{X: p.X + 1, Z: p.Z})
	}
	if p.Z > 0 {
		out = append(out, Position{X: p.X, Z: p.Z - 1})
	}
	if p.Z < height-1 {
		out = append(out, Position{X: p.X, Z: p.Z + 1})
	}
	return out
}

type openItem struct {
	pos Position
	f   float64
	g   float64
	h   float64
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Equal f breaks ties toward the smaller heuristic, keeping expansion
// order deterministic across runs.
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].h < o[j].h
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) {
	*o = append(*o, x.(*openItem))
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
