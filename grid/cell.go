package grid

// CellType classifies one occupancy cell.
type CellType int

const (
	CellEmpty CellType = iota
	CellObstacle
	CellSlow
	CellTeleportIn
	CellTeleportOut
)

func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellObstacle:
		return "obstacle"
	case CellSlow:
		return "slow"
	case CellTeleportIn:
		return "teleport_in"
	case CellTeleportOut:
		return "teleport_out"
	}
	return "unknown"
}

// Walkable reports whether cells of this type can be traversed.
// Only obstacles block movement; any type added later is traversable
// until it opts out here.
func (t CellType) Walkable() bool {
	switch t {
	case CellObstacle:
		return false
	case CellEmpty, CellSlow, CellTeleportIn, CellTeleportOut:
		return true
	}
	return true
}

// Cell is one occupancy unit of a grid. Cells are value records; edits
// go through Grid.WithCellType which replaces the whole matrix.
type Cell struct {
	X    int
	Z    int
	Type CellType
}

// Walkable reports whether this cell can be traversed.
func (c Cell) Walkable() bool {
	return c.Type.Walkable()
}
