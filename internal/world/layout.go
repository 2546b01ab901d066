package world

import "github.com/tatianab/storywalk/internal/models"

// Cell is an integer grid coordinate. Y grows southward so north is up
// on screen.
type Cell struct {
	X, Y int
}

// Layout maps every room reachable from the traversal root to a grid
// cell, with bounding extents so a renderer can size its canvas to fit.
type Layout struct {
	Cells                  map[string]Cell
	MinX, MaxX, MinY, MaxY int
}

var offsets = map[models.Direction]Cell{
	models.North: {0, -1},
	models.South: {0, 1},
	models.East:  {1, 0},
	models.West:  {-1, 0},
}

// Cols returns the number of grid columns spanned by the layout.
func (l Layout) Cols() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return l.MaxX - l.MinX + 1
}

// Rows returns the number of grid rows spanned by the layout.
func (l Layout) Rows() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return l.MaxY - l.MinY + 1
}

// Layout places every room reachable from the current room onto the
// grid, breadth first, starting the current room at (0,0).
func (g *Graph) Layout() Layout {
	if g.current == "" {
		return Layout{Cells: map[string]Cell{}}
	}
	return g.LayoutFrom(g.current)
}

// LayoutFrom runs the breadth-first placement from a chosen root. Each
// room keeps its first-assigned cell: a cycle whose offsets don't sum to
// zero will place rooms inconsistently with some of its connections, and
// no conflict resolution is attempted.
func (g *Graph) LayoutFrom(root string) Layout {
	start, ok := g.rooms[root]
	if !ok {
		return Layout{Cells: map[string]Cell{}}
	}

	l := Layout{Cells: map[string]Cell{start.Name: {0, 0}}}
	queue := []*models.Room{start}

	for len(queue) > 0 {
		room := queue[0]
		queue = queue[1:]
		at := l.Cells[room.Name]

		for _, dir := range models.Directions {
			next, ok := g.Neighbor(room, dir)
			if !ok {
				continue
			}
			if _, placed := l.Cells[next.Name]; placed {
				continue
			}
			off := offsets[dir]
			cell := Cell{at.X + off.X, at.Y + off.Y}
			l.Cells[next.Name] = cell
			queue = append(queue, next)

			if cell.X < l.MinX {
				l.MinX = cell.X
			}
			if cell.X > l.MaxX {
				l.MaxX = cell.X
			}
			if cell.Y < l.MinY {
				l.MinY = cell.Y
			}
			if cell.Y > l.MaxY {
				l.MaxY = cell.Y
			}
		}
	}
	return l
}
