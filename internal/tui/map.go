package tui

import (
	"strings"

	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/world"
)

// Each grid cell is a fixed-size box; connections appear as gaps carved
// into the shared edge between two adjacent, connected cells.
const (
	cellW = 14
	cellH = 4
	doorW = 3
)

// renderMap draws the reachable rooms on a character grid, the current
// room marked with a '*'. Rooms a cycle forced onto the same cell simply
// overdraw each other; the layout makes no attempt to untangle them.
func renderMap(g *world.Graph) string {
	l := g.Layout()
	if len(l.Cells) == 0 {
		return "(no rooms)"
	}

	width := l.Cols()*cellW + 1
	height := l.Rows()*cellH + 1
	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = make([]rune, width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	current := g.Current()

	for _, room := range g.Rooms() {
		cell, placed := l.Cells[room.Name]
		if !placed {
			continue
		}
		x0 := (cell.X - l.MinX) * cellW
		y0 := (cell.Y - l.MinY) * cellH

		drawBox(canvas, x0, y0)

		label := []rune(room.Name)
		if current != nil && room.Name == current.Name {
			label = append([]rune{'*'}, label...)
		}
		if len(label) > cellW-3 {
			label = label[:cellW-3]
		}
		lx := x0 + (cellW-len(label))/2 + 1
		for i, r := range label {
			canvas[y0+cellH/2][lx+i] = r
		}
	}

	// Second pass so a neighbor's box can't redraw over a door.
	for _, room := range g.Rooms() {
		cell, placed := l.Cells[room.Name]
		if !placed {
			continue
		}
		x0 := (cell.X - l.MinX) * cellW
		y0 := (cell.Y - l.MinY) * cellH
		for _, dir := range models.Directions {
			next, ok := g.Neighbor(room, dir)
			if !ok {
				continue
			}
			if _, ok := l.Cells[next.Name]; !ok {
				continue
			}
			carveDoor(canvas, x0, y0, dir)
		}
	}

	lines := make([]string, height)
	for y := range canvas {
		lines[y] = strings.TrimRight(string(canvas[y]), " ")
	}
	return strings.Join(lines, "\n")
}

func drawBox(canvas [][]rune, x0, y0 int) {
	for x := x0; x <= x0+cellW; x++ {
		canvas[y0][x] = '-'
		canvas[y0+cellH][x] = '-'
	}
	for y := y0; y <= y0+cellH; y++ {
		canvas[y][x0] = '|'
		canvas[y][x0+cellW] = '|'
	}
	canvas[y0][x0] = '+'
	canvas[y0][x0+cellW] = '+'
	canvas[y0+cellH][x0] = '+'
	canvas[y0+cellH][x0+cellW] = '+'
}

func carveDoor(canvas [][]rune, x0, y0 int, dir models.Direction) {
	switch dir {
	case models.North:
		for i := 0; i < doorW; i++ {
			canvas[y0][x0+cellW/2-doorW/2+i] = ' '
		}
	case models.South:
		for i := 0; i < doorW; i++ {
			canvas[y0+cellH][x0+cellW/2-doorW/2+i] = ' '
		}
	case models.East:
		canvas[y0+cellH/2][x0+cellW] = ' '
	case models.West:
		canvas[y0+cellH/2][x0] = ' '
	}
}
