// Package world holds the in-memory play state for one session: the room
// graph, the player's route, the story variables, and the active event
// and actions.
package world

import (
	"fmt"
	"sort"

	"github.com/tatianab/storywalk/internal/models"
)

// Graph owns the full set of rooms, keyed by name, plus the player's
// position and visitation history. Connections are one-directional:
// connecting A to B going north says nothing about going south from B.
type Graph struct {
	rooms   map[string]*models.Room
	current string
	history []string
}

func NewGraph() *Graph {
	return &Graph{rooms: make(map[string]*models.Room)}
}

// AddRoom inserts a room. The first room added becomes the current room
// and is recorded as the start of the visitation history. A duplicate
// name is a configuration error.
func (g *Graph) AddRoom(r *models.Room) error {
	if _, ok := g.rooms[r.Name]; ok {
		return fmt.Errorf("duplicate room name %q", r.Name)
	}
	g.rooms[r.Name] = r
	if g.current == "" {
		g.current = r.Name
		g.history = append(g.history, r.Name)
	}
	return nil
}

// Connect wires room a's exit in the given direction to room b. The
// reverse connection is not created. Both rooms must already exist.
func (g *Graph) Connect(a, b string, dir models.Direction) error {
	ra, ok := g.rooms[a]
	if !ok {
		return fmt.Errorf("connect %s->%s: unknown room %q", a, b, a)
	}
	if _, ok := g.rooms[b]; !ok {
		return fmt.Errorf("connect %s->%s: unknown room %q", a, b, b)
	}
	ra.Connections[dir] = b
	return nil
}

// ConnectBoth wires both directions at once. The shipped world data
// lists each direction explicitly, so the loader never calls this; it
// exists for hand-built worlds and tests.
func (g *Graph) ConnectBoth(a, b string, dir models.Direction) error {
	if err := g.Connect(a, b, dir); err != nil {
		return err
	}
	return g.Connect(b, a, dir.Opposite())
}

// Room looks up a room by name.
func (g *Graph) Room(name string) (*models.Room, bool) {
	r, ok := g.rooms[name]
	return r, ok
}

// Current returns the room the player is in, or nil before any room has
// been added.
func (g *Graph) Current() *models.Room {
	if g.current == "" {
		return nil
	}
	return g.rooms[g.current]
}

// Neighbor resolves the room connected to from in the given direction.
func (g *Graph) Neighbor(from *models.Room, dir models.Direction) (*models.Room, bool) {
	if from == nil {
		return nil, false
	}
	name := from.Connections[dir]
	if name == "" {
		return nil, false
	}
	r, ok := g.rooms[name]
	return r, ok
}

// Move steps the current room in the given direction and appends the
// destination to the visitation history. Returns the new room, or false
// when the direction is closed.
func (g *Graph) Move(dir models.Direction) (*models.Room, bool) {
	next, ok := g.Neighbor(g.Current(), dir)
	if !ok {
		return nil, false
	}
	g.current = next.Name
	g.history = append(g.history, next.Name)
	return next, true
}

// stepBack undoes the most recent Move, restoring the previous current
// room and truncating the history. Used to keep a move atomic when the
// generator call backing it fails.
func (g *Graph) stepBack() {
	if len(g.history) < 2 {
		return
	}
	g.history = g.history[:len(g.history)-1]
	g.current = g.history[len(g.history)-1]
}

// History returns a copy of the visitation history, oldest first.
func (g *Graph) History() []string {
	out := make([]string, len(g.history))
	copy(out, g.history)
	return out
}

// Rooms returns every owned room, sorted by name.
func (g *Graph) Rooms() []*models.Room {
	names := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*models.Room, 0, len(names))
	for _, name := range names {
		out = append(out, g.rooms[name])
	}
	return out
}

// Len returns the number of rooms in the graph.
func (g *Graph) Len() int { return len(g.rooms) }

// FromDefinition builds a graph from a validated world definition.
func FromDefinition(def *models.WorldDef) (*Graph, error) {
	g := NewGraph()
	for _, rd := range def.Rooms {
		if err := g.AddRoom(models.NewRoom(rd.Name, rd.Description, rd.ImagePrompt, rd.CanonEvent)); err != nil {
			return nil, err
		}
	}
	for _, cd := range def.Connections {
		dir, err := models.ParseDirection(cd.Direction)
		if err != nil {
			return nil, err
		}
		if err := g.Connect(cd.Room1, cd.Room2, dir); err != nil {
			return nil, err
		}
	}
	return g, nil
}
