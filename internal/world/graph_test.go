package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/storywalk/internal/models"
)

func room(name string) *models.Room {
	return models.NewRoom(name, name+" description", name+" prompt", name+" canon event")
}

func TestAddRoomFirstBecomesCurrent(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("Bridge")))
	require.NoError(t, g.AddRoom(room("Armory")))

	require.NotNil(t, g.Current())
	assert.Equal(t, "Bridge", g.Current().Name)
	assert.Equal(t, []string{"Bridge"}, g.History())
	assert.Equal(t, 2, g.Len())
}

func TestAddRoomDuplicateName(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("Bridge")))
	err := g.AddRoom(room("Bridge"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate room name")
}

func TestConnectIsOneDirectional(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("A")))
	require.NoError(t, g.AddRoom(room("B")))
	require.NoError(t, g.Connect("A", "B", models.North))

	a, _ := g.Room("A")
	b, _ := g.Room("B")
	assert.Equal(t, "B", a.Connections[models.North])
	assert.Equal(t, "", b.Connections[models.South], "reverse connection must not appear")
}

func TestConnectBoth(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("A")))
	require.NoError(t, g.AddRoom(room("B")))
	require.NoError(t, g.ConnectBoth("A", "B", models.East))

	a, _ := g.Room("A")
	b, _ := g.Room("B")
	assert.Equal(t, "B", a.Connections[models.East])
	assert.Equal(t, "A", b.Connections[models.West])
}

func TestConnectUnknownRoom(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("A")))
	assert.Error(t, g.Connect("A", "Nowhere", models.North))
	assert.Error(t, g.Connect("Nowhere", "A", models.North))
}

func TestMove(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("A")))
	require.NoError(t, g.AddRoom(room("B")))
	require.NoError(t, g.Connect("A", "B", models.North))

	next, ok := g.Move(models.North)
	require.True(t, ok)
	assert.Equal(t, "B", next.Name)
	assert.Equal(t, []string{"A", "B"}, g.History())

	// B has no exits at all; every direction is a no-op.
	_, ok = g.Move(models.South)
	assert.False(t, ok)
	assert.Equal(t, "B", g.Current().Name)
	assert.Equal(t, []string{"A", "B"}, g.History())
}

func TestFromDefinition(t *testing.T) {
	def := &models.WorldDef{
		Rooms: []models.RoomDef{
			{Name: "A", Description: "start"},
			{Name: "B", Description: "next"},
		},
		Connections: []models.ConnectionDef{
			{Room1: "A", Room2: "B", Direction: "north"},
		},
		VisitOrder: []string{"A", "B"},
	}
	g, err := FromDefinition(def)
	require.NoError(t, err)
	assert.Equal(t, "A", g.Current().Name)

	a, _ := g.Room("A")
	assert.Equal(t, "B", a.Connections[models.North])
	b, _ := g.Room("B")
	assert.Equal(t, "", b.Connections[models.South])
}

func TestRoomsSorted(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddRoom(room("C")))
	require.NoError(t, g.AddRoom(room("A")))
	require.NoError(t, g.AddRoom(room("B")))

	var names []string
	for _, r := range g.Rooms() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}
