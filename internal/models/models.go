package models

import (
	"fmt"

	"github.com/tatianab/storywalk/internal/vars"
)

// Direction is one of the four cardinal directions rooms connect through.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists the cardinal directions in a fixed order so traversal
// and layout stay deterministic.
var Directions = [4]Direction{North, South, East, West}

// ParseDirection validates a direction string from world data.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case North, South, East, West:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Room is a single location in the world. Connections hold the names of
// neighboring rooms rather than pointers; the graph owns all rooms and
// resolves names on traversal. The map always has exactly four entries,
// one per cardinal direction, with "" meaning no connection.
type Room struct {
	Name        string
	Description string
	ImagePrompt string
	CanonEvent  string
	ImagePath   string
	Connections map[Direction]string
}

// NewRoom builds a room with all four directions closed.
func NewRoom(name, description, imagePrompt, canonEvent string) *Room {
	return &Room{
		Name:        name,
		Description: description,
		ImagePrompt: imagePrompt,
		CanonEvent:  canonEvent,
		Connections: map[Direction]string{
			North: "",
			South: "",
			East:  "",
			West:  "",
		},
	}
}

// Event is the narrative text active in the current room, flagged as
// canon (the fixed reference text) or non-canon (improvised).
type Event struct {
	Text  string
	Canon bool
}

// Action is a player choice: a description plus the variable values that
// would be assigned if the action is taken. Actions are ephemeral; a
// fresh set replaces the old one on every room entry and after every
// action taken.
type Action struct {
	Description string
	Changes     map[string]vars.Value
}
