package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldDef is the static world definition consumed at session start:
// rooms, directed connections, the canonical visit order, and the
// initial variable lines.
type WorldDef struct {
	Rooms       []RoomDef       `yaml:"rooms"`
	Connections []ConnectionDef `yaml:"connections"`
	VisitOrder  []string        `yaml:"visit_order"`
	Variables   []string        `yaml:"variables"`
}

// RoomDef is a room as it appears in the world file.
type RoomDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ImagePrompt string `yaml:"image_prompt"`
	CanonEvent  string `yaml:"canon_event"`
}

// ConnectionDef is a one-directional connection between two named rooms.
// Connecting room1 to room2 going north does not connect room2 back
// south; the reverse direction must be listed explicitly.
type ConnectionDef struct {
	Room1     string `yaml:"room1"`
	Room2     string `yaml:"room2"`
	Direction string `yaml:"direction"`
}

// LoadWorld reads and validates a world definition file. Validation
// failures are configuration errors: the session must not start from an
// inconsistent definition.
func LoadWorld(path string) (*WorldDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def WorldDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing world file %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("world file %s: %w", path, err)
	}
	return &def, nil
}

// Validate checks the definition for duplicate room names, connections
// or visit-order entries referencing missing rooms, and unknown
// directions.
func (w *WorldDef) Validate() error {
	if len(w.Rooms) == 0 {
		return fmt.Errorf("no rooms defined")
	}
	names := make(map[string]bool, len(w.Rooms))
	for _, r := range w.Rooms {
		if r.Name == "" {
			return fmt.Errorf("room with empty name")
		}
		if names[r.Name] {
			return fmt.Errorf("duplicate room name %q", r.Name)
		}
		names[r.Name] = true
	}
	for _, c := range w.Connections {
		if !names[c.Room1] {
			return fmt.Errorf("connection references unknown room %q", c.Room1)
		}
		if !names[c.Room2] {
			return fmt.Errorf("connection references unknown room %q", c.Room2)
		}
		if _, err := ParseDirection(c.Direction); err != nil {
			return fmt.Errorf("connection %s->%s: %w", c.Room1, c.Room2, err)
		}
	}
	for _, name := range w.VisitOrder {
		if !names[name] {
			return fmt.Errorf("visit order references unknown room %q", name)
		}
	}
	return nil
}

// Save writes the definition back out as YAML, used by the world
// generator tooling.
func (w *WorldDef) Save(path string) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
