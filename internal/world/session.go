package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/vars"
)

// ErrGeneration marks a failed generator call. The session is left in
// its pre-call state, so the caller can offer a retry.
var ErrGeneration = errors.New("generation failed")

// Generator produces improvised events and fresh action sets. The
// production implementation lives in the engine package; tests inject a
// fake.
type Generator interface {
	NonCanonEvent(ctx context.Context, room *models.Room, seen []models.Event) (string, error)
	Actions(ctx context.Context, room *models.Room, event models.Event, variables *vars.Store) ([]models.Action, error)
}

// Session is the play-session facade: it ties the room graph, the canon
// route tracking, the variable store, and the generator together. All
// methods run on a single goroutine; the generator calls are the only
// operations that block.
type Session struct {
	graph *Graph
	store *vars.Store
	gen   Generator

	reference []string
	event     models.Event
	seen      []models.Event
	actions   []models.Action
}

// NewSession starts a session in the graph's current room: the room's
// fixed canon event becomes the active event and an initial action set
// is generated. A generator failure here is fatal, since the session
// must not start half-built.
func NewSession(ctx context.Context, g *Graph, store *vars.Store, gen Generator, reference []string) (*Session, error) {
	start := g.Current()
	if start == nil {
		return nil, fmt.Errorf("session requires a graph with at least one room")
	}
	s := &Session{
		graph:     g,
		store:     store,
		gen:       gen,
		reference: reference,
		event:     models.Event{Text: start.CanonEvent, Canon: true},
	}
	s.seen = append(s.seen, s.event)
	actions, err := gen.Actions(ctx, start, s.event, store)
	if err != nil {
		return nil, fmt.Errorf("%w: initial actions: %v", ErrGeneration, err)
	}
	s.actions = actions
	return s, nil
}

// OnCanon reports whether the visitation history still matches the
// reference order. The history, truncated to the reference length, must
// equal the corresponding reference prefix element-wise. Recomputed from
// scratch on every call.
func (s *Session) OnCanon() bool {
	history := s.graph.history
	n := len(history)
	if len(s.reference) < n {
		n = len(s.reference)
	}
	for i := 0; i < n; i++ {
		if history[i] != s.reference[i] {
			return false
		}
	}
	return true
}

// eventFor picks the event for a room: the fixed canon text while the
// route is on-canon, otherwise an improvised event conditioned on
// everything seen so far.
func (s *Session) eventFor(ctx context.Context, room *models.Room) (models.Event, error) {
	if s.OnCanon() {
		return models.Event{Text: room.CanonEvent, Canon: true}, nil
	}
	text, err := s.gen.NonCanonEvent(ctx, room, s.seen)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{Text: text, Canon: false}, nil
}

// Enter activates a room: it resolves the room's event through the canon
// tracker and replaces the action set. Nothing is committed unless both
// generator-backed steps succeed.
func (s *Session) Enter(ctx context.Context, room *models.Room) error {
	event, err := s.eventFor(ctx, room)
	if err != nil {
		return fmt.Errorf("%w: event for %s: %v", ErrGeneration, room.Name, err)
	}
	actions, err := s.gen.Actions(ctx, room, event, s.store)
	if err != nil {
		return fmt.Errorf("%w: actions for %s: %v", ErrGeneration, room.Name, err)
	}
	s.event = event
	s.seen = append(s.seen, event)
	s.actions = actions
	return nil
}

// Move steps in the given direction and enters the destination room. A
// closed direction is a no-op, not an error. If the generator fails the
// move is rolled back: current room, history, event, and actions all
// keep their pre-call values.
func (s *Session) Move(ctx context.Context, dir models.Direction) (bool, error) {
	next, ok := s.graph.Move(dir)
	if !ok {
		return false, nil
	}
	if err := s.Enter(ctx, next); err != nil {
		s.graph.stepBack()
		return false, err
	}
	return true, nil
}

// TakeAction applies the action's variable changes and regenerates the
// action set for the current room. The event does not change. The store
// is only swapped in once the generator call succeeds, so a failure
// leaves the variables untouched.
func (s *Session) TakeAction(ctx context.Context, action models.Action) error {
	next := s.store.Clone()
	next.Apply(action.Changes)
	actions, err := s.gen.Actions(ctx, s.graph.Current(), s.event, next)
	if err != nil {
		return fmt.Errorf("%w: actions after %q: %v", ErrGeneration, action.Description, err)
	}
	s.store = next
	s.actions = actions
	return nil
}

// Actionable reports whether the action would change at least one
// tracked variable. A UI affordance only; it does not block TakeAction.
func (s *Session) Actionable(action models.Action) bool {
	return s.store.Actionable(action.Changes)
}

// Graph exposes the room graph for map rendering.
func (s *Session) Graph() *Graph { return s.graph }

// CurrentRoom returns the room the player is in.
func (s *Session) CurrentRoom() *models.Room { return s.graph.Current() }

// CurrentEvent returns the active event for the current room.
func (s *Session) CurrentEvent() models.Event { return s.event }

// VisitedRooms returns the visitation history, oldest first.
func (s *Session) VisitedRooms() []string { return s.graph.History() }

// Variables returns the live variable store.
func (s *Session) Variables() *vars.Store { return s.store }

// Actions returns the current action set.
func (s *Session) Actions() []models.Action { return s.actions }
