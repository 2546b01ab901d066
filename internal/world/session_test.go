package world

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/vars"
)

// fakeGenerator is the stub generator used in place of the Gemini
// engine. Calls are counted and each response can be forced to fail.
type fakeGenerator struct {
	eventCalls   int
	actionCalls  int
	failEvents   bool
	failActions  bool
	lastSeen     []models.Event
	lastVarLines []string
}

func (f *fakeGenerator) NonCanonEvent(_ context.Context, room *models.Room, seen []models.Event) (string, error) {
	f.eventCalls++
	f.lastSeen = seen
	if f.failEvents {
		return "", errors.New("model unavailable")
	}
	return "improvised event in " + room.Name, nil
}

func (f *fakeGenerator) Actions(_ context.Context, room *models.Room, _ models.Event, variables *vars.Store) ([]models.Action, error) {
	f.actionCalls++
	f.lastVarLines = variables.Lines()
	if f.failActions {
		return nil, errors.New("model unavailable")
	}
	return []models.Action{
		{
			Description: fmt.Sprintf("search %s", room.Name),
			Changes:     map[string]vars.Value{"health": vars.IntValue(90)},
		},
	}, nil
}

func newTestSession(t *testing.T, gen Generator, reference []string) *Session {
	t.Helper()
	g := buildGraph(t,
		[]string{"A", "B", "C"},
		[][3]string{
			{"A", "B", "north"},
			{"B", "C", "east"},
			{"A", "C", "east"},
		})
	store, err := vars.Parse([]string{"health: 100", "is_armed: false"})
	require.NoError(t, err)

	s, err := NewSession(context.Background(), g, store, gen, reference)
	require.NoError(t, err)
	return s
}

func TestNewSessionStartsWithCanonEvent(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})

	assert.Equal(t, "A", s.CurrentRoom().Name)
	assert.Equal(t, models.Event{Text: "A canon event", Canon: true}, s.CurrentEvent())
	assert.Equal(t, []string{"A"}, s.VisitedRooms())
	assert.Len(t, s.Actions(), 1)
	assert.Equal(t, 1, gen.actionCalls)
	assert.Equal(t, 0, gen.eventCalls, "canon start needs no generation")
}

func TestNewSessionFailsWhenInitialActionsFail(t *testing.T) {
	g := buildGraph(t, []string{"A"}, nil)
	store, err := vars.Parse(nil)
	require.NoError(t, err)

	_, err = NewSession(context.Background(), g, store, &fakeGenerator{failActions: true}, nil)
	require.ErrorIs(t, err, ErrGeneration)
}

func TestOnCanonPrefixMatch(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})

	// History [A] vs reference [A, B]: still on canon.
	assert.True(t, s.OnCanon())

	moved, err := s.Move(context.Background(), models.North)
	require.NoError(t, err)
	require.True(t, moved)
	assert.True(t, s.OnCanon())

	// History [A, B, C] is longer than the reference; the comparison
	// truncates to the reference length, so the route stays canon.
	moved, err = s.Move(context.Background(), models.East)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, []string{"A", "B", "C"}, s.VisitedRooms())
	assert.True(t, s.OnCanon())
	assert.Equal(t, 0, gen.eventCalls)
}

func TestOnCanonDivergence(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})

	// A east to C diverges from the reference [A, B].
	moved, err := s.Move(context.Background(), models.East)
	require.NoError(t, err)
	require.True(t, moved)

	assert.Equal(t, []string{"A", "C"}, s.VisitedRooms())
	assert.False(t, s.OnCanon())
	assert.False(t, s.OnCanon(), "divergence is stable across calls")

	ev := s.CurrentEvent()
	assert.False(t, ev.Canon)
	assert.Equal(t, "improvised event in C", ev.Text)
	assert.Equal(t, 1, gen.eventCalls)

	// The generator saw every prior event but not the one it produced.
	require.Len(t, gen.lastSeen, 1)
	assert.Equal(t, "A canon event", gen.lastSeen[0].Text)
}

func TestMoveClosedDirectionIsNoOp(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})
	before := gen.actionCalls

	moved, err := s.Move(context.Background(), models.South)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, "A", s.CurrentRoom().Name)
	assert.Equal(t, []string{"A"}, s.VisitedRooms())
	assert.Equal(t, before, gen.actionCalls)
}

func TestMoveRollsBackOnGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{}
	g := buildGraph(t, []string{"A", "B"}, [][3]string{{"A", "B", "north"}})
	store, err := vars.Parse([]string{"health: 100"})
	require.NoError(t, err)

	s, err := NewSession(context.Background(), g, store, gen, []string{"A"})
	require.NoError(t, err)

	gen.failActions = true
	actionsBefore := s.Actions()
	eventBefore := s.CurrentEvent()

	moved, err := s.Move(context.Background(), models.North)
	require.ErrorIs(t, err, ErrGeneration)
	assert.False(t, moved)

	// No partial transition: room, history, event, and actions untouched.
	assert.Equal(t, "A", s.CurrentRoom().Name)
	assert.Equal(t, []string{"A"}, s.VisitedRooms())
	assert.Equal(t, eventBefore, s.CurrentEvent())
	assert.Equal(t, actionsBefore, s.Actions())
}

func TestTakeActionAppliesAndRegenerates(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})
	eventBefore := s.CurrentEvent()

	err := s.TakeAction(context.Background(), models.Action{
		Description: "drink the vial",
		Changes: map[string]vars.Value{
			"health":  vars.IntValue(42),
			"unknown": vars.BoolValue(true),
		},
	})
	require.NoError(t, err)

	health, _ := s.Variables().Get("health")
	assert.Equal(t, vars.IntValue(42), health)
	_, tracked := s.Variables().Get("unknown")
	assert.False(t, tracked)

	// The regeneration saw the post-apply variables; the event is unchanged.
	assert.Contains(t, gen.lastVarLines, "health: 42")
	assert.Equal(t, eventBefore, s.CurrentEvent())
	assert.Equal(t, 2, gen.actionCalls)
}

func TestTakeActionRollsBackOnGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})

	gen.failActions = true
	err := s.TakeAction(context.Background(), models.Action{
		Description: "drink the vial",
		Changes:     map[string]vars.Value{"health": vars.IntValue(1)},
	})
	require.ErrorIs(t, err, ErrGeneration)

	health, _ := s.Variables().Get("health")
	assert.Equal(t, vars.IntValue(100), health, "failed call must not leave variables partially applied")
}

func TestActionable(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(t, gen, []string{"A", "B"})

	assert.True(t, s.Actionable(models.Action{Changes: map[string]vars.Value{"health": vars.IntValue(1)}}))
	assert.False(t, s.Actionable(models.Action{Changes: map[string]vars.Value{"mana": vars.IntValue(1)}}))
}

func TestOffCanonEventGenerationFailureRollsBackMove(t *testing.T) {
	gen := &fakeGenerator{failEvents: true}
	s := newTestSession(t, gen, []string{"A", "B"})

	moved, err := s.Move(context.Background(), models.East)
	require.ErrorIs(t, err, ErrGeneration)
	assert.False(t, moved)
	assert.Equal(t, "A", s.CurrentRoom().Name)
	assert.Equal(t, []string{"A"}, s.VisitedRooms())
	assert.True(t, s.OnCanon(), "rolled-back history stays on canon")
}
