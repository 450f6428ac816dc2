package game

import (
	"errors"
	"slices"
	"testing"
)

func applyAll(t *testing.T, sm *StateManager, actions ...ActionType) {
	t.Helper()
	for _, a := range actions {
		if err := sm.Apply(a); err != nil {
			t.Fatalf("Apply(%s): %v", a, err)
		}
	}
}

func TestSetupStateCycle(t *testing.T) {
	sm := NewSetupStateManager()
	if sm.State() != StateInitialVillage {
		t.Fatalf("initial state = %s", sm.State())
	}

	applyAll(t, sm, ActionBuildVillage)
	if sm.State() != StateInitialRoad {
		t.Errorf("after village: %s", sm.State())
	}
	applyAll(t, sm, ActionBuildRoad)
	if sm.State() != StateSetupFinished {
		t.Errorf("after road: %s", sm.State())
	}
	applyAll(t, sm, ActionEndTurn)
	if sm.State() != StateInitialVillage {
		t.Errorf("after end turn: %s", sm.State())
	}

	if err := sm.Check(ActionRollDice); !errors.Is(err, ErrInvalidGamePhase) {
		t.Errorf("roll during setup: got %v", err)
	}
}

func TestInvalidActionLeavesStack(t *testing.T) {
	sm := NewGameStateManager()
	before := sm.Stack()
	if err := sm.Apply(ActionBuildTown); !errors.Is(err, ErrInvalidGamePhase) {
		t.Fatalf("build before roll: got %v", err)
	}
	if !slices.Equal(sm.Stack(), before) {
		t.Errorf("stack changed to %v", sm.Stack())
	}
}

func TestSevenInterruptsBeforeRoll(t *testing.T) {
	sm := NewGameStateManager()

	applyAll(t, sm, ActionRollSeven)
	if want := []GameState{StateBeforeRoll, StateDiscardResources}; !slices.Equal(sm.Stack(), want) {
		t.Fatalf("stack = %v, want %v", sm.Stack(), want)
	}
	applyAll(t, sm, ActionDiscardResources, ActionAllResourcesDiscarded, ActionMoveThief)
	if sm.State() != StateStealResource {
		t.Fatalf("state = %s, want steal_resource", sm.State())
	}
	applyAll(t, sm, ActionStealResource)
	if want := []GameState{StateBeforeRoll}; !slices.Equal(sm.Stack(), want) {
		t.Fatalf("stack after steal = %v, want %v", sm.Stack(), want)
	}
	applyAll(t, sm, ActionRollDice)
	if sm.State() != StateAfterRoll {
		t.Errorf("state = %s, want after_roll", sm.State())
	}
}

func TestRoamingReturnsToInterruptedState(t *testing.T) {
	sm := NewGameStateManager()
	applyAll(t, sm, ActionRollDice, ActionPlayRoamingCard)
	if want := []GameState{StateAfterRoll, StateRoaming}; !slices.Equal(sm.Stack(), want) {
		t.Fatalf("stack = %v, want %v", sm.Stack(), want)
	}
	applyAll(t, sm, ActionBuildRoad, ActionBuildRoad, ActionFinishRoaming)
	if sm.State() != StateAfterRoll {
		t.Errorf("state = %s, want after_roll", sm.State())
	}
	if err := sm.Check(ActionRollDice); err == nil {
		t.Error("second roll allowed")
	}
}

func TestSoldierAfterRollReturnsToAfterRoll(t *testing.T) {
	sm := NewGameStateManager()
	applyAll(t, sm, ActionRollDice, ActionPlaySoldierCard)
	if want := []GameState{StateAfterRoll, StateMoveThief}; !slices.Equal(sm.Stack(), want) {
		t.Fatalf("stack = %v, want %v", sm.Stack(), want)
	}
	applyAll(t, sm, ActionMoveThief, ActionStealResource)
	if want := []GameState{StateAfterRoll}; !slices.Equal(sm.Stack(), want) {
		t.Errorf("stack after steal = %v, want %v", sm.Stack(), want)
	}
	if err := sm.Check(ActionEndTurn); err != nil {
		t.Errorf("end turn after soldier: %v", err)
	}
}

func TestFinishAcceptsNothing(t *testing.T) {
	sm := NewGameStateManager()
	applyAll(t, sm, ActionPlayerHasWon)
	if sm.State() != StateFinish {
		t.Fatalf("state = %s", sm.State())
	}
	if actions := sm.ValidActions(); len(actions) != 0 {
		t.Errorf("valid actions after finish: %v", actions)
	}
}

func TestValidActionsBeforeRoll(t *testing.T) {
	got := NewGameStateManager().ValidActions()
	want := []ActionType{
		ActionRollDice,
		ActionRollSeven,
		ActionPlaySoldierCard,
		ActionPlayRoamingCard,
		ActionPlayGathererCard,
		ActionPlayWealthCard,
		ActionEmbargoPlayer,
		ActionPlayerHasWon,
	}
	if !slices.Equal(got, want) {
		t.Errorf("ValidActions = %v, want %v", got, want)
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	for s := range stateNames {
		text, _ := s.MarshalText()
		var got GameState
		if err := got.UnmarshalText(text); err != nil || got != s {
			t.Errorf("%s: got %s, %v", s, got, err)
		}
	}
}
