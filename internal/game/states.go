package game

import (
	"fmt"
	"slices"
)

// GameState is a phase of play. The state manager keeps a stack of them so
// interrupt phases can return to the phase they interrupted.
type GameState int

const (
	StateInitialVillage GameState = iota
	StateInitialRoad
	StateSetupFinished
	StateBeforeRoll
	StateAfterRoll
	StateDiscardResources
	StateMoveThief
	StateStealResource
	StateRoaming
	StateFinish
)

var stateNames = map[GameState]string{
	StateInitialVillage:   "initial_village",
	StateInitialRoad:      "initial_road",
	StateSetupFinished:    "setup_finished",
	StateBeforeRoll:       "before_roll",
	StateAfterRoll:        "after_roll",
	StateDiscardResources: "discard_resources",
	StateMoveThief:        "move_thief",
	StateStealResource:    "steal_resource",
	StateRoaming:          "roaming",
	StateFinish:           "finish",
}

func (s GameState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameState) UnmarshalText(b []byte) error {
	for k, name := range stateNames {
		if name == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", b)
}

// ActionType is an input to the state machine.
type ActionType int

const (
	ActionBuildVillage ActionType = iota
	ActionBuildRoad
	ActionBuildTown
	ActionRollDice
	ActionRollSeven
	ActionDiscardResources
	ActionAllResourcesDiscarded
	ActionMoveThief
	ActionStealResource
	ActionPlaySoldierCard
	ActionPlayRoamingCard
	ActionPlayGathererCard
	ActionPlayWealthCard
	ActionFinishRoaming
	ActionBuyGrowthCard
	ActionTradeWithBank
	ActionMakeTradeOffer
	ActionRespondToTradeOffer
	ActionEmbargoPlayer
	ActionEndTurn
	ActionPlayerHasWon
)

var actionNames = map[ActionType]string{
	ActionBuildVillage:          "build_village",
	ActionBuildRoad:             "build_road",
	ActionBuildTown:             "build_town",
	ActionRollDice:              "roll_dice",
	ActionRollSeven:             "roll_seven",
	ActionDiscardResources:      "discard_resources",
	ActionAllResourcesDiscarded: "all_resources_discarded",
	ActionMoveThief:             "move_thief",
	ActionStealResource:         "steal_resource",
	ActionPlaySoldierCard:       "play_soldier_card",
	ActionPlayRoamingCard:       "play_roaming_card",
	ActionPlayGathererCard:      "play_gatherer_card",
	ActionPlayWealthCard:        "play_wealth_card",
	ActionFinishRoaming:         "finish_roaming",
	ActionBuyGrowthCard:         "buy_growth_card",
	ActionTradeWithBank:         "trade_with_bank",
	ActionMakeTradeOffer:        "make_trade_offer",
	ActionRespondToTradeOffer:   "respond_to_trade_offer",
	ActionEmbargoPlayer:         "embargo_player",
	ActionEndTurn:               "end_turn",
	ActionPlayerHasWon:          "player_has_won",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(b []byte) error {
	for k, name := range actionNames {
		if name == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", b)
}

// TransitionKind says how a transition changes the stack.
type TransitionKind int

const (
	// TransitionKeep replaces the top of the stack.
	TransitionKeep TransitionKind = iota
	// TransitionAdd pushes on top of the current state.
	TransitionAdd
	// TransitionRemove pops the current state.
	TransitionRemove
)

type transitionKey struct {
	from   GameState
	action ActionType
}

type transition struct {
	to   GameState
	kind TransitionKind
}

// StateManager is a pushdown automaton over game states.
type StateManager struct {
	stack       []GameState
	transitions map[transitionKey]transition
}

func newStateManager(initial GameState) *StateManager {
	return &StateManager{
		stack:       []GameState{initial},
		transitions: make(map[transitionKey]transition),
	}
}

func (sm *StateManager) on(from GameState, action ActionType, to GameState, kind TransitionKind) {
	sm.transitions[transitionKey{from, action}] = transition{to: to, kind: kind}
}

// NewSetupStateManager returns the machine used during the snake-draft setup.
func NewSetupStateManager() *StateManager {
	sm := newStateManager(StateInitialVillage)
	sm.on(StateInitialVillage, ActionBuildVillage, StateInitialRoad, TransitionKeep)
	sm.on(StateInitialRoad, ActionBuildRoad, StateSetupFinished, TransitionKeep)
	sm.on(StateSetupFinished, ActionEndTurn, StateInitialVillage, TransitionKeep)
	return sm
}

// NewGameStateManager returns the machine used for the main game.
func NewGameStateManager() *StateManager {
	sm := newStateManager(StateBeforeRoll)

	sm.on(StateBeforeRoll, ActionRollDice, StateAfterRoll, TransitionKeep)
	sm.on(StateBeforeRoll, ActionRollSeven, StateDiscardResources, TransitionAdd)

	for _, s := range []GameState{StateBeforeRoll, StateAfterRoll} {
		sm.on(s, ActionPlaySoldierCard, StateMoveThief, TransitionAdd)
		sm.on(s, ActionPlayRoamingCard, StateRoaming, TransitionAdd)
		sm.on(s, ActionPlayGathererCard, s, TransitionKeep)
		sm.on(s, ActionPlayWealthCard, s, TransitionKeep)
		sm.on(s, ActionEmbargoPlayer, s, TransitionKeep)
	}
	for _, s := range []GameState{StateBeforeRoll, StateAfterRoll, StateRoaming} {
		sm.on(s, ActionPlayerHasWon, StateFinish, TransitionKeep)
	}

	for _, a := range []ActionType{
		ActionBuildRoad,
		ActionBuildVillage,
		ActionBuildTown,
		ActionBuyGrowthCard,
		ActionTradeWithBank,
		ActionMakeTradeOffer,
		ActionRespondToTradeOffer,
	} {
		sm.on(StateAfterRoll, a, StateAfterRoll, TransitionKeep)
	}
	sm.on(StateAfterRoll, ActionEndTurn, StateBeforeRoll, TransitionKeep)

	sm.on(StateDiscardResources, ActionDiscardResources, StateDiscardResources, TransitionKeep)
	sm.on(StateDiscardResources, ActionAllResourcesDiscarded, StateMoveThief, TransitionKeep)
	sm.on(StateMoveThief, ActionMoveThief, StateStealResource, TransitionKeep)
	sm.on(StateStealResource, ActionStealResource, StateStealResource, TransitionRemove)

	sm.on(StateRoaming, ActionBuildRoad, StateRoaming, TransitionKeep)
	sm.on(StateRoaming, ActionFinishRoaming, StateRoaming, TransitionRemove)

	return sm
}

// State returns the top of the stack.
func (sm *StateManager) State() GameState {
	if len(sm.stack) == 0 {
		panic("state manager: empty stack")
	}
	return sm.stack[len(sm.stack)-1]
}

// Stack returns a copy of the stack, bottom first.
func (sm *StateManager) Stack() []GameState {
	return append([]GameState(nil), sm.stack...)
}

// CanApply reports whether action is legal in the current state.
func (sm *StateManager) CanApply(action ActionType) bool {
	_, ok := sm.transitions[transitionKey{sm.State(), action}]
	return ok
}

// Check returns ErrInvalidGamePhase when action is not legal now.
func (sm *StateManager) Check(action ActionType) error {
	if !sm.CanApply(action) {
		return errorf(ErrInvalidGamePhase, "%s is not allowed during %s", action, sm.State())
	}
	return nil
}

// Apply performs the transition for action.
func (sm *StateManager) Apply(action ActionType) error {
	t, ok := sm.transitions[transitionKey{sm.State(), action}]
	if !ok {
		return errorf(ErrInvalidGamePhase, "%s is not allowed during %s", action, sm.State())
	}

	switch t.kind {
	case TransitionKeep:
		sm.stack[len(sm.stack)-1] = t.to
	case TransitionAdd:
		sm.stack = append(sm.stack, t.to)
	case TransitionRemove:
		sm.stack = sm.stack[:len(sm.stack)-1]
		if len(sm.stack) == 0 {
			panic("state manager: popped the last state")
		}
	}
	return nil
}

// ValidActions returns the actions legal in the current state.
func (sm *StateManager) ValidActions() []ActionType {
	var actions []ActionType
	for a := range actionNames {
		if sm.CanApply(a) {
			actions = append(actions, a)
		}
	}
	slices.Sort(actions)
	return actions
}
