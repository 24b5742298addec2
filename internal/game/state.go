package game

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a state change the machine does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the current phase of the game.
type State int

const (
	StateStartMenu State = iota
	StateShop
	StateCredits
	StatePlaying
	StatePaused
	StateLevelUp
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStartMenu:
		return "START_MENU"
	case StateShop:
		return "SHOP"
	case StateCredits:
		return "CREDITS"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateLevelUp:
		return "LEVEL_UP"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// InRun reports whether a run is in progress in this state.
func (s State) InRun() bool {
	return s == StatePlaying || s == StatePaused || s == StateLevelUp
}

var transitions = map[State][]State{
	StateStartMenu: {StatePlaying, StateShop, StateCredits},
	StateShop:      {StateStartMenu},
	StateCredits:   {StateStartMenu},
	StatePlaying:   {StatePaused, StateLevelUp, StateGameOver},
	StatePaused:    {StatePlaying, StateStartMenu},
	StateLevelUp:   {StatePlaying},
	StateGameOver:  {StatePlaying, StateStartMenu},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}
