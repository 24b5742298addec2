package game

import "github.com/tomz197/survivors/internal/physics"

// EventKind identifies a discrete UI event.
type EventKind int

const (
	EventPauseToggle EventKind = iota
	EventClick                 // Pos in logical screen coordinates
	EventSelect                // Index of the menu button or upgrade offer
	EventBack
)

// Event is a discrete input event delivered with a tick.
type Event struct {
	Kind  EventKind
	Pos   physics.Vec2
	Index int
}

// Input is everything the simulation reads from the player in one tick.
type Input struct {
	Move   physics.Vec2 // Directional intent from held keys, any length
	Events []Event
}
