// apps/go-server/internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - FallingTarget / Projectile: the two live entity kinds.
//   - Intent: the held-key snapshot consumed once per tick.
//   - Event: what a round reports upward (progress, time, terminal results).
//   - RoundState: the round-local state machine.

package game

// EntityID identifies a live entity within one session. IDs are never reused
// inside a session.
type EntityID uint64

// FallingTarget is a jamo tile dropping from the top of the play area.
// X is fixed for its lifetime; Y only grows.
type FallingTarget struct {
	ID     EntityID `json:"id"`
	Symbol string   `json:"symbol"`
	Lane   int      `json:"lane"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
}

// Projectile is a bolt fired by the player. X is fixed; Y only shrinks.
type Projectile struct {
	ID EntityID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// Direction of a movement intent.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Intent is the held-key state sampled once per tick.
type Intent struct {
	MoveLeft  bool `json:"moveLeft"`
	MoveRight bool `json:"moveRight"`
}

// EventKind classifies round events.
type EventKind string

const (
	EventProgress      EventKind = "progress"
	EventTimeTick      EventKind = "timeTick"
	EventSpawned       EventKind = "spawned"
	EventRoundWon      EventKind = "roundWon"
	EventRoundTimedOut EventKind = "roundTimedOut"
)

// Event is emitted by Round.Advance. Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind      `json:"kind"`
	Completed int            `json:"completed,omitempty"`
	Mistakes  int            `json:"mistakes,omitempty"`
	Seconds   int            `json:"seconds,omitempty"`
	Target    *FallingTarget `json:"target,omitempty"`
}

// Terminal reports whether the event ends the round.
func (e Event) Terminal() bool {
	return e.Kind == EventRoundWon || e.Kind == EventRoundTimedOut
}

// RoundState is the round-local lifecycle:
//
//	Setup → Active ⇄ Paused → Won | TimedOut
//
// and Aborted when the host quits mid-round.
type RoundState int

const (
	RoundSetup RoundState = iota
	RoundActive
	RoundPaused
	RoundWon
	RoundTimedOut
	RoundAborted
)

func (s RoundState) String() string {
	switch s {
	case RoundSetup:
		return "setup"
	case RoundActive:
		return "active"
	case RoundPaused:
		return "paused"
	case RoundWon:
		return "won"
	case RoundTimedOut:
		return "timedOut"
	case RoundAborted:
		return "aborted"
	}
	return "unknown"
}

// Finished reports whether the state is terminal.
func (s RoundState) Finished() bool {
	return s == RoundWon || s == RoundTimedOut || s == RoundAborted
}
