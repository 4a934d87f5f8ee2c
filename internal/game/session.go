// apps/go-server/internal/game/session.go
//
// Mutable model of one sentence-round.
// A Session is owned by exactly one Round and replaced wholesale when the
// next sentence begins. It is not safe for concurrent use; the host runs it
// from a single goroutine.
//
// Invariants kept by every method:
//   - len(completed) <= len(target) and completed[i] == target[i].
//   - mistakes never decreases.
//   - entity IDs are unique for the life of the session.
//   - 0 <= playerX <= PlayWidth-PlayerWidth.

package game

import (
	"cmp"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/hangul"
)

// Session holds the target sequence, progress and live entities of a round.
type Session struct {
	cfg      Config
	sentence string

	target    []string
	completed []string
	mistakes  int

	targets     *intmap.Map[EntityID, *FallingTarget]
	projectiles *intmap.Map[EntityID, *Projectile]

	playerX  float64
	lastLane int
	nextID   EntityID
}

// NewSession decomposes sentence and returns a fresh session with the player
// centred and no live entities.
func NewSession(cfg Config, sentence string) *Session {
	return &Session{
		cfg:         cfg,
		sentence:    sentence,
		target:      hangul.TargetSequence(sentence),
		completed:   []string{},
		targets:     intmap.New[EntityID, *FallingTarget](16),
		projectiles: intmap.New[EntityID, *Projectile](16),
		playerX:     cfg.PlayWidth/2 - cfg.PlayerWidth/2,
		lastLane:    -1,
	}
}

// Sentence returns the sentence the session was built from.
func (s *Session) Sentence() string { return s.sentence }

// Target returns a copy of the target jamo sequence.
func (s *Session) Target() []string { return slices.Clone(s.target) }

// Completed returns a copy of the matched prefix.
func (s *Session) Completed() []string { return slices.Clone(s.completed) }

// Mistakes is the number of wrong tiles shot this round.
func (s *Session) Mistakes() int { return s.mistakes }

// PlayerX is the player's left edge.
func (s *Session) PlayerX() float64 { return s.playerX }

// Done reports whether every target symbol has been matched.
// A sentence with no jamo is done from the start.
func (s *Session) Done() bool { return len(s.completed) >= len(s.target) }

// NextJamo is the symbol the player needs next; ok is false once done.
func (s *Session) NextJamo() (string, bool) {
	if s.Done() {
		return "", false
	}
	return s.target[len(s.completed)], true
}

// Targets returns copies of the live falling targets ordered by identity.
func (s *Session) Targets() []FallingTarget {
	out := make([]FallingTarget, 0, s.targets.Len())
	for _, t := range s.liveTargets() {
		out = append(out, *t)
	}
	return out
}

// Projectiles returns copies of the live projectiles ordered by identity.
func (s *Session) Projectiles() []Projectile {
	out := make([]Projectile, 0, s.projectiles.Len())
	for _, p := range s.liveProjectiles() {
		out = append(out, *p)
	}
	return out
}

// Shoot launches a projectile from the player's centre at the bottom edge.
// Gating (pause, time left) is the caller's job.
func (s *Session) Shoot() Projectile {
	p := &Projectile{
		ID: s.newID(),
		X:  s.playerX + s.cfg.PlayerWidth/2 - s.cfg.ProjectileHalfWidth,
		Y:  s.cfg.PlayHeight - s.cfg.LaunchOffset,
	}
	s.projectiles.Put(p.ID, p)
	return *p
}

// clear drops every live entity.
func (s *Session) clear() {
	s.targets.Clear()
	s.projectiles.Clear()
}

// credit appends sym to the completed prefix if it is the next needed symbol.
func (s *Session) credit(sym string) bool {
	next, ok := s.NextJamo()
	if !ok || next != sym {
		return false
	}
	s.completed = append(s.completed, sym)
	return true
}

func (s *Session) addTarget(sym string, lane int, x, y float64) *FallingTarget {
	t := &FallingTarget{ID: s.newID(), Symbol: sym, Lane: lane, X: x, Y: y}
	s.targets.Put(t.ID, t)
	return t
}

func (s *Session) newID() EntityID {
	s.nextID++
	return s.nextID
}

// liveTargets returns the stored targets in creation order. intmap iteration
// order is unspecified, so collision resolution sorts to stay deterministic.
func (s *Session) liveTargets() []*FallingTarget {
	out := make([]*FallingTarget, 0, s.targets.Len())
	s.targets.ForEach(func(_ EntityID, t *FallingTarget) bool {
		out = append(out, t)
		return true
	})
	slices.SortFunc(out, func(a, b *FallingTarget) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Session) liveProjectiles() []*Projectile {
	out := make([]*Projectile, 0, s.projectiles.Len())
	s.projectiles.ForEach(func(_ EntityID, p *Projectile) bool {
		out = append(out, p)
		return true
	})
	slices.SortFunc(out, func(a, b *Projectile) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
