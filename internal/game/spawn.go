// apps/go-server/internal/game/spawn.go
//
// Spawn Scheduler body. Round calls Spawn once every SpawnInterval of
// active play; the pacing lives there, the choice of tile lives here.

package game

import "math/rand/v2"

// Spawn drops a new falling target and reports whether it did.
//
// Nothing spawns once the round is done or while live targets exceed the cap.
// The tile is the next needed symbol with probability SpawnTargetProbability,
// otherwise a distractor that differs from it. The lane never repeats the
// previous spawn's lane.
func (s *Session) Spawn(rng *rand.Rand) (FallingTarget, bool) {
	next, ok := s.NextJamo()
	if !ok || s.targets.Len() > s.cfg.TargetCap {
		return FallingTarget{}, false
	}
	lanes := s.cfg.Lanes()
	if len(lanes) == 0 {
		return FallingTarget{}, false
	}

	sym := next
	if rng.Float64() >= s.cfg.SpawnTargetProbability {
		sym = s.pickDistractor(rng, next)
	}

	lane := s.pickLane(rng, len(lanes))
	s.lastLane = lane

	t := s.addTarget(sym, lane, lanes[lane], s.cfg.SpawnY)
	return *t, true
}

// pickDistractor samples the alphabet until it finds a symbol other than
// avoid. After MaxResample misses it takes the first different symbol in
// alphabet order, or accepts the repeat when the alphabet has nothing else.
func (s *Session) pickDistractor(rng *rand.Rand, avoid string) string {
	alpha := s.cfg.alphabet()
	if len(alpha) == 0 {
		return avoid
	}
	for i := 0; i < s.cfg.MaxResample; i++ {
		if sym := alpha[rng.IntN(len(alpha))]; sym != avoid && sym != "" {
			return sym
		}
	}
	for _, sym := range alpha {
		if sym != avoid && sym != "" {
			return sym
		}
	}
	return avoid
}

// pickLane samples a lane index different from the last one used, with the
// same bounded-retry shape as pickDistractor. A single lane always repeats.
func (s *Session) pickLane(rng *rand.Rand, n int) int {
	if n == 1 {
		return 0
	}
	for i := 0; i < s.cfg.MaxResample; i++ {
		if lane := rng.IntN(n); lane != s.lastLane {
			return lane
		}
	}
	return (s.lastLane + 1) % n
}
