// apps/go-server/internal/game/step.go
//
// Tick Engine body: one fixed simulation step.
//
// Order inside a tick:
//  1. player movement from the held-key intent
//  2. collision resolution (projectile × target)
//  3. projectile motion, dropping those past the top edge
//  4. target motion, dropping those past the bottom edge (no penalty)
//
// The symbol the player needs is read once, before any mutation, so hits
// landing in the same tick are all judged against the same symbol.

package game

// StepResult describes what happened during one Step.
type StepResult struct {
	Hits     []FallingTarget // correct tiles, appended to the completed sequence
	Misses   []FallingTarget // wrong tiles, each counted as a mistake
	Spent    []FallingTarget // correct tiles that arrived after the next slot was already filled
	Expired  int             // projectiles that left through the top
	Escaped  int             // targets that left through the bottom
	Finished bool            // the completed sequence reached full length on this tick
}

// Scored reports whether the tick changed completed count or mistakes.
func (r StepResult) Scored() bool {
	return len(r.Hits) > 0 || len(r.Misses) > 0
}

// Step advances the session by one tick.
// Once the round is done only the player moves; entities freeze in place
// while the host waits out the win delay.
func (s *Session) Step(in Intent) StepResult {
	var res StepResult

	s.movePlayer(in)

	next, ok := s.NextJamo()
	if !ok {
		return res
	}

	s.resolveCollisions(next, &res)
	s.advanceProjectiles(&res)
	s.advanceTargets(&res)

	res.Finished = s.Done()
	return res
}

func (s *Session) movePlayer(in Intent) {
	switch {
	case in.MoveLeft && in.MoveRight:
		return
	case in.MoveLeft:
		s.playerX = max(0, s.playerX-s.cfg.PlayerSpeed)
	case in.MoveRight:
		s.playerX = min(s.cfg.MaxPlayerX(), s.playerX+s.cfg.PlayerSpeed)
	}
}

// resolveCollisions tests every projectile against every target. A target is
// consumed by its first collision; a projectile keeps flying through the rest
// of the loop and may take out several overlapping targets in the same tick.
func (s *Session) resolveCollisions(next string, res *StepResult) {
	projectiles := s.liveProjectiles()
	targets := s.liveTargets()
	if len(projectiles) == 0 || len(targets) == 0 {
		return
	}

	hitTargets := make(map[EntityID]struct{})
	hitProjectiles := make(map[EntityID]struct{})

	for _, p := range projectiles {
		for _, t := range targets {
			if _, gone := hitTargets[t.ID]; gone {
				continue
			}
			if !s.overlaps(p, t) {
				continue
			}
			hitTargets[t.ID] = struct{}{}
			hitProjectiles[p.ID] = struct{}{}

			switch {
			case t.Symbol != next:
				s.mistakes++
				res.Misses = append(res.Misses, *t)
			case s.credit(t.Symbol):
				res.Hits = append(res.Hits, *t)
			default:
				res.Spent = append(res.Spent, *t)
			}
		}
	}

	for id := range hitTargets {
		s.targets.Del(id)
	}
	for id := range hitProjectiles {
		s.projectiles.Del(id)
	}
}

// overlaps is a strict point-in-box test of the projectile's anchor against
// the target's hit box.
func (s *Session) overlaps(p *Projectile, t *FallingTarget) bool {
	box := s.cfg.HitBox
	return p.X > t.X && p.X < t.X+box &&
		p.Y > t.Y && p.Y < t.Y+box
}

func (s *Session) advanceProjectiles(res *StepResult) {
	for _, p := range s.liveProjectiles() {
		p.Y -= s.cfg.ProjectileSpeed
		if p.Y <= 0 {
			s.projectiles.Del(p.ID)
			res.Expired++
		}
	}
}

func (s *Session) advanceTargets(res *StepResult) {
	for _, t := range s.liveTargets() {
		t.Y += s.cfg.TargetSpeed
		if t.Y >= s.cfg.PlayHeight {
			s.targets.Del(t.ID)
			res.Escaped++
		}
	}
}
