package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeProjectile drops a projectile at an exact spot.
func placeProjectile(s *Session, x, y float64) *Projectile {
	p := &Projectile{ID: s.newID(), X: x, Y: y}
	s.projectiles.Put(p.ID, p)
	return p
}

func TestNewSession(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, "강.")

	assert.Equal(t, []string{"ᄀ", "ᅡ", "ᆼ"}, s.Target())
	assert.Empty(t, s.Completed())
	assert.Equal(t, 336.0, s.PlayerX())
	assert.False(t, s.Done())

	next, ok := s.NextJamo()
	assert.True(t, ok)
	assert.Equal(t, "ᄀ", next)

	assert.True(t, NewSession(cfg, "...").Done())
}

func TestPlayerMovementClamps(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, "가")

	for i := 0; i < 200; i++ {
		s.Step(Intent{MoveLeft: true})
	}
	assert.Equal(t, 0.0, s.PlayerX())

	for i := 0; i < 200; i++ {
		s.Step(Intent{MoveRight: true})
	}
	assert.Equal(t, cfg.MaxPlayerX(), s.PlayerX())

	s.Step(Intent{MoveLeft: true})
	assert.Equal(t, cfg.MaxPlayerX()-cfg.PlayerSpeed, s.PlayerX())

	before := s.PlayerX()
	s.Step(Intent{MoveLeft: true, MoveRight: true})
	s.Step(Intent{})
	assert.Equal(t, before, s.PlayerX())
}

func TestShootLaunchesFromPlayerCentre(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	p := s.Shoot()
	assert.Equal(t, 336.0+64-12, p.X)
	assert.Equal(t, 540.0, p.Y)
	assert.Len(t, s.Projectiles(), 1)
}

func TestStepCorrectHit(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	tgt := s.addTarget("ᄀ", 0, 100, 100)
	placeProjectile(s, 120, 150)

	res := s.Step(Intent{})

	require.Len(t, res.Hits, 1)
	assert.Equal(t, tgt.ID, res.Hits[0].ID)
	assert.Equal(t, []string{"ᄀ"}, s.Completed())
	assert.Zero(t, s.Mistakes())
	assert.Empty(t, s.Targets())
	assert.Empty(t, s.Projectiles())
	assert.False(t, res.Finished)
}

func TestStepWrongHitCountsMistake(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	s.addTarget("ᄂ", 0, 100, 100)
	placeProjectile(s, 120, 150)

	res := s.Step(Intent{})

	assert.Len(t, res.Misses, 1)
	assert.Empty(t, s.Completed())
	assert.Equal(t, 1, s.Mistakes())
	assert.Empty(t, s.Targets())
}

func TestStepEdgesDoNotCollide(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	s.addTarget("ᄀ", 0, 100, 100)
	placeProjectile(s, 100, 150) // on the left edge
	placeProjectile(s, 150, 180) // on the bottom edge

	res := s.Step(Intent{})
	assert.False(t, res.Scored())
	assert.Len(t, s.Targets(), 1)
	assert.Len(t, s.Projectiles(), 2)
}

func TestTargetConsumedOnce(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	s.addTarget("ᄀ", 0, 100, 100)
	placeProjectile(s, 120, 150)
	second := placeProjectile(s, 130, 150)

	res := s.Step(Intent{})

	assert.Len(t, res.Hits, 1)
	assert.Equal(t, []string{"ᄀ"}, s.Completed())
	// the second projectile found nothing left to hit and keeps flying
	require.Len(t, s.Projectiles(), 1)
	assert.Equal(t, second.ID, s.Projectiles()[0].ID)
	assert.Equal(t, 140.0, s.Projectiles()[0].Y)
}

func TestProjectileMayHitSeveralTargets(t *testing.T) {
	// ㅇㅇ passes through as two identical symbols
	s := NewSession(DefaultConfig(), "ㅇㅇ")
	s.addTarget("ㅇ", 0, 100, 100)
	s.addTarget("ㅇ", 1, 110, 110)
	placeProjectile(s, 150, 150)

	res := s.Step(Intent{})

	assert.Len(t, res.Hits, 2)
	assert.Equal(t, []string{"ㅇ", "ㅇ"}, s.Completed())
	assert.True(t, res.Finished)
	assert.True(t, s.Done())
}

func TestSurplusCorrectHitsKeepPrefix(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	s.addTarget("ᄀ", 0, 100, 100)
	s.addTarget("ᄀ", 5, 400, 100)
	placeProjectile(s, 120, 150)
	placeProjectile(s, 420, 150)

	res := s.Step(Intent{})

	assert.Len(t, res.Hits, 1)
	assert.Len(t, res.Spent, 1)
	assert.Zero(t, s.Mistakes())
	assert.Equal(t, []string{"ᄀ"}, s.Completed())
}

func TestMotionAndRemoval(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, "가")
	s.addTarget("ᄂ", 0, 0, cfg.PlayHeight-1)
	s.addTarget("ᄂ", 3, 300, 10)
	placeProjectile(s, 700, 5)
	placeProjectile(s, 700, 300)

	res := s.Step(Intent{})

	assert.Equal(t, 1, res.Escaped)
	assert.Equal(t, 1, res.Expired)
	assert.Zero(t, s.Mistakes(), "letting a tile fall is free")

	targets := s.Targets()
	require.Len(t, targets, 1)
	assert.Equal(t, 12.0, targets[0].Y)

	projectiles := s.Projectiles()
	require.Len(t, projectiles, 1)
	assert.Equal(t, 290.0, projectiles[0].Y)
}

func TestEntitiesFreezeOnceDone(t *testing.T) {
	s := NewSession(DefaultConfig(), "ㅇ")
	s.addTarget("ㅇ", 0, 100, 100)
	placeProjectile(s, 120, 150)
	s.Step(Intent{})
	require.True(t, s.Done())

	s.addTarget("ᄂ", 0, 300, 50)
	s.Step(Intent{})
	assert.Equal(t, 50.0, s.Targets()[0].Y)
}

func TestCompletedStaysPrefixOfTarget(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(7, 11))
	s := NewSession(cfg, "안녕하세요. 반갑습니다!")

	for tick := 0; tick < 20000 && !s.Done(); tick++ {
		if tick%48 == 0 {
			s.Spawn(rng)
		}
		if tick%7 == 0 {
			s.Shoot()
		}
		in := Intent{MoveLeft: rng.IntN(2) == 0, MoveRight: rng.IntN(2) == 0}
		s.Step(in)

		completed := s.Completed()
		target := s.Target()
		require.LessOrEqual(t, len(completed), len(target))
		for i := range completed {
			require.Equal(t, target[i], completed[i], "slot %d", i)
		}
		require.GreaterOrEqual(t, s.PlayerX(), 0.0)
		require.LessOrEqual(t, s.PlayerX(), cfg.MaxPlayerX())
	}
}
