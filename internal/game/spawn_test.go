package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestSpawnNeverRepeatsLane(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	rng := newRNG()

	prev := -1
	for i := 0; i < 2000; i++ {
		tgt, ok := s.Spawn(rng)
		require.True(t, ok)
		require.NotEqual(t, prev, tgt.Lane, "spawn %d", i)
		prev = tgt.Lane
		s.clear()
	}
}

func TestSpawnPlacement(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, "가")

	tgt, ok := s.Spawn(newRNG())
	require.True(t, ok)
	assert.Equal(t, cfg.SpawnY, tgt.Y)
	assert.Equal(t, cfg.Lanes()[tgt.Lane], tgt.X)
	assert.Equal(t, float64(tgt.Lane)*80, tgt.X, "80px lanes with an 80px box sit flush")
}

func TestSpawnTargetProbability(t *testing.T) {
	cfg := DefaultConfig()

	cfg.SpawnTargetProbability = 1
	s := NewSession(cfg, "가")
	rng := newRNG()
	for i := 0; i < 200; i++ {
		tgt, _ := s.Spawn(rng)
		assert.Equal(t, "ᄀ", tgt.Symbol)
		s.clear()
	}

	cfg.SpawnTargetProbability = 0
	s = NewSession(cfg, "가")
	for i := 0; i < 200; i++ {
		tgt, _ := s.Spawn(rng)
		assert.NotEqual(t, "ᄀ", tgt.Symbol)
		assert.NotEmpty(t, tgt.Symbol)
		s.clear()
	}
}

func TestSpawnDefaultMixIsMostlyTarget(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	rng := newRNG()

	hits := 0
	const n = 5000
	for i := 0; i < n; i++ {
		tgt, _ := s.Spawn(rng)
		if tgt.Symbol == "ᄀ" {
			hits++
		}
		s.clear()
	}
	ratio := float64(hits) / n
	assert.InDelta(t, 0.8, ratio, 0.03)
}

func TestSpawnDegenerateAlphabetTerminates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnTargetProbability = 0
	cfg.Alphabet = []string{"ᄀ"}
	s := NewSession(cfg, "가")

	tgt, ok := s.Spawn(newRNG())
	require.True(t, ok)
	assert.Equal(t, "ᄀ", tgt.Symbol, "falls back to the repeat")

	cfg.Alphabet = []string{"ᄀ", "ᄂ"}
	s = NewSession(cfg, "가")
	rng := newRNG()
	for i := 0; i < 50; i++ {
		tgt, _ := s.Spawn(rng)
		assert.Equal(t, "ᄂ", tgt.Symbol)
		s.clear()
	}
}

func TestSpawnSingleLane(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LaneCount = 1
	s := NewSession(cfg, "가")
	rng := newRNG()

	for i := 0; i < 5; i++ {
		tgt, ok := s.Spawn(rng)
		require.True(t, ok)
		assert.Equal(t, 0, tgt.Lane)
		s.clear()
	}
}

func TestSpawnRespectsCap(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, "가")
	rng := newRNG()

	for i := 0; i < 30; i++ {
		s.Spawn(rng)
	}
	// the cap is checked with "exceeds", so one tile over the cap gets in
	assert.Len(t, s.Targets(), cfg.TargetCap+1)

	_, ok := s.Spawn(rng)
	assert.False(t, ok)
}

func TestSpawnStopsWhenDone(t *testing.T) {
	s := NewSession(DefaultConfig(), "")
	_, ok := s.Spawn(newRNG())
	assert.False(t, ok)
	assert.Empty(t, s.Targets())
}

func TestSpawnIdentitiesAreUnique(t *testing.T) {
	s := NewSession(DefaultConfig(), "가")
	rng := newRNG()
	seen := map[EntityID]bool{}
	for i := 0; i < 100; i++ {
		tgt, _ := s.Spawn(rng)
		p := s.Shoot()
		assert.False(t, seen[tgt.ID])
		assert.False(t, seen[p.ID])
		seen[tgt.ID], seen[p.ID] = true, true
		s.clear()
	}
}
