// apps/go-server/internal/game/config.go
//
// Round tuning. These are compile-time settings: the server always plays
// with DefaultConfig(); tests build smaller or degenerate variants.

package game

import (
	"time"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/hangul"
)

// Config holds the geometry, speeds and cadences of a round.
// Distances are in play-area pixels, speeds in pixels per tick.
type Config struct {
	PlayWidth   float64
	PlayHeight  float64
	PlayerWidth float64
	PlayerSpeed float64

	TargetSpeed     float64
	ProjectileSpeed float64
	HitBox          float64 // square hit box of a falling target, anchored top-left

	ProjectileHalfWidth float64 // projectile is launched centred on the player
	LaunchOffset        float64 // launch height above the bottom edge
	SpawnY              float64 // new targets start above the visible area

	LaneCount              int
	TargetCap              int     // spawning stops while live targets exceed this
	SpawnTargetProbability float64 // chance a spawn is the symbol the player needs
	MaxResample            int     // attempts for distractor and lane rejection sampling

	TickHz        int
	SpawnInterval time.Duration
	WinDelay      time.Duration
	RoundSeconds  int

	// Alphabet distractors are drawn from; nil means the full jamo alphabet.
	Alphabet []string
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		PlayWidth:   800,
		PlayHeight:  600,
		PlayerWidth: 128,
		PlayerSpeed: 5,

		TargetSpeed:     2,
		ProjectileSpeed: 10,
		HitBox:          80,

		ProjectileHalfWidth: 12,
		LaunchOffset:        60,
		SpawnY:              -100,

		LaneCount:              10,
		TargetCap:              8,
		SpawnTargetProbability: 0.8,
		MaxResample:            20,

		TickHz:        60,
		SpawnInterval: 800 * time.Millisecond,
		WinDelay:      500 * time.Millisecond,
		RoundSeconds:  60,
	}
}

// TickInterval is the wall-clock period of one simulation tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickHz)
}

// SpawnEveryTicks converts SpawnInterval to ticks (at least 1).
func (c Config) SpawnEveryTicks() uint64 {
	return durationTicks(c.SpawnInterval, c.TickHz, 1)
}

// WinDelayTicks converts WinDelay to ticks.
func (c Config) WinDelayTicks() int {
	return int(durationTicks(c.WinDelay, c.TickHz, 0))
}

// MaxPlayerX is the right-most player position.
func (c Config) MaxPlayerX() float64 {
	return c.PlayWidth - c.PlayerWidth
}

// Lanes returns the x offset of every spawn lane: lanes split the play width
// evenly and a target is centred inside its lane.
func (c Config) Lanes() []float64 {
	if c.LaneCount <= 0 {
		return nil
	}
	w := c.PlayWidth / float64(c.LaneCount)
	out := make([]float64, c.LaneCount)
	for i := range out {
		out[i] = float64(i)*w + (w-c.HitBox)/2
	}
	return out
}

func (c Config) alphabet() []string {
	if c.Alphabet != nil {
		return c.Alphabet
	}
	return defaultAlphabet
}

var defaultAlphabet = hangul.Alphabet()

func durationTicks(d time.Duration, hz int, min uint64) uint64 {
	n := uint64((d*time.Duration(hz) + time.Second/2) / time.Second)
	if n < min {
		return min
	}
	return n
}
