// apps/go-server/internal/game/engine.go
//
// Round engine for a single sentence.
// Responsibilities:
//   - Setup: speak the sentence, build a fresh Session, reset the clock.
//   - Advance: run one fixed tick (Step), plus the slower spawn cadence, the
//     one-second countdown and the win delay, all derived from one tick counter.
//   - Accept host intents: pause/resume/quit, held movement keys, fire.
//   - Report progress and exactly one terminal event (won or timed out).
//
// Notes:
//   - Every periodic concern is counted in ticks of this round, so pausing the
//     tick source pauses all of them together and a new round starts from zero.
//   - Round is not safe for concurrent use; the host drives it from one goroutine.
//   - Collaborator failures (speech, sound) are logged and otherwise ignored.

package game

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

// Round runs one sentence from Setup to Won, TimedOut or Aborted.
type Round struct {
	cfg     Config
	rng     *rand.Rand
	speaker Speaker
	sound   SoundEffects

	session     *Session
	state       RoundState
	intent      Intent
	ticks       uint64
	secondsLeft int
	winIn       int // ticks until the won signal; -1 while not armed
}

// NewRound constructs an idle round. Nil collaborators are replaced by Silent.
func NewRound(cfg Config, rng *rand.Rand, speaker Speaker, sound SoundEffects) *Round {
	if speaker == nil {
		speaker = Silent{}
	}
	if sound == nil {
		sound = Silent{}
	}
	return &Round{
		cfg:     cfg,
		rng:     rng,
		speaker: speaker,
		sound:   sound,
		session: NewSession(cfg, ""),
		state:   RoundSetup,
		winIn:   -1,
	}
}

// StartRound performs Setup for sentence and enters Active.
// A sentence without any jamo is won on the next Advance.
func (r *Round) StartRound(sentence string) {
	r.state = RoundSetup
	if err := r.speaker.Speak(sentence, SpeechLocale, SpeechRate); err != nil {
		log.Warn().Err(err).Str("sentence", sentence).Msg("speak sentence")
	}

	r.session = NewSession(r.cfg, sentence)
	r.intent = Intent{}
	r.ticks = 0
	r.secondsLeft = r.cfg.RoundSeconds
	r.winIn = -1
	if r.session.Done() {
		r.winIn = 0
	}
	r.state = RoundActive

	log.Debug().
		Str("sentence", sentence).
		Int("jamo", len(r.session.target)).
		Msg("round started")
}

// Advance runs one tick. Outside Active it does nothing and returns nil.
func (r *Round) Advance() []Event {
	if r.state != RoundActive {
		return nil
	}
	r.ticks++

	var events []Event

	res := r.session.Step(r.intent)
	if res.Scored() {
		events = append(events, r.progress())
	}

	if r.winIn < 0 && r.session.Done() {
		r.winIn = r.cfg.WinDelayTicks()
	}
	if r.winIn >= 0 {
		if r.winIn == 0 {
			r.state = RoundWon
			r.session.clear()
			return append(events, Event{Kind: EventRoundWon, Completed: len(r.session.completed), Mistakes: r.session.mistakes})
		}
		r.winIn--
		return events
	}

	if r.ticks%uint64(r.cfg.TickHz) == 0 {
		r.secondsLeft--
		events = append(events, Event{Kind: EventTimeTick, Seconds: r.secondsLeft})
		if r.secondsLeft <= 0 {
			r.state = RoundTimedOut
			r.session.clear()
			return append(events, Event{Kind: EventRoundTimedOut, Completed: len(r.session.completed), Mistakes: r.session.mistakes})
		}
	}

	if r.ticks%r.cfg.SpawnEveryTicks() == 0 && r.secondsLeft > 0 {
		if t, ok := r.session.Spawn(r.rng); ok {
			events = append(events, Event{Kind: EventSpawned, Target: &t})
		}
	}
	return events
}

// Pause freezes an active round. It reports whether the state changed.
func (r *Round) Pause() bool {
	if r.state != RoundActive {
		return false
	}
	r.state = RoundPaused
	return true
}

// Resume continues a paused round from exactly where it stopped.
func (r *Round) Resume() bool {
	if r.state != RoundPaused {
		return false
	}
	r.state = RoundActive
	return true
}

// Quit aborts the round and discards in-flight entities.
func (r *Round) Quit() {
	if r.state.Finished() {
		return
	}
	r.state = RoundAborted
	r.session.clear()
}

// SetMoveIntent records a movement key press or release. Releases are
// accepted in any state so a key let go during a pause does not stick.
func (r *Round) SetMoveIntent(dir Direction, held bool) {
	switch dir {
	case Left:
		r.intent.MoveLeft = held
	case Right:
		r.intent.MoveRight = held
	}
}

// FireIntent launches a projectile while the round is active and time
// remains, and asks for the shoot sound.
func (r *Round) FireIntent() (Projectile, bool) {
	if r.state != RoundActive || r.secondsLeft <= 0 {
		return Projectile{}, false
	}
	p := r.session.Shoot()
	if err := r.sound.PlayShoot(); err != nil {
		log.Warn().Err(err).Msg("play shoot sound")
	}
	return p, true
}

// State returns the round's lifecycle state.
func (r *Round) State() RoundState { return r.state }

// Session exposes the current session for read-only inspection.
func (r *Round) Session() *Session { return r.session }

// SecondsLeft is the remaining countdown.
func (r *Round) SecondsLeft() int { return r.secondsLeft }

// Intent is the current held-key snapshot.
func (r *Round) Intent() Intent { return r.intent }

// Ticks is the number of active ticks this round has run.
func (r *Round) Ticks() uint64 { return r.ticks }

func (r *Round) progress() Event {
	return Event{
		Kind:      EventProgress,
		Completed: len(r.session.completed),
		Mistakes:  r.session.mistakes,
	}
}
