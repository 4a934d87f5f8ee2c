// apps/go-server/internal/match/match.go
//
// A Match plays a queue of sentences, one Round each.
// Responsibilities:
//   - Own the game-status machine (notStarted → playing ⇄ paused → finished).
//   - Own the sentence queue, question number and score.
//   - Own the single tick source: one goroutine (Run) drives the round, so
//     round state has exactly one writer.
//   - Translate host intents (start, pause, resume, end, move, fire) into
//     round calls, and push frames, notices and music cues to the Sink.
//
// Notes:
//   - The ticker is stopped on pause and reset on resume and on every new
//     round; the round counts spawn, countdown and win delay in its own ticks,
//     so nothing keeps running while the match is paused.
//   - A new sentence always gets a brand new game.Round.

package match

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/game"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/hangul"
)

// Options configure a Match.
type Options struct {
	Config    game.Config
	Sentences []string // play order
	Limit     int      // questions per match; 0 plays every sentence
	Seed      uint64   // randomness for spawns
	Sink      Sink
	Speaker   game.Speaker
	Sound     game.SoundEffects
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdPause
	cmdResume
	cmdEnd
	cmdMove
	cmdFire
	cmdSnapshot
)

type command struct {
	kind  cmdKind
	dir   game.Direction
	held  bool
	reply chan Snapshot
}

// Match is safe for concurrent use: exported methods only send commands to
// the goroutine started by Run.
type Match struct {
	ID string

	cfg     game.Config
	queue   []string
	sink    Sink
	speaker game.Speaker
	sound   game.SoundEffects
	rng     *mrand.Rand

	cmds chan command
	done chan struct{}

	// owned by the Run goroutine
	status Status
	index  int
	score  int
	round  *game.Round
	ticker *time.Ticker
}

// New builds an idle match. Call Run to start its goroutine.
func New(opts Options) *Match {
	queue := append([]string(nil), opts.Sentences...)
	if opts.Limit > 0 && opts.Limit < len(queue) {
		queue = queue[:opts.Limit]
	}
	sink := opts.Sink
	if sink == nil {
		sink = discard{}
	}
	if opts.Config.TickHz <= 0 {
		opts.Config = game.DefaultConfig()
	}

	ticker := time.NewTicker(opts.Config.TickInterval())
	ticker.Stop()

	return &Match{
		ID:      randomID(),
		cfg:     opts.Config,
		queue:   queue,
		sink:    sink,
		speaker: opts.Speaker,
		sound:   opts.Sound,
		rng:     mrand.New(mrand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		cmds:    make(chan command),
		done:    make(chan struct{}),
		status:  StatusNotStarted,
		ticker:  ticker,
	}
}

// Run owns the match until ctx is cancelled. It must be called exactly once.
func (m *Match) Run(ctx context.Context) {
	defer close(m.done)
	defer m.ticker.Stop()

	log.Debug().Str("match", m.ID).Int("questions", len(m.queue)).Msg("match loop started")
	for {
		select {
		case <-ctx.Done():
			if m.round != nil {
				m.round.Quit()
			}
			log.Debug().Str("match", m.ID).Msg("match loop stopped")
			return
		case c := <-m.cmds:
			m.handle(c)
		case <-m.ticker.C:
			m.tick()
		}
	}
}

// Done is closed once Run has returned.
func (m *Match) Done() <-chan struct{} { return m.done }

// Start begins (or restarts) the match from the first question.
func (m *Match) Start() { m.send(command{kind: cmdStart}) }

// Pause freezes the current round and the countdown.
func (m *Match) Pause() { m.send(command{kind: cmdPause}) }

// Resume continues a paused match.
func (m *Match) Resume() { m.send(command{kind: cmdResume}) }

// End quits the match; it moves straight to finished.
func (m *Match) End() { m.send(command{kind: cmdEnd}) }

// Move records a movement key press or release.
func (m *Match) Move(dir game.Direction, held bool) {
	m.send(command{kind: cmdMove, dir: dir, held: held})
}

// Fire shoots a projectile if the round allows it.
func (m *Match) Fire() { m.send(command{kind: cmdFire}) }

// Snapshot returns the current state. After Run has returned it reports a
// finished match with no round detail.
func (m *Match) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	if !m.send(command{kind: cmdSnapshot, reply: reply}) {
		return Snapshot{ID: m.ID, Status: StatusFinished, Total: len(m.queue)}
	}
	return <-reply
}

func (m *Match) send(c command) bool {
	select {
	case m.cmds <- c:
		return true
	case <-m.done:
		return false
	}
}

func (m *Match) handle(c command) {
	switch c.kind {
	case cmdStart:
		m.start()
	case cmdPause:
		m.pause()
	case cmdResume:
		m.resume()
	case cmdEnd:
		m.end()
	case cmdMove:
		if m.round != nil {
			m.round.SetMoveIntent(c.dir, c.held)
		}
	case cmdFire:
		if m.status == StatusPlaying && m.round != nil {
			m.round.FireIntent()
		}
	case cmdSnapshot:
		c.reply <- m.snapshot()
	}
}

func (m *Match) start() {
	if m.status == StatusPlaying || m.status == StatusPaused {
		return
	}
	m.score = 0
	m.index = 0
	m.status = StatusPlaying
	m.sink.Music(MusicPlay)
	log.Info().Str("match", m.ID).Int("questions", len(m.queue)).Msg("match started")

	if len(m.queue) == 0 {
		m.finish()
		return
	}
	m.startRound()
}

func (m *Match) startRound() {
	m.round = game.NewRound(m.cfg, m.rng, m.speaker, m.sound)
	m.round.StartRound(m.queue[m.index])
	m.notifyStatus()
	m.setTicking(true)
	m.sink.Frame(m.snapshot())
}

func (m *Match) pause() {
	if m.status != StatusPlaying {
		return
	}
	m.round.Pause()
	m.status = StatusPaused
	m.setTicking(false)
	m.sink.Music(MusicPause)
	m.notifyStatus()
}

func (m *Match) resume() {
	if m.status != StatusPaused {
		return
	}
	m.round.Resume()
	m.status = StatusPlaying
	m.setTicking(true)
	m.sink.Music(MusicPlay)
	m.notifyStatus()
}

func (m *Match) end() {
	if m.status != StatusPlaying && m.status != StatusPaused {
		return
	}
	m.round.Quit()
	m.sink.Music(MusicStop)
	m.finish()
}

func (m *Match) finish() {
	m.status = StatusFinished
	m.setTicking(false)
	log.Info().Str("match", m.ID).Int("score", m.score).Msg("match finished")
	m.notifyStatus()
	m.sink.Frame(m.snapshot())
}

// tick advances the round by one step and handles its terminal event.
func (m *Match) tick() {
	if m.status != StatusPlaying || m.round == nil {
		return
	}
	for _, e := range m.round.Advance() {
		m.sink.Notify(Notice{Kind: NoticeRound, Event: &e, Score: m.score, Question: m.index + 1, Total: len(m.queue)})
		if e.Terminal() {
			m.roundOver(e.Kind == game.EventRoundWon)
			return
		}
	}
	m.sink.Frame(m.snapshot())
}

// roundOver scores the finished round and moves to the next sentence.
func (m *Match) roundOver(won bool) {
	if won {
		m.score += PointsPerSentence
	}
	log.Info().
		Str("match", m.ID).
		Int("question", m.index+1).
		Bool("won", won).
		Int("mistakes", m.round.Session().Mistakes()).
		Msg("round over")

	if m.index+1 < len(m.queue) {
		m.index++
		m.startRound()
		return
	}
	m.finish()
}

// setTicking starts or stops the tick source. Starting always resets the
// period so a resumed or fresh round gets a full first tick.
func (m *Match) setTicking(on bool) {
	if on {
		m.ticker.Reset(m.cfg.TickInterval())
	} else {
		m.ticker.Stop()
	}
}

func (m *Match) notifyStatus() {
	m.sink.Notify(Notice{
		Kind:     NoticeStatus,
		Status:   m.status,
		Score:    m.score,
		Question: m.index + 1,
		Total:    len(m.queue),
	})
}

func (m *Match) snapshot() Snapshot {
	snap := Snapshot{
		ID:          m.ID,
		Status:      m.status,
		Score:       m.score,
		Question:    m.index + 1,
		Total:       len(m.queue),
		Targets:     []game.FallingTarget{},
		Projectiles: []game.Projectile{},
		Marks:       []hangul.Mark{},
	}
	if m.round == nil {
		return snap
	}
	s := m.round.Session()
	snap.Round = m.round.State().String()
	snap.Sentence = s.Sentence()
	snap.SecondsLeft = m.round.SecondsLeft()
	snap.Completed = len(s.Completed())
	snap.TargetLen = len(s.Target())
	snap.Mistakes = s.Mistakes()
	snap.PlayerX = s.PlayerX()
	snap.Targets = s.Targets()
	snap.Projectiles = s.Projectiles()
	snap.Marks = hangul.Marks(s.Sentence(), s.Completed())
	return snap
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
