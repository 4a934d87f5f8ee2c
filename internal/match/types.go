// apps/go-server/internal/match/types.go
//
// Types shared between a Match and whatever presents it.
// Defines:
//   - Status: the overall game-status machine.
//   - Notice / MusicCue: what the match pushes to its Sink besides frames.
//   - Snapshot: a JSON-ready view of the match and its current round.

package match

import (
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/game"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/hangul"
)

// Status of a match:
//
//	notStarted → playing ⇄ paused → finished
type Status string

const (
	StatusNotStarted Status = "notStarted"
	StatusPlaying    Status = "playing"
	StatusPaused     Status = "paused"
	StatusFinished   Status = "finished"
)

// PointsPerSentence is awarded for each sentence completed before time runs out.
const PointsPerSentence = 10

// NoticeKind classifies a Notice.
type NoticeKind string

const (
	NoticeRound  NoticeKind = "round"  // wraps a game.Event
	NoticeStatus NoticeKind = "status" // status, score or question changed
)

// Notice is pushed to the Sink whenever something discrete happens.
type Notice struct {
	Kind     NoticeKind  `json:"kind"`
	Event    *game.Event `json:"event,omitempty"`
	Status   Status      `json:"status,omitempty"`
	Score    int         `json:"score"`
	Question int         `json:"question"`
	Total    int         `json:"total"`
}

// MusicCue asks the presentation layer to control background music.
type MusicCue string

const (
	MusicPlay  MusicCue = "play"
	MusicPause MusicCue = "pause"
	MusicStop  MusicCue = "stop" // pause and rewind
)

// Sink receives everything a match produces. Calls come from the match
// goroutine, one at a time.
type Sink interface {
	Frame(Snapshot)
	Notify(Notice)
	Music(MusicCue)
}

// Snapshot is the state a client renders.
type Snapshot struct {
	ID          string               `json:"id"`
	Status      Status               `json:"status"`
	Score       int                  `json:"score"`
	Question    int                  `json:"question"`
	Total       int                  `json:"total"`
	Round       string               `json:"round"`
	Sentence    string               `json:"sentence,omitempty"`
	SecondsLeft int                  `json:"secondsLeft"`
	Completed   int                  `json:"completed"`
	TargetLen   int                  `json:"targetLen"`
	Mistakes    int                  `json:"mistakes"`
	PlayerX     float64              `json:"playerX"`
	Targets     []game.FallingTarget `json:"targets"`
	Projectiles []game.Projectile    `json:"projectiles"`
	Marks       []hangul.Mark        `json:"marks"`
}

type discard struct{}

func (discard) Frame(Snapshot) {}
func (discard) Notify(Notice)  {}
func (discard) Music(MusicCue) {}
