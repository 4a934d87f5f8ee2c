// apps/go-server/internal/httpserver/ws.go
//
// WebSocket transport: one connection plays one match.
// Responsibilities:
//   - Upgrade GET /ws, build the sentence queue (shuffled, or the day's order
//     with ?mode=daily) and run a match.Match for the lifetime of the socket.
//   - Act as the match's Sink, Speaker and SoundEffects: every frame, notice,
//     speech request, sound cue and music cue becomes a JSON message.
//   - Read client actions and forward them as match intents.
//
// Protocol:
//   client → {"action":"start|pause|resume|quit|fire|move","direction":"left|right","held":true}
//   server → {"type":"config|state|event|speak|sfx|bgm|error", ...}
//
// Notes:
//   - Writes come from two goroutines (the match loop and the read loop), so
//     they are serialized with a mutex and bounded by a write deadline.
//   - The match is registered in the store while the socket is open.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/daily"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/game"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/match"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == clientOrigin()
	},
}

var (
	errBadAction  = errors.New("bad action")
	errBadMessage = errors.New("bad message")
)

// clientMessage is one client intent.
type clientMessage struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Held      bool   `json:"held,omitempty"`
}

// parseClientMessage reads the fields it knows and ignores the rest.
func parseClientMessage(data []byte) (clientMessage, error) {
	if !gjson.ValidBytes(data) {
		return clientMessage{}, errBadMessage
	}
	fields := gjson.GetManyBytes(data, "action", "direction", "held")
	if fields[0].Type != gjson.String {
		return clientMessage{}, fmt.Errorf("%w: missing action", errBadMessage)
	}
	return clientMessage{
		Action:    fields[0].String(),
		Direction: fields[1].String(),
		Held:      fields[2].Bool(),
	}, nil
}

// serverMessage is one outgoing message; only the fields for Type are set.
type serverMessage struct {
	Type   string          `json:"type"`
	Config *configView     `json:"config,omitempty"`
	State  *match.Snapshot `json:"state,omitempty"`
	Notice *match.Notice   `json:"event,omitempty"`
	Text   string          `json:"text,omitempty"`
	Locale string          `json:"locale,omitempty"`
	Rate   float64         `json:"rate,omitempty"`
	Name   string          `json:"name,omitempty"`
	Cue    match.MusicCue  `json:"cue,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// client is the browser end of a match.
type client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	matchID string
}

func (c *client) send(msg serverMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// push sends from the match goroutine, where there is nobody to return to.
func (c *client) push(msg serverMessage) {
	if err := c.send(msg); err != nil {
		log.Debug().Err(err).Str("match", c.matchID).Str("type", msg.Type).Msg("ws write failed")
	}
}

func (c *client) Frame(s match.Snapshot) { c.push(serverMessage{Type: "state", State: &s}) }
func (c *client) Notify(n match.Notice)  { c.push(serverMessage{Type: "event", Notice: &n}) }
func (c *client) Music(cue match.MusicCue) {
	c.push(serverMessage{Type: "bgm", Cue: cue})
}

// Speak asks the browser to read the sentence aloud; it cancels any utterance
// still in flight.
func (c *client) Speak(text, locale string, rate float64) error {
	return c.send(serverMessage{Type: "speak", Text: text, Locale: locale, Rate: rate})
}

// PlayShoot asks the browser to restart the shoot sound from zero.
func (c *client) PlayShoot() error {
	return c.send(serverMessage{Type: "sfx", Name: "shoot"})
}

// queueFor builds the sentence order for a mode.
func (s *Server) queueFor(mode string) ([]string, error) {
	switch mode {
	case "", "shuffle":
		return s.bank.Shuffled(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))), nil
	case "daily":
		return daily.Order(s.now(), s.salt, s.bank), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	queue, err := s.queueFor(q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	m := match.New(match.Options{
		Config:    s.cfg,
		Sentences: queue,
		Limit:     limit,
		Seed:      rand.Uint64(),
		Sink:      c,
		Speaker:   c,
		Sound:     c,
	})
	c.matchID = m.ID

	// the match outlives the request context, so it gets its own
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-m.Done()
	}()
	go m.Run(ctx)

	if err := s.store.Save(ctx, m); err != nil {
		log.Error().Err(err).Msg("save match")
		return
	}
	defer func() { _ = s.store.Delete(context.Background(), m.ID) }()

	log.Info().Str("match", m.ID).Str("mode", q.Get("mode")).Str("remote", r.RemoteAddr).Msg("ws connected")

	view := newConfigView(s.cfg)
	snap := m.Snapshot()
	if err := c.send(serverMessage{Type: "config", Config: &view}); err != nil {
		return
	}
	if err := c.send(serverMessage{Type: "state", State: &snap}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("match", m.ID).Msg("ws read")
			}
			break
		}
		msg, err := parseClientMessage(data)
		if err == nil {
			err = dispatch(m, msg)
		}
		if err != nil {
			if werr := c.send(serverMessage{Type: "error", Error: err.Error()}); werr != nil {
				break
			}
		}
	}
	log.Info().Str("match", m.ID).Msg("ws closed")
}

// dispatch forwards one client action to the match.
func dispatch(m *match.Match, msg clientMessage) error {
	switch msg.Action {
	case "start":
		m.Start()
	case "pause":
		m.Pause()
	case "resume":
		m.Resume()
	case "quit":
		m.End()
	case "fire":
		m.Fire()
	case "move":
		switch dir := game.Direction(msg.Direction); dir {
		case game.Left, game.Right:
			m.Move(dir, msg.Held)
		default:
			return fmt.Errorf("%w: direction %q", errBadAction, msg.Direction)
		}
	default:
		return fmt.Errorf("%w: %q", errBadAction, msg.Action)
	}
	return nil
}
