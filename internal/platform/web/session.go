package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

const (
	writeWait    = 5 * time.Second
	maxReadBytes = 1024
)

// clientMessage is what the page sends: key transitions.
type clientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// span is a same-color stretch of one screen row.
type span struct {
	Text  string `json:"t"`
	Color string `json:"c,omitempty"`
}

type frameMessage struct {
	Type   string   `json:"type"`
	Screen [][]span `json:"screen"`
	Score  string   `json:"score"`
}

type soundMessage struct {
	Type string `json:"type"`
	Cue  string `json:"cue"`
}

// revealMessage tells the page which control to show and where. The page
// owns the markup.
type revealMessage struct {
	Type    string `json:"type"`
	Target  string `json:"target"`
	Control string `json:"control"`
	Label   string `json:"label"`
}

// heldKeys are the page keys polled as held state.
var heldKeys = map[string]core.Action{
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	"up":    core.ActionUp,
}

// scoreTexter is implemented by games that format their own HUD score.
type scoreTexter interface {
	ScoreText() string
}

// session runs one world for one connection.
type session struct {
	conn   *websocket.Conn
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	player string
	rate   int

	pongWait time.Duration

	inputMu sync.Mutex
	held    core.InputFrame
	pause   bool

	writeMu sync.Mutex

	// Owned by the tick goroutine.
	lastFrame  []byte
	scoreSaved bool
	reveal     *time.Timer

	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, cfg Config, store *storage.Store, logger *log.Logger, player string) (*session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = DefaultConfig().PongWait
	}

	game, err := registry.Load(cfg.GameID, core.RuntimeConfig{
		ScreenW:  cfg.Cols,
		ScreenH:  cfg.Rows,
		TickRate: cfg.TickRate,
		Seed:     seed,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		conn:   conn,
		game:   game,
		screen: core.NewScreen(cfg.Cols, cfg.Rows),
		store:  store,
		logger: logger,
		player: player,
		rate:   cfg.TickRate,
		held:   core.NewInputFrame(),

		pongWait: cfg.PongWait,
	}, nil
}

// run plays until the client goes away and returns the final score.
func (s *session) run(ctx context.Context) int {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loop(ctx)
	}()

	s.readLoop()
	cancel()
	wg.Wait()

	if s.reveal != nil {
		s.reveal.Stop()
	}
	s.close()
	return s.game.State().Score
}

// loop steps the world at the tick rate and keeps the peer pinged.
func (s *session) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.rate))
	defer ticker.Stop()
	ping := time.NewTicker(s.pongWait / 2)
	defer ping.Stop()

	if err := s.sendFrame(); err != nil {
		s.close()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				s.close()
				return
			}
		case <-ticker.C:
			if err := s.tick(); err != nil {
				s.close()
				return
			}
		}
	}
}

// tick runs one simulation step and forwards its side effects.
func (s *session) tick() error {
	result := s.game.Step(s.input())

	for _, e := range result.Events {
		switch e.Kind {
		case core.EventSound:
			if err := s.writeJSON(soundMessage{Type: "sound", Cue: e.Sound.String()}); err != nil {
				return err
			}
		case core.EventRoundOver:
			s.saveScore(e.Score)
			s.scheduleReveal(e.Delay)
		}
	}

	return s.sendFrame()
}

// input snapshots held keys plus a pending pause toggle.
func (s *session) input() core.InputFrame {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	in := s.held.Clone()
	if s.pause {
		in.Set(core.ActionPause)
		s.pause = false
	}
	return in
}

// readLoop applies client messages until the connection fails or the
// peer stays silent for longer than pongWait.
func (s *session) readLoop() {
	s.conn.SetReadLimit(maxReadBytes)
	//nolint:errcheck // A failed deadline surfaces on the read
	s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		//nolint:errcheck // A failed deadline surfaces on the read
		s.conn.SetReadDeadline(time.Now().Add(s.pongWait))

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg clientMessage) {
	if msg.Type != "key" {
		return
	}

	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	if a, ok := heldKeys[msg.Key]; ok {
		if msg.Down {
			s.held.Set(a)
		} else {
			delete(s.held.Actions, a)
		}
		return
	}
	if msg.Key == "pause" && msg.Down {
		s.pause = true
	}
}

// scheduleReveal sends the restart control once the delay has passed.
// It is never cancelled except by the session ending.
func (s *session) scheduleReveal(delay time.Duration) {
	if s.reveal != nil {
		return
	}
	s.reveal = time.AfterFunc(delay, func() {
		//nolint:errcheck // The read loop notices a dead connection
		s.writeJSON(revealMessage{
			Type:    "reveal",
			Target:  "pop",
			Control: "restart",
			Label:   "Play again",
		})
	})
}

// saveScore records the round's score once.
func (s *session) saveScore(score int) {
	if s.scoreSaved {
		return
	}
	s.scoreSaved = true
	if s.store == nil || score <= 0 {
		return
	}
	if _, err := s.store.SaveScore(s.game.ID(), s.player, score); err != nil {
		s.logger.Warn("could not save score", "player", s.player, "error", err)
	}
}

// sendFrame renders the world and sends it when it changed.
func (s *session) sendFrame() error {
	s.game.Render(s.screen)

	rows := make([][]span, s.screen.Height())
	for y := range rows {
		for _, r := range s.screen.Runs(y) {
			rows[y] = append(rows[y], span{Text: r.Text, Color: r.Color.Hex()})
		}
	}

	data, err := json.Marshal(frameMessage{Type: "frame", Screen: rows, Score: s.scoreText()})
	if err != nil {
		return err
	}

	if bytes.Equal(data, s.lastFrame) {
		return nil
	}
	s.lastFrame = data
	return s.write(data)
}

func (s *session) scoreText() string {
	if st, ok := s.game.(scoreTexter); ok {
		return st.ScoreText()
	}
	return fmt.Sprintf("Score: %d", s.game.State().Score)
}

func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.write(data)
}

func (s *session) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	//nolint:errcheck // A failed deadline surfaces on the write
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// close ends the connection. Safe to call more than once.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		//nolint:errcheck // Best-effort close frame
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()
	})
}
