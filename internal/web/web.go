// Package web serves the game to browsers: an HTML canvas page and a websocket
// that streams recorded frames and receives key presses.
package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/slalom/internal/draw"
	"github.com/tomz197/slalom/internal/loop"
	"github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/loop/server"
)

//go:embed index.html
var htmlPage string

// Connection health.
const (
	readLimit    = 4096
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	helloWait    = 10 * time.Second
	keyBuffer    = 64
	maxNameLen   = 16
)

var errNoHello = errors.New("web: first message was not hello")

// Options configures the handler.
type Options struct {
	Tuning  *config.Tuning // nil uses config.DefaultTuning
	Logger  *log.Logger    // nil uses the default logger
	SSHHost string         // Shown on the page as the SSH alternative
	Seed    int64          // Non-zero makes every course identical, for tests
}

// Handler serves the page on / and the game on /ws.
type Handler struct {
	hub      server.GameServer
	tuning   config.Tuning
	logger   *log.Logger
	page     string
	seed     int64
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewHandler creates a handler whose sessions register with hub.
func NewHandler(hub server.GameServer, opts Options) *Handler {
	h := &Handler{
		hub:    hub,
		tuning: config.DefaultTuning(),
		logger: opts.Logger,
		page:   strings.ReplaceAll(htmlPage, "{{.SSHHost}}", opts.SSHHost),
		seed:   opts.Seed,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// The page is served from the same origin; other origins are allowed
			// so the game can be embedded.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if opts.Tuning != nil {
		h.tuning = *opts.Tuning
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	h.mux.HandleFunc("GET /{$}", h.serveIndex)
	h.mux.HandleFunc("GET /ws", h.serveWS)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, h.page)
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP -> WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(readLimit)
	name, err := readHello(conn)
	if err != nil {
		h.logger.Warn("handshake failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	s := h.newSession(conn, name)
	defer h.hub.UnregisterClient(s.handle.ID)

	logger := h.logger.With("session", s.handle.ID, "user", name)
	logger.Info("browser connected", "remote", r.RemoteAddr)

	go s.readKeys()
	if err := s.run(); err != nil {
		logger.Info("browser disconnected", "err", err)
		return
	}
	logger.Info("browser disconnected")
}

// readHello waits for the hello message and returns the player name.
func readHello(conn *websocket.Conn) (string, error) {
	_ = conn.SetReadDeadline(time.Now().Add(helloWait))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", err
	}
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return "", fmt.Errorf("decode hello: %w", err)
	}
	if env.T != MsgHello {
		return "", errNoHello
	}
	var hello Hello
	if len(env.P) > 0 {
		if err := json.Unmarshal(env.P, &hello); err != nil {
			return "", fmt.Errorf("decode hello: %w", err)
		}
	}
	return sanitizeName(hello.Name), nil
}

// sanitizeName keeps printable characters and caps the length.
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	if name == "" {
		return "guest"
	}
	return name
}

// session is one browser playing one game.
type session struct {
	conn     *websocket.Conn
	hub      server.GameServer
	handle   *server.ClientHandle
	game     *loop.State
	recorder *draw.Recorder
	keys     chan string
	done     chan struct{} // Closed when the read side ends
	origin   time.Time
	rank     int    // Leaderboard rank of the last finish, 0 if none
	board    *Board // Pending leaderboard update, sent after the next frame
}

func (h *Handler) newSession(conn *websocket.Conn, name string) *session {
	var rng *rand.Rand
	if h.seed != 0 {
		rng = rand.New(rand.NewSource(h.seed))
	}
	s := &session{
		conn:     conn,
		hub:      h.hub,
		handle:   h.hub.RegisterClient(name),
		game:     loop.NewState(h.tuning, rng),
		recorder: draw.NewRecorder(config.WindowWidth, config.WindowHeight),
		keys:     make(chan string, keyBuffer),
		done:     make(chan struct{}),
		origin:   time.Now(),
	}
	s.game.OnFinish = func(elapsed time.Duration) {
		s.rank = s.hub.ReportFinish(s.handle.ID, elapsed)
		s.board = s.boardFor()
	}
	return s
}

// readKeys forwards key messages to the frame loop until the connection fails.
func (s *session) readKeys() {
	defer close(s.done)
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil || env.T != MsgKey {
			continue
		}
		var kp KeyPress
		if err := json.Unmarshal(env.P, &kp); err != nil || kp.Key == "" {
			continue
		}
		select {
		case s.keys <- kp.Key:
		default: // Frame loop is behind; drop the key
		}
	}
}

// run is the frame loop and the only writer on the connection.
func (s *session) run() error {
	frames := time.NewTicker(config.ClientTargetFrameTime)
	defer frames.Stop()
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-s.done:
			return nil
		case <-pings.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case ev, ok := <-s.handle.EventsCh:
			if !ok {
				return nil
			}
			switch ev.Type {
			case server.EventServerShutdown:
				_ = s.send(MsgShutdown, nil)
				deadline := time.Now().Add(writeWait)
				_ = s.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
				return nil
			case server.EventLeaderboardChanged:
				s.board = s.boardFor()
			}
		case now := <-frames.C:
			if err := s.frame(now.Sub(s.origin)); err != nil {
				return err
			}
		}
	}
}

// frame applies pending keys, advances the game and sends the result.
func (s *session) frame(now time.Duration) error {
	for drained := false; !drained; {
		select {
		case key := <-s.keys:
			s.game.HandleKey(key)
		default:
			drained = true
		}
	}

	labels := s.game.Frame(now, s.recorder)
	w, hgt := s.recorder.Size()
	if err := s.send(MsgFrame, Frame{
		W:        w,
		H:        hgt,
		Ops:      s.recorder.Ops(),
		Labels:   labels,
		Finished: s.game.Finished(),
	}); err != nil {
		return err
	}

	if s.board != nil {
		board := s.board
		s.board = nil
		return s.send(MsgBoard, board)
	}
	return nil
}

// boardFor snapshots the leaderboard.
func (s *session) boardFor() *Board {
	top := s.hub.TopTimes()
	b := &Board{Rank: s.rank, Entries: make([]BoardEntry, len(top))}
	for i, e := range top {
		b.Entries[i] = BoardEntry{Name: e.Username, Seconds: e.Elapsed.Seconds()}
	}
	return b
}

func (s *session) send(t string, p any) error {
	msg, err := encode(t, p)
	if err != nil {
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, msg)
}
