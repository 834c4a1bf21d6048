// Package desktop runs the skiing game in a native window (or a browser tab via wasm) with ebiten.
package desktop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/slalom/internal/input"
	"github.com/tomz197/slalom/internal/loop"
	"github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/loop/server"
)

// keyNames maps ebiten keys to the key identifiers the game understands.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeyR:          "r",
}

// Options configures the game.
type Options struct {
	Username string
	Tuning   *config.Tuning // nil uses config.DefaultTuning
	Rand     *rand.Rand     // nil uses a time-seeded source
}

// Game implements ebiten.Game.
type Game struct {
	hub     server.GameServer
	handle  *server.ClientHandle
	state   *loop.State
	surface imageSurface
	keys    []ebiten.Key
	origin  time.Time
	rank    int
	top     []server.TopTimeEntry
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game that reports finishes to hub.
func NewGame(hub server.GameServer, opts Options) *Game {
	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	g := &Game{
		hub:    hub,
		handle: hub.RegisterClient(opts.Username),
		state:  loop.NewState(tuning, opts.Rand),
		origin: time.Now(),
	}
	g.state.OnFinish = func(elapsed time.Duration) {
		g.rank = g.hub.ReportFinish(g.handle.ID, elapsed)
		g.top = g.hub.TopTimes()
	}
	return g
}

// Close unregisters the game from the hub.
func (g *Game) Close() {
	g.hub.UnregisterClient(g.handle.ID)
}

func (g *Game) Update() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k == ebiten.KeyQ || k == ebiten.KeyEscape {
			return ebiten.Termination
		}
		if name, ok := keyNames[k]; ok {
			g.state.HandleKey(name)
		}
	}

	g.state.Step(time.Since(g.origin))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.img = screen
	g.state.Draw(&g.surface)

	labels := g.state.Labels()
	ebitenutil.DebugPrintAt(screen, labels.Time, 10, 10)
	ebitenutil.DebugPrintAt(screen, labels.Speed, 10, 26)
	ebitenutil.DebugPrintAt(screen, labels.Balance, config.WindowWidth-110, 10)
	ebitenutil.DebugPrintAt(screen, labels.Hint, config.WindowWidth/2-len(labels.Hint)*3, config.WindowHeight-24)

	if g.state.Finished() {
		g.drawBoard(screen)
	}
}

// drawBoard lists the best times under the screen center.
func (g *Game) drawBoard(screen *ebiten.Image) {
	x, y := config.WindowWidth/2-70, config.WindowHeight/2-40
	title := fmt.Sprintf("Your time: %.2fs", g.state.Elapsed.Seconds())
	if g.rank > 0 {
		title += fmt.Sprintf(" (#%d)", g.rank)
	}
	ebitenutil.DebugPrintAt(screen, title, x, y)
	for i, e := range g.top {
		y += 16
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %-12.12s %6.2fs", i+1, e.Username, e.Elapsed.Seconds()), x, y)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return config.WindowWidth, config.WindowHeight
}
