package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/slalom/internal/config"
	"github.com/tomz197/slalom/internal/desktop"
	loopconfig "github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/loop/server"
)

func main() {
	logger := config.NewLogger("desktop")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	tuning, err := loopconfig.LoadTuningFromEnv()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	hub := server.NewServer(loopconfig.LeaderboardSize)
	g := desktop.NewGame(hub, desktop.Options{
		Username: config.GetEnv("USER", "you"),
		Tuning:   &tuning,
	})
	defer g.Close()

	ebiten.SetWindowSize(loopconfig.WindowWidth, loopconfig.WindowHeight)
	ebiten.SetWindowTitle("Slalom")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
	}
}
