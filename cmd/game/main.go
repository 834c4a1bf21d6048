package main

import (
	"bufio"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/slalom/internal/config"
	"github.com/tomz197/slalom/internal/loop/client"
	loopconfig "github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/loop/server"
)

func main() {
	logger := config.NewLogger("slalom")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	tuning, err := loopconfig.LoadTuningFromEnv()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	// A local hub keeps the best times of this process.
	hub := server.NewServer(loopconfig.LeaderboardSize)
	c := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "you"),
		Tuning:   &tuning,
	})
	runErr := c.Run()

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
