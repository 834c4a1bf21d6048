package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/slalom/internal/config"
	loopconfig "github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/loop/server"
	"github.com/tomz197/slalom/internal/web"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = "8080"
	defaultShutdown = 15 * time.Second
)

func main() {
	logger := config.NewLogger("web")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	shutdownWait, err := config.GetEnvDuration("SHUTDOWN_WAIT", defaultShutdown)
	if err != nil {
		logger.Fatal("bad SHUTDOWN_WAIT", "err", err)
	}
	tuning, err := loopconfig.LoadTuningFromEnv()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	hub := server.NewServer(loopconfig.LeaderboardSize)
	srv := &http.Server{
		Addr: net.JoinHostPort(host, port),
		Handler: web.NewHandler(hub, web.Options{
			Tuning:  &tuning,
			Logger:  logger,
			SSHHost: sshHost,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "url", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", hub.Clients())

	// Websockets are hijacked, so http.Server.Shutdown does not wait for them.
	hub.Shutdown(shutdownWait)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
