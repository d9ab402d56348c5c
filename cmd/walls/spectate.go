package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/closing-walls/internal/platform/web"
	"github.com/vovakirdan/closing-walls/internal/registry"
)

// startSpectator serves the spectator feed on addr in the background.
// The returned function shuts it down.
func startSpectator(addr string, reg *registry.Registry, logger *log.Logger) func() {
	srv := web.NewServer(addr, reg, logger.WithPrefix("spectate"))
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("spectator server failed", "address", addr, "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("spectator shutdown", "err", err)
		}
	}
}
