package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/lix/internal/server"
	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/store"
	"github.com/urfave/cli/v3"
)

// Serve runs the LinkedIn feed web application until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}

	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = cmd.Int("port")
	}

	sessionStore, cleanup, err := r.serveStore()
	if err != nil {
		return err
	}
	defer cleanup()

	secret := r.config.Session.Secret
	if secret == "" {
		// Cookies signed with an ephemeral secret die with the process.
		if secret, err = shared.GenerateState(); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		r.logger.Warn("session secret not configured, sessions will not survive restarts")
	}

	sessions := server.NewSessions(secret, time.Duration(r.config.Session.TTLHours)*time.Hour)

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger), server.Recover(r.logger), sessions.Middleware)

	app := server.NewApp(r.service, sessionStore, sessions, r.logger)
	app.Register(router)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	notifyCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	r.writePlain("→ lix running at http://%s\n", addr)
	r.writePlain("→ Press Ctrl+C to stop\n")

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-notifyCtx.Done():
	}

	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}

// serveStore builds the token store backend named by config.
//
// The memory store is the default: tokens live exactly as long as the
// serving process, which is what the web flow promises.
func (r *Runner) serveStore() (store.SessionStore, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	switch r.config.Session.Store {
	case "", "memory":
		return store.NewMemoryStore(), func() {}, nil
	case "sqlite":
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open token store: %w", err)
		}
		return store.NewSQLiteStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown session store %q", shared.ErrInvalidConfig, r.config.Session.Store)
	}
}
