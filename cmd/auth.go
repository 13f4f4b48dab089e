package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/lix/internal/server"
	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization flow and stores the resulting token.
//
// Starts a local HTTP server, opens the browser for member authorization,
// exchanges the auth code for a token, and persists the member's record.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: LinkedIn service not initialized", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth("authorization")
	if err != nil {
		return err
	}

	profile, err := r.service.Profile(ctx, token.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to fetch member profile: %w", err)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}

	record := store.TokenRecord{
		MemberID:    profile.ID,
		AccessToken: token.AccessToken,
		AuthorURN:   profile.URN(),
		CreatedAt:   time.Now(),
		ExpiresAt:   token.Expiry,
	}
	if err := s.Put(record); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	r.logger.Info("member authenticated", "member", profile.ID)

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Logged in as %s (%s)\n\n", profile.FullName(), profile.ID)
	r.writePlain("You can now use: lix posts list\n")

	return nil
}

// AuthStatus reports stored sessions and pings the local server's health endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}

	records, err := s.List()
	if err != nil {
		return fmt.Errorf("failed to read sessions: %w", err)
	}

	if len(records) == 0 {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'lix auth login' to connect your LinkedIn account.\n")
		return nil
	}

	r.writePlain("Stored sessions:\n\n")
	for _, record := range records {
		r.writePlain("Member: %s\n", record.MemberID)
		r.writePlain("  Author URN: %s\n", record.AuthorURN)
		r.writePlain("  Created: %s\n", record.CreatedAt.Format(time.RFC822))
		switch {
		case record.Expired():
			r.writePlain("  Token: ✗ Expired\n")
		case record.ExpiresAt.IsZero():
			r.writePlain("  Token: ✓ Active (no expiry reported)\n")
		default:
			r.writePlain("  Token: ✓ Active until %s\n", record.ExpiresAt.Format(time.RFC822))
		}
		r.writePlain("\n")
	}

	r.checkServer(ctx)

	return nil
}

// AuthLogout deletes stored sessions, all of them unless --member narrows it.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	member := cmd.String("member")

	s, err := r.openStore()
	if err != nil {
		return err
	}

	if member != "" {
		if err := s.Delete(member); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		r.logger.Info("session deleted", "member", member)
		return r.writePlain("✓ Logged out %s\n", member)
	}

	records, err := s.List()
	if err != nil {
		return fmt.Errorf("failed to read sessions: %w", err)
	}

	if len(records) == 0 {
		return r.writePlain("No stored sessions.\n")
	}

	for _, record := range records {
		if err := s.Delete(record.MemberID); err != nil {
			return fmt.Errorf("failed to delete session for %s: %w", record.MemberID, err)
		}
		r.logger.Info("session deleted", "member", record.MemberID)
	}

	return r.writePlain("✓ Removed %d stored session(s)\n", len(records))
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(prefix string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL, err := r.service.AuthURL(state)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorization URL: %w", err)
	}

	oauthHandler := server.NewOAuthHandler(r.service, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for LinkedIn %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// resolveRecord returns the stored record for member, or the sole stored
// record when member is empty.
func (r *Runner) resolveRecord(member string) (store.TokenRecord, error) {
	s, err := r.openStore()
	if err != nil {
		return store.TokenRecord{}, err
	}

	var record store.TokenRecord

	if member != "" {
		if record, err = s.Get(member); err != nil {
			return store.TokenRecord{}, fmt.Errorf("%w: no stored session for %s, run 'lix auth login'", shared.ErrNotAuthenticated, member)
		}
	} else {
		records, err := s.List()
		if err != nil {
			return store.TokenRecord{}, fmt.Errorf("failed to read sessions: %w", err)
		}
		if len(records) == 0 {
			return store.TokenRecord{}, fmt.Errorf("%w: no stored sessions, run 'lix auth login'", shared.ErrNotAuthenticated)
		}
		if len(records) > 1 {
			return store.TokenRecord{}, fmt.Errorf("%w: %d members are logged in, pass --member", shared.ErrInvalidArgument, len(records))
		}
		record = records[0]
	}

	if record.Expired() {
		return store.TokenRecord{}, fmt.Errorf("%w: stored token for %s has expired, run 'lix auth login'", shared.ErrTokenExpired, record.MemberID)
	}

	return record, nil
}

// checkServer pings the configured server's health endpoint. Status output
// only; an unreachable server is reported, not returned as an error.
func (r *Runner) checkServer(ctx context.Context) {
	healthURL := fmt.Sprintf("http://%s:%d/healthz", r.config.Server.Host, r.config.Server.Port)

	reqCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, healthURL, nil)
	if err != nil {
		return
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.writePlain("Server: ✗ not running at %s\n", healthURL)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		r.writePlain("Server: ✓ healthy at %s\n", healthURL)
	} else {
		r.writePlain("Server: ⚠ responded with status %d\n", resp.StatusCode)
	}
}
