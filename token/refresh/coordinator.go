package refresh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/internal/utils"
	"github.com/jrsteele09/go-admin-client/oauth2"
	tokenjwt "github.com/jrsteele09/go-admin-client/token/jwt"
	"github.com/rs/zerolog/log"
)

// ErrRefreshFailed is returned to callers that were queued behind a refresh
// exchange that failed. It wraps the exchange error.
var ErrRefreshFailed = errors.New("token refresh failed")

// Coordinator serialises refresh exchanges across every HTTP client that shares it.
// At most one exchange is in flight; callers that hit a 401 meanwhile are queued
// and released in arrival order once the exchange settles.
type Coordinator struct {
	exchanger Exchanger
	store     Store
	observer  Observer

	mu         sync.Mutex
	refreshing bool
	queue      []func(error)
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithObserver registers an observer for refresh lifecycle events
func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewCoordinator creates a coordinator that reads and rotates the credential in store
func NewCoordinator(exchanger Exchanger, store Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		exchanger: exchanger,
		store:     store,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsRefreshing reports whether an exchange is currently in flight
func (c *Coordinator) IsRefreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// Pending returns the number of queued callers
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Reset forces the coordinator idle and drops the queue. Queued callers are not
// notified and stay blocked until their own context ends. Intended for tests.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false
	c.queue = nil
}

// HandleAuthFailure recovers from an expired access credential.
//
// failure must carry status 401 (see StatusCode); anything else is returned
// unchanged. The first caller performs the refresh exchange. Callers arriving
// while the exchange is in flight are queued and released in arrival order
// once it settles; each then replays its own request with retry, independently
// of the others. The first caller replays once the queue is released and does not
// wait for them.
//
// The exchange is detached from the first caller's context, so a cancelled
// leader does not fail the callers queued behind it.
func HandleAuthFailure[Req, Resp any](ctx context.Context, c *Coordinator, failure error, req Req, retry func(context.Context, Req) (Resp, error)) (Resp, error) {
	var zero Resp
	if StatusCode(failure) != http.StatusUnauthorized {
		return zero, failure
	}

	c.mu.Lock()
	if c.refreshing {
		released := make(chan error, 1)
		c.queue = append(c.queue, func(refreshErr error) {
			released <- refreshErr
		})
		c.mu.Unlock()
		c.observer.Queued()

		select {
		case refreshErr := <-released:
			if refreshErr != nil {
				return zero, refreshErr
			}
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return retry(ctx, req)
	}
	c.refreshing = true
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- c.refresh(context.WithoutCancel(ctx))
	}()
	select {
	case err := <-done:
		if err != nil {
			return zero, err
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	return retry(ctx, req)
}

// refresh runs the exchange, then releases every queued caller in FIFO order.
// Releasing never blocks on a replay.
func (c *Coordinator) refresh(ctx context.Context) error {
	c.observer.RefreshStarted()
	err := c.exchange(ctx)
	c.observer.RefreshFinished(err)

	c.mu.Lock()
	c.refreshing = false
	pending := c.queue
	c.queue = nil
	c.mu.Unlock()

	if err != nil {
		log.Err(err).Int("queued", len(pending)).Msg("Token refresh failed")
		queuedErr := fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		for _, continuation := range pending {
			continuation(queuedErr)
		}
		return err
	}

	log.Debug().Int("queued", len(pending)).Msg("Token refreshed, replaying queued requests")
	for _, continuation := range pending {
		continuation(nil)
	}
	c.observer.Drained(len(pending))
	return nil
}

func (c *Coordinator) exchange(ctx context.Context) error {
	current, _, err := c.store.Get(ctx, CredentialKey)
	if err != nil {
		return apperrors.Wrapf(err, "failed to read %s", CredentialKey)
	}

	resp, err := c.exchanger.RefreshToken(ctx, oauth2.RefreshRequest{RefreshToken: current})
	if err != nil {
		return err
	}
	if resp == nil || utils.Empty(resp.RefreshToken) {
		return apperrors.ErrInvalidRefreshToken
	}

	issued := utils.Value(resp.RefreshToken)
	if err := c.store.Set(ctx, CredentialKey, issued); err != nil {
		return apperrors.Wrapf(err, "failed to store %s", CredentialKey)
	}

	if claims, err := tokenjwt.Inspect(issued); err == nil && !claims.ExpiresAt.IsZero() {
		log.Debug().Time("expires_at", claims.ExpiresAt).Msg("Stored rotated refresh token")
	}
	return nil
}

// StatusCode extracts the HTTP status carried by err, or 0 when it has none.
// Any error in the chain implementing StatusCode() int qualifies.
func StatusCode(err error) int {
	var withStatus interface{ StatusCode() int }
	if errors.As(err, &withStatus) {
		return withStatus.StatusCode()
	}
	return 0
}
