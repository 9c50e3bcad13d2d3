package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/rs/zerolog/log"
)

// handleError is the response error interceptor shared by every backend client
func (c *Client) handleError(ctx context.Context, req *Request, statusErr *StatusError) (*Response, error) {
	switch statusErr.Status {
	case http.StatusUnauthorized:
		c.metrics.ObserveAuthFailure(c.name, statusErr.Status)
		if c.coordinator == nil || req.authRetries >= c.maxAuthRetries {
			return nil, statusErr
		}
		resp, err := refresh.HandleAuthFailure(ctx, c.coordinator, statusErr, req, c.replay)
		if err != nil {
			// No logout here: the caller decides what a failed refresh means.
			log.Err(err).Str("client", c.name).Str("request_id", req.ID).Msg("Request not recovered by token refresh")
			return nil, err
		}
		return resp, nil

	case http.StatusForbidden, http.StatusTooManyRequests:
		c.metrics.ObserveAuthFailure(c.name, statusErr.Status)
		c.endSession(ctx, statusErr)
		return nil, statusErr

	case http.StatusBadRequest:
		c.notifier.NotifyError(ctx, statusErr.FirstMessage())
		return nil, statusErr

	default:
		return nil, statusErr
	}
}

// endSession drops every trace of the signed-in user
func (c *Client) endSession(ctx context.Context, statusErr *StatusError) {
	log.Warn().Str("client", c.name).Int("status", statusErr.Status).Str("request_id", statusErr.RequestID).Msg("Session ended by backend")

	if c.session != nil {
		c.session.ClearProfile()
	}
	if c.store != nil {
		if err := c.store.Remove(ctx, refresh.CredentialKey); err != nil {
			log.Err(err).Str("client", c.name).Msg("Failed to remove refresh token")
		}
	}
	if c.onLogout != nil {
		c.onLogout(ctx, statusErr)
	}
}
