// Package setting wraps the setting backend: the organization's core setting
// and the third-party configuration keys.
package setting

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/apiclient"
	"github.com/jrsteele09/go-admin-client/sessions"
)

const (
	corePath      = "setting/core"
	configKeyPath = "setting/config-key"
)

type Service struct {
	client *apiclient.Client
	state  *sessions.AppState
}

// New creates the service; state may be nil
func New(client *apiclient.Client, state *sessions.AppState) *Service {
	return &Service{client: client, state: state}
}

// GetCoreSetting loads the core setting and keeps it in the app state
func (s *Service) GetCoreSetting(ctx context.Context) (*adminmodel.CoreSetting, error) {
	var envelope adminmodel.Envelope[adminmodel.CoreSetting]
	if err := s.client.GetJSON(ctx, corePath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("[setting GetCoreSetting] %w", err)
	}
	if s.state != nil {
		s.state.SetCoreSetting(&envelope.Data)
	}
	return &envelope.Data, nil
}

func (s *Service) GetConfigKeys(ctx context.Context) (*adminmodel.ConfigKeys, error) {
	var envelope adminmodel.Envelope[adminmodel.ConfigKeys]
	if err := s.client.GetJSON(ctx, configKeyPath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("[setting GetConfigKeys] %w", err)
	}
	return &envelope.Data, nil
}
