// Package finance wraps the cash balance routes of the finance backend.
package finance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/apiclient"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
)

const cashBalancePath = "finance/cash-balance"

type Service struct {
	client *apiclient.Client
}

func New(client *apiclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetCashBalance(ctx context.Context) (*adminmodel.CashBalance, error) {
	var envelope adminmodel.Envelope[adminmodel.CashBalance]
	if err := s.client.GetJSON(ctx, cashBalancePath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("[finance GetCashBalance] %w", err)
	}
	return &envelope.Data, nil
}

// UpdateCashBalance records a ledger entry and returns the resulting balance
func (s *Service) UpdateCashBalance(ctx context.Context, req adminmodel.UpdateCashBalanceRequest) (*adminmodel.CashBalance, error) {
	if req.Value <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[finance UpdateCashBalance] value must be positive")
	}

	var envelope adminmodel.Envelope[adminmodel.CashBalance]
	if err := s.client.SendJSON(ctx, http.MethodPut, cashBalancePath, req, &envelope); err != nil {
		return nil, fmt.Errorf("[finance UpdateCashBalance] %w", err)
	}
	return &envelope.Data, nil
}

// GetCashBalanceHistory fetches one page of the ledger. A zero limit uses
// adminmodel.DefaultHistoryLimit; an empty cursor starts from the beginning.
func (s *Service) GetCashBalanceHistory(ctx context.Context, params adminmodel.CashBalanceHistoryParams) (*adminmodel.CashBalanceHistory, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = adminmodel.DefaultHistoryLimit
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}

	var envelope adminmodel.Envelope[adminmodel.CashBalanceHistory]
	if err := s.client.GetJSON(ctx, cashBalancePath+"/history", query, &envelope); err != nil {
		return nil, fmt.Errorf("[finance GetCashBalanceHistory] %w", err)
	}
	return &envelope.Data, nil
}
