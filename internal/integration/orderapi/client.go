package orderapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/httpclient"
	"github.com/currybox/currybox/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateResult is the order service's acknowledgement
type CreateResult struct {
	OrderID string `json:"order_id"`
}

// Client creates order records in the external order service. Creation is
// idempotent keyed by the payment confirmation token, so a retry after an
// ambiguous failure can never double-create an order.
type Client interface {
	Create(ctx context.Context, snapshot order.Snapshot, paymentToken string) (*CreateResult, error)
}

type client struct {
	http httpclient.Client
	cfg  config.CollaboratorConfig
	log  *logger.Logger
}

func NewClient(http httpclient.Client, cfg *config.Configuration, log *logger.Logger) Client {
	return &client{http: http, cfg: cfg.Order, log: log}
}

func (c *client) Create(ctx context.Context, snapshot order.Snapshot, paymentToken string) (*CreateResult, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/v1/orders", c.cfg.BaseURL),
		Headers: map[string]string{
			"Authorization":   fmt.Sprintf("Bearer %s", c.cfg.APIKey),
			"Idempotency-Key": paymentToken,
		},
		Body: payload,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Order creation failed").
			Mark(ierr.ErrHTTPClient)
	}

	var result CreateResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected response from the order service").
			Mark(ierr.ErrHTTPClient)
	}

	c.log.Infow("order created", "order_id", result.OrderID)
	return &result, nil
}
