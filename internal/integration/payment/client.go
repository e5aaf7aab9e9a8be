package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/currybox/currybox/internal/config"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/httpclient"
	"github.com/currybox/currybox/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Confirmation is the outcome of a payment attempt. Token is the provider's
// confirmation token and doubles as the idempotency key for order creation.
type Confirmation struct {
	Token    string `json:"token"`
	Captured bool   `json:"captured"`
}

// Client charges the shopper through the external payment provider
type Client interface {
	// Confirm captures the given amount for the session. A returned error
	// with Captured true on the confirmation means the money moved even
	// though something downstream broke.
	Confirm(ctx context.Context, sessionID string, amount int64) (*Confirmation, error)
}

type client struct {
	http httpclient.Client
	cfg  config.CollaboratorConfig
	log  *logger.Logger
}

func NewClient(http httpclient.Client, cfg *config.Configuration, log *logger.Logger) Client {
	return &client{http: http, cfg: cfg.Payment, log: log}
}

type confirmRequest struct {
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
}

func (c *client) Confirm(ctx context.Context, sessionID string, amount int64) (*Confirmation, error) {
	payload, err := json.Marshal(confirmRequest{SessionID: sessionID, Amount: amount})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/v1/payments/confirm", c.cfg.BaseURL),
		Headers: map[string]string{
			"Authorization": fmt.Sprintf("Bearer %s", c.cfg.APIKey),
		},
		Body: payload,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Payment could not be processed, you have not been charged").
			Mark(ierr.ErrHTTPClient)
	}

	var confirmation Confirmation
	if err := json.Unmarshal(resp.Body, &confirmation); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected response from the payment provider").
			Mark(ierr.ErrHTTPClient)
	}

	c.log.Infow("payment confirmed", "session_id", sessionID, "amount", amount, "captured", confirmation.Captured)
	return &confirmation, nil
}
