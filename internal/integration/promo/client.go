package promo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/cart"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/httpclient"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/types"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client validates promo codes against the external promo service. The cart
// stores whatever comes back verbatim; invalid codes are a successful lookup
// with IsValid false, not an error.
type Client interface {
	Validate(ctx context.Context, code string, subtotal int64) (*cart.PromoCode, error)
}

type client struct {
	http httpclient.Client
	cfg  config.CollaboratorConfig
	log  *logger.Logger
}

func NewClient(http httpclient.Client, cfg *config.Configuration, log *logger.Logger) Client {
	return &client{http: http, cfg: cfg.Promo, log: log}
}

type validateRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

type validateResponse struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int64  `json:"discount_value"`
	Valid         bool   `json:"valid"`
	Message       string `json:"message,omitempty"`
}

func (c *client) Validate(ctx context.Context, code string, subtotal int64) (*cart.PromoCode, error) {
	payload, err := json.Marshal(validateRequest{Code: code, Subtotal: subtotal})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/v1/promos/validate", c.cfg.BaseURL),
		Headers: map[string]string{
			"Authorization": fmt.Sprintf("Bearer %s", c.cfg.APIKey),
		},
		Body: payload,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not validate the promo code, please retry").
			Mark(ierr.ErrHTTPClient)
	}

	var result validateResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected response from the promo service").
			Mark(ierr.ErrHTTPClient)
	}

	c.log.Debugw("promo code validated", "code", result.Code, "valid", result.Valid)

	return &cart.PromoCode{
		Code:          result.Code,
		DiscountType:  parseDiscountType(result.DiscountType),
		DiscountValue: result.DiscountValue,
		IsValid:       result.Valid,
		ErrorMessage:  result.Message,
	}, nil
}

// parseDiscountType defaults unknown types to fixed so a bad payload can
// never inflate a percentage discount
func parseDiscountType(s string) types.DiscountType {
	if types.DiscountType(s) == types.DiscountTypePercentage {
		return types.DiscountTypePercentage
	}
	return types.DiscountTypeFixed
}
