package testutil

import (
	"context"

	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/integration/orderapi"
	"github.com/currybox/currybox/internal/integration/payment"
)

// StubPromoClient returns a canned validation result
type StubPromoClient struct {
	Result *cart.PromoCode
	Err    error
	Calls  int
}

func (c *StubPromoClient) Validate(_ context.Context, code string, _ int64) (*cart.PromoCode, error) {
	c.Calls++
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Result != nil {
		return c.Result, nil
	}
	return &cart.PromoCode{Code: code, IsValid: false, ErrorMessage: "unknown code"}, nil
}

// StubPaymentClient confirms payments with a fixed token
type StubPaymentClient struct {
	Token string
	Err   error
	Calls int

	LastAmount int64
}

func (c *StubPaymentClient) Confirm(_ context.Context, _ string, amount int64) (*payment.Confirmation, error) {
	c.Calls++
	c.LastAmount = amount
	if c.Err != nil {
		return nil, c.Err
	}
	token := c.Token
	if token == "" {
		token = "pay-token-test"
	}
	return &payment.Confirmation{Token: token, Captured: true}, nil
}

// StubOrderClient records created orders and can fail the first N calls to
// exercise the reconciliation path
type StubOrderClient struct {
	OrderID   string
	FailTimes int
	Calls     int

	Created []order.Snapshot
	Tokens  []string
}

func (c *StubOrderClient) Create(_ context.Context, snapshot order.Snapshot, paymentToken string) (*orderapi.CreateResult, error) {
	c.Calls++
	if c.Calls <= c.FailTimes {
		return nil, ierr.NewError("order service unavailable").Mark(ierr.ErrHTTPClient)
	}

	// idempotency: a token already seen returns the same order
	for _, t := range c.Tokens {
		if t == paymentToken {
			return &orderapi.CreateResult{OrderID: c.orderID()}, nil
		}
	}

	c.Created = append(c.Created, snapshot)
	c.Tokens = append(c.Tokens, paymentToken)
	return &orderapi.CreateResult{OrderID: c.orderID()}, nil
}

func (c *StubOrderClient) orderID() string {
	if c.OrderID != "" {
		return c.OrderID
	}
	return "ord-test"
}
