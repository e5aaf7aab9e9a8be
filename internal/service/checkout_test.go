package service_test

import (
	"context"
	"testing"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/testutil"
	"github.com/currybox/currybox/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	suite.Suite
	ctx     context.Context
	params  service.ServiceParams
	stubs   *testutil.Stubs
	service service.CheckoutService
	builder service.BuilderService
	cart    service.CartService
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.ctx = types.SetSessionID(context.Background(), "sess_test")
	s.params, s.stubs = testutil.NewServiceParams()
	s.service = service.NewCheckoutService(s.params)
	s.builder = service.NewBuilderService(s.params)
	s.cart = service.NewCartService(s.params)
}

// fillCart builds one lamb bunny box and hands it to the cart
func (s *CheckoutServiceSuite) fillCart() {
	_, err := s.builder.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
	s.Require().NoError(err)
	_, err = s.builder.AddCurry(s.ctx, &dto.CurryRequest{Kind: "bunny", ItemID: "lamb", SpiceLevel: "hot"})
	s.Require().NoError(err)
	_, err = s.builder.AddToCart(s.ctx)
	s.Require().NoError(err)
}

func (s *CheckoutServiceSuite) fillDeliveryDetails() {
	_, err := s.service.Update(s.ctx, &dto.UpdateCheckoutRequest{
		Step: lo.ToPtr("payment"),
		DeliveryAddress: &checkout.DeliveryAddress{
			RecipientName: "P. Naidoo", Line1: "12 Florida Rd", City: "Durban", Postcode: "4001",
		},
		DeliverySchedule:      &checkout.DeliverySchedule{Date: "2026-09-05", TimeSlot: "12:00-14:00"},
		SubscriptionFrequency: lo.ToPtr("weekly"),
		GuestEmail:            lo.ToPtr("guest@example.com"),
		Notes:                 lo.ToPtr("ring the bell"),
	})
	s.Require().NoError(err)
}

func (s *CheckoutServiceSuite) TestGetDefaults() {
	resp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStepCart, resp.Step)
	s.False(resp.InFlight)
}

func (s *CheckoutServiceSuite) TestPartialUpdate() {
	s.fillDeliveryDetails()

	// a later update touching one field leaves the rest alone
	resp, err := s.service.Update(s.ctx, &dto.UpdateCheckoutRequest{Notes: lo.ToPtr("leave at the gate")})
	s.NoError(err)
	s.Equal("leave at the gate", resp.Notes)
	s.Equal(types.CheckoutStepPayment, resp.Step)
	s.Require().NotNil(resp.DeliveryAddress)
	s.Equal("Durban", resp.DeliveryAddress.City)
	s.Equal(types.SubscriptionWeekly, resp.SubscriptionFrequency)
}

func (s *CheckoutServiceSuite) TestInvalidEmailRejected() {
	_, err := s.service.Update(s.ctx, &dto.UpdateCheckoutRequest{GuestEmail: lo.ToPtr("not-an-email")})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CheckoutServiceSuite) TestPlaceOrderHappyPath() {
	s.fillCart()
	s.fillDeliveryDetails()

	resp, err := s.service.PlaceOrder(s.ctx)
	s.NoError(err)
	s.Equal("ord-test", resp.OrderID)
	s.False(resp.Reconciling)
	s.NotEmpty(resp.PaymentToken)

	// payment charged exactly the frozen total: 1295 + 500 delivery
	s.Equal(int64(1795), s.stubs.Payment.LastAmount)

	// snapshot carries the shopper intent
	s.Require().Len(s.stubs.Order.Created, 1)
	snapshot := s.stubs.Order.Created[0]
	s.Equal(int64(1295), snapshot.Subtotal)
	s.Equal(int64(1795), snapshot.Total)
	s.Equal("2026-09-05", snapshot.DeliveryDate)
	s.Equal(types.SubscriptionWeekly, snapshot.SubscriptionFrequency)
	s.Equal("guest@example.com", snapshot.GuestEmail)
	s.Require().NotNil(snapshot.DeliveryAddress)
	s.Equal("Durban", snapshot.DeliveryAddress.City)

	// cart cleared, checkout parked on confirmation
	cartResp, err := s.cart.Get(s.ctx)
	s.NoError(err)
	s.Empty(cartResp.Items)

	checkoutResp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStepConfirmation, checkoutResp.Step)
}

func (s *CheckoutServiceSuite) TestPlaceOrderEmptyCart() {
	_, err := s.service.PlaceOrder(s.ctx)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CheckoutServiceSuite) TestPaymentFailureLeavesEverythingIntact() {
	s.fillCart()
	s.fillDeliveryDetails()
	s.stubs.Payment.Err = ierr.NewError("card declined").
		WithHint("Payment could not be processed, you have not been charged").
		Mark(ierr.ErrHTTPClient)

	_, err := s.service.PlaceOrder(s.ctx)
	s.Error(err)

	// nothing was charged, so nothing may change
	s.Empty(s.stubs.Order.Created)
	cartResp, err := s.cart.Get(s.ctx)
	s.NoError(err)
	s.Len(cartResp.Items, 1)

	checkoutResp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStepPayment, checkoutResp.Step)
}

func (s *CheckoutServiceSuite) TestOrderFailureAfterCaptureParksPending() {
	s.fillCart()
	s.fillDeliveryDetails()
	s.stubs.Order.FailTimes = 1000 // never succeeds inline

	resp, err := s.service.PlaceOrder(s.ctx)
	s.NoError(err, "the shopper was charged, this must not surface as a failure")
	s.True(resp.Reconciling)
	s.Empty(resp.OrderID)
	s.NotEmpty(resp.Reference, "support needs a number to quote")

	// the snapshot is parked for the reconciler, keyed by the payment token
	pending, err := s.stubs.PendingOrders.GetByToken(s.ctx, resp.PaymentToken)
	s.NoError(err)
	s.Equal(order.PendingStatusOpen, pending.Status)
	s.Equal("sess_test", pending.SessionID)
	s.Equal(int64(1795), pending.Snapshot.Total)

	// the shopper is done: cart cleared, confirmation shown
	cartResp, err := s.cart.Get(s.ctx)
	s.NoError(err)
	s.Empty(cartResp.Items)
}

func (s *CheckoutServiceSuite) TestPlaceOrderTwiceSecondFailsOnEmptyCart() {
	s.fillCart()
	s.fillDeliveryDetails()

	_, err := s.service.PlaceOrder(s.ctx)
	s.NoError(err)

	_, err = s.service.PlaceOrder(s.ctx)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Equal(1, s.stubs.Payment.Calls, "the shopper is never charged twice")
}

func (s *CheckoutServiceSuite) TestReset() {
	s.fillDeliveryDetails()
	resp, err := s.service.Reset(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStepCart, resp.Step)
	s.Nil(resp.DeliveryAddress)
}
