package service_test

import (
	"context"
	"testing"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/cart"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/testutil"
	"github.com/currybox/currybox/internal/types"
	"github.com/stretchr/testify/suite"
)

type CartServiceSuite struct {
	suite.Suite
	ctx     context.Context
	params  service.ServiceParams
	stubs   *testutil.Stubs
	service service.CartService
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceSuite))
}

func (s *CartServiceSuite) SetupTest() {
	s.ctx = types.SetSessionID(context.Background(), "sess_test")
	s.params, s.stubs = testutil.NewServiceParams()
	s.service = service.NewCartService(s.params)
}

func (s *CartServiceSuite) addLassi(quantity int) *dto.AddCartItemResponse {
	max := 3
	resp, err := s.service.AddItem(s.ctx, &dto.AddCartItemRequest{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: quantity, Category: "drink", MaxQuantity: &max,
	})
	s.Require().NoError(err)
	return resp
}

func (s *CartServiceSuite) TestEmptyCart() {
	resp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Empty(resp.Items)
	s.Equal(int64(0), resp.Totals.Subtotal)
	s.Equal(int64(500), resp.Totals.Total, "delivery fee applies even to an empty preview")
}

func (s *CartServiceSuite) TestAddItemReportsPartialSuccess() {
	first := s.addLassi(2)
	s.True(first.Result.Added)
	s.Equal(2, first.Result.AddedQuantity)
	s.Equal(1, first.Result.Remaining)

	second := s.addLassi(5)
	s.True(second.Result.Added)
	s.Equal(1, second.Result.AddedQuantity)
	s.True(second.Result.LimitReached)
	s.Equal(0, second.Result.Remaining)
	s.Require().Len(second.Cart.Items, 1)
	s.Equal(3, second.Cart.Items[0].Quantity)
}

func (s *CartServiceSuite) TestUpdateAndRemove() {
	resp := s.addLassi(2)
	lineID := resp.Cart.Items[0].ID

	updated, err := s.service.UpdateQuantity(s.ctx, lineID, &dto.UpdateCartItemRequest{Quantity: 1})
	s.NoError(err)
	s.Equal(1, updated.Items[0].Quantity)

	removed, err := s.service.RemoveItem(s.ctx, lineID)
	s.NoError(err)
	s.Empty(removed.Items)

	_, err = s.service.RemoveItem(s.ctx, lineID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CartServiceSuite) TestApplyPromo() {
	s.addLassi(2)
	s.stubs.Promo.Result = &cart.PromoCode{
		Code: "TEN", DiscountType: types.DiscountTypePercentage, DiscountValue: 10, IsValid: true,
	}

	resp, err := s.service.ApplyPromo(s.ctx, &dto.ApplyPromoRequest{Code: "TEN"})
	s.NoError(err)
	s.Require().NotNil(resp.Promo)
	s.Equal("TEN", resp.Promo.Code)
	s.Equal(int64(79), resp.Totals.PromoDiscount) // 790 * 10% = 79
	s.Equal(1, s.stubs.Promo.Calls)
}

func (s *CartServiceSuite) TestInvalidPromoStoredWithMessage() {
	s.addLassi(1)
	s.stubs.Promo.Result = &cart.PromoCode{Code: "EXPIRED", IsValid: false, ErrorMessage: "code expired"}

	resp, err := s.service.ApplyPromo(s.ctx, &dto.ApplyPromoRequest{Code: "EXPIRED"})
	s.NoError(err, "an invalid code is a successful lookup, not an error")
	s.Require().NotNil(resp.Promo)
	s.False(resp.Promo.IsValid)
	s.Equal("code expired", resp.Promo.ErrorMessage)
	s.Equal(int64(0), resp.Totals.PromoDiscount)
}

func (s *CartServiceSuite) TestRemovePromo() {
	s.addLassi(1)
	s.stubs.Promo.Result = &cart.PromoCode{Code: "TEN", IsValid: true}
	_, err := s.service.ApplyPromo(s.ctx, &dto.ApplyPromoRequest{Code: "TEN"})
	s.NoError(err)

	resp, err := s.service.RemovePromo(s.ctx)
	s.NoError(err)
	s.Nil(resp.Promo)
}

func (s *CartServiceSuite) TestClear() {
	s.addLassi(2)
	resp, err := s.service.Clear(s.ctx)
	s.NoError(err)
	s.Empty(resp.Items)
	s.Nil(resp.Promo)
}

func (s *CartServiceSuite) TestSavedCartSyncForSignedInShopper() {
	userCtx := types.SetUserID(s.ctx, "user_1")

	// mutations by a signed-in shopper keep the server copy in step
	max := 3
	_, err := s.service.AddItem(userCtx, &dto.AddCartItemRequest{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: 2, Category: "drink", MaxQuantity: &max,
	})
	s.Require().NoError(err)

	saved, err := s.stubs.SavedCarts.Load(userCtx, "user_1")
	s.NoError(err)
	s.Require().NotNil(saved)
	s.Len(saved.Items, 1)
}

func (s *CartServiceSuite) TestSyncFromSavedMergesServerCopy() {
	userCtx := types.SetUserID(s.ctx, "user_1")
	s.Require().NoError(s.stubs.SavedCarts.Save(userCtx, "user_1", cart.State{
		Items: []cart.Item{{
			ID: "line_x", ProductID: "drink-cola", Name: "Cola",
			Price: 250, Quantity: 2, Category: types.ItemCategoryDrink,
		}},
	}))

	resp, err := s.service.SyncFromSaved(userCtx)
	s.NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("drink-cola", resp.Items[0].ProductID)
}

func (s *CartServiceSuite) TestSyncFromSavedRequiresUser() {
	_, err := s.service.SyncFromSaved(s.ctx)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
