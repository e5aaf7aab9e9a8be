package service_test

import (
	"context"
	"testing"

	"github.com/currybox/currybox/internal/api/dto"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/testutil"
	"github.com/currybox/currybox/internal/types"
	"github.com/stretchr/testify/suite"
)

type BuilderServiceSuite struct {
	suite.Suite
	ctx     context.Context
	params  service.ServiceParams
	stubs   *testutil.Stubs
	service service.BuilderService
	cart    service.CartService
}

func TestBuilderServiceSuite(t *testing.T) {
	suite.Run(t, new(BuilderServiceSuite))
}

func (s *BuilderServiceSuite) SetupTest() {
	s.ctx = types.SetSessionID(context.Background(), "sess_test")
	s.params, s.stubs = testutil.NewServiceParams()
	s.service = service.NewBuilderService(s.params)
	s.cart = service.NewCartService(s.params)
}

func (s *BuilderServiceSuite) TestStartFlow() {
	resp, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
	s.NoError(err)
	s.Equal(types.FlowBunny, resp.Flow)
	s.Equal(types.StepBunnyBuilder, resp.CurrentStep)
	s.Equal(types.BunnyBuilderPartBase, resp.BunnyBuilderPart)
	s.Len(resp.Steps, 6)
	s.True(resp.Steps[0].Current)
}

func (s *BuilderServiceSuite) TestStartReplacesInProgressBuilder() {
	_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "curry"})
	s.NoError(err)
	_, err = s.service.AddCurry(s.ctx, &dto.CurryRequest{Kind: "bunny", ItemID: "lamb", SpiceLevel: "hot"})
	s.NoError(err)

	resp, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
	s.NoError(err)
	s.Empty(resp.Selection.BunnyFillings)
	s.Equal(types.FlowBunny, resp.Flow)
}

func (s *BuilderServiceSuite) TestDefaultFlowWithoutStart() {
	resp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Equal(types.FlowUnspecified, resp.Flow)
	s.Equal(types.StepCurry, resp.CurrentStep)
}

func (s *BuilderServiceSuite) TestStatePersistsAcrossCalls() {
	_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "curry"})
	s.NoError(err)
	_, err = s.service.AddCurry(s.ctx, &dto.CurryRequest{Kind: "bunny", ItemID: "lamb", SpiceLevel: "very_hot"})
	s.NoError(err)

	resp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Require().Contains(resp.Selection.BunnyFillings, "lamb")
	s.Equal(types.SpiceLevelVeryHot, resp.Selection.BunnyFillings["lamb"].SpiceLevel)
	s.True(resp.HasUnsavedChanges)
}

func (s *BuilderServiceSuite) TestGatedNavigationRejected() {
	_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "curry"})
	s.NoError(err)

	_, err = s.service.GoToStep(s.ctx, types.StepSides)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// state unchanged after the rejected move
	resp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.Equal(types.StepBunnyBuilder, resp.CurrentStep)
}

func (s *BuilderServiceSuite) TestUnknownItemRejected() {
	_, err := s.service.IncrementItem(s.ctx, &dto.BuilderItemRequest{Category: "side", ItemID: "ghost"})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BuilderServiceSuite) TestCostingPreview() {
	_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
	s.NoError(err)
	_, err = s.service.AddCurry(s.ctx, &dto.CurryRequest{Kind: "bunny", ItemID: "lamb"})
	s.NoError(err)
	resp, err := s.service.IncrementItem(s.ctx, &dto.BuilderItemRequest{Category: "side", ItemID: "chips"})
	s.NoError(err)

	s.Require().Len(resp.Lines, 2)
	s.Equal(int64(1295+350), resp.Totals.Subtotal)
	s.Equal(int64(500), resp.Totals.DeliveryFee)
}

func (s *BuilderServiceSuite) TestAddToCartHandOff() {
	// build the same box twice; the cart merges them into one line
	for i := 0; i < 2; i++ {
		_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
		s.NoError(err)
		_, err = s.service.AddCurry(s.ctx, &dto.CurryRequest{Kind: "bunny", ItemID: "lamb", SpiceLevel: "hot"})
		s.NoError(err)

		cartResp, err := s.service.AddToCart(s.ctx)
		s.NoError(err)
		s.Require().Len(cartResp.Items, 1)
		s.Equal("bunny-lamb", cartResp.Items[0].ProductID)
		s.Equal(i+1, cartResp.Items[0].Quantity)
	}

	cartResp, err := s.cart.Get(s.ctx)
	s.NoError(err)
	s.Equal(int64(2590), cartResp.Totals.Subtotal)
	s.Equal(int64(500), cartResp.Totals.DeliveryFee)
	s.Equal(int64(3090), cartResp.Totals.Total)

	// the builder is reset and clean after the hand-off
	builderResp, err := s.service.Get(s.ctx)
	s.NoError(err)
	s.True(builderResp.Selection.IsEmpty())
	s.False(builderResp.HasUnsavedChanges)
}

func (s *BuilderServiceSuite) TestAddToCartEmptySelection() {
	_, err := s.service.AddToCart(s.ctx)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BuilderServiceSuite) TestSkipBunnyBuilderOnlyInCurryFlow() {
	_, err := s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "bunny"})
	s.NoError(err)
	_, err = s.service.SkipBunnyBuilder(s.ctx)
	s.Error(err)

	_, err = s.service.Start(s.ctx, &dto.StartBuilderRequest{Flow: "curry"})
	s.NoError(err)
	resp, err := s.service.SkipBunnyBuilder(s.ctx)
	s.NoError(err)
	s.Equal(types.StepCurry, resp.CurrentStep)
}

func (s *BuilderServiceSuite) TestMissingSessionRejected() {
	_, err := s.service.Get(context.Background())
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
