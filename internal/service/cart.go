package service

import (
	"context"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/cart"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/types"
)

// CartService owns the session cart: direct adds, quantity edits, promo codes
// and cross-device sync for signed-in shoppers
type CartService interface {
	Get(ctx context.Context) (*dto.CartResponse, error)
	AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.AddCartItemResponse, error)
	RemoveItem(ctx context.Context, lineID string) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, lineID string, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	Clear(ctx context.Context) (*dto.CartResponse, error)
	ApplyPromo(ctx context.Context, req *dto.ApplyPromoRequest) (*dto.CartResponse, error)
	RemovePromo(ctx context.Context) (*dto.CartResponse, error)
	SyncFromSaved(ctx context.Context) (*dto.CartResponse, error)
}

type cartService struct {
	ServiceParams
}

func NewCartService(params ServiceParams) CartService {
	return &cartService{ServiceParams: params}
}

func (s *cartService) Get(ctx context.Context) (*dto.CartResponse, error) {
	return s.withStore(ctx, func(store *cart.Store) error {
		return nil
	})
}

func (s *cartService) AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.AddCartItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result cart.AddItemResult
	resp, err := s.withStore(ctx, func(store *cart.Store) error {
		result = store.AddCatalogItem(req.ToPayload())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.AddCartItemResponse{Result: result, Cart: *resp}, nil
}

func (s *cartService) RemoveItem(ctx context.Context, lineID string) (*dto.CartResponse, error) {
	return s.withStore(ctx, func(store *cart.Store) error {
		if !store.RemoveItem(lineID) {
			return lineNotFoundErr(lineID)
		}
		return nil
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, lineID string, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *cart.Store) error {
		if !store.UpdateQuantity(lineID, req.Quantity) {
			return lineNotFoundErr(lineID)
		}
		return nil
	})
}

func (s *cartService) Clear(ctx context.Context) (*dto.CartResponse, error) {
	return s.withStore(ctx, func(store *cart.Store) error {
		store.Clear()
		return nil
	})
}

// ApplyPromo validates the code externally and stores whatever comes back
// verbatim. An invalid code is a successful apply with IsValid false; the
// pricing engine ignores it and the UI renders the message.
func (s *cartService) ApplyPromo(ctx context.Context, req *dto.ApplyPromoRequest) (*dto.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *cart.Store) error {
		promoCode, err := s.PromoClient.Validate(ctx, req.Code, store.Totals().Subtotal)
		if err != nil {
			return err
		}
		store.ApplyPromoCode(promoCode)
		return nil
	})
}

func (s *cartService) RemovePromo(ctx context.Context) (*dto.CartResponse, error) {
	return s.withStore(ctx, func(store *cart.Store) error {
		store.ApplyPromoCode(nil)
		return nil
	})
}

// SyncFromSaved merges the signed-in shopper's server-side copy into the
// session cart, then writes the merged result back
func (s *cartService) SyncFromSaved(ctx context.Context) (*dto.CartResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("not signed in").
			WithHint("Sign in to sync your saved cart").
			Mark(ierr.ErrValidation)
	}
	return s.withStore(ctx, func(store *cart.Store) error {
		saved, err := s.SavedCartRepo.Load(ctx, userID)
		if err != nil {
			s.Logger.Warnw("saved cart load failed", "user_id", userID, "error", err)
			return nil
		}
		if saved != nil {
			store.Merge(*saved)
		}
		return nil
	})
}

// withStore runs one cart mutation under the session lock and keeps the
// user-scoped saved copy in step afterwards
func (s *cartService) withStore(ctx context.Context, fn func(store *cart.Store) error) (*dto.CartResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	unlock := s.Locks.Acquire(sessionID)
	defer unlock()

	store, err := loadCartStore(ctx, s.ServiceParams, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(store); err != nil {
		return nil, err
	}

	if err := s.CartRepo.Save(ctx, sessionID, store.Snapshot()); err != nil {
		return nil, err
	}

	syncSavedCart(ctx, s.ServiceParams, store)
	return cartResponse(store), nil
}

// loadCartStore restores the session cart, or creates an empty one governed
// by the configured pricing rules
func loadCartStore(ctx context.Context, p ServiceParams, sessionID string) (*cart.Store, error) {
	state, err := p.CartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rules := p.PricingRules()
	if state == nil {
		return cart.NewStore(rules), nil
	}
	return cart.RestoreStore(*state, rules), nil
}

func cartResponse(store *cart.Store) *dto.CartResponse {
	return &dto.CartResponse{
		Items:  store.Items(),
		Promo:  store.Promo(),
		Totals: store.Totals(),
	}
}

func lineNotFoundErr(lineID string) error {
	return ierr.NewError("cart line not found").
		WithHint("This item is no longer in the cart").
		WithReportableDetails(map[string]any{"line_id": lineID}).
		Mark(ierr.ErrNotFound)
}
