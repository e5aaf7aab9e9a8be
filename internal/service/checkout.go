package service

import (
	"context"
	"fmt"
	"time"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/types"
)

const submitMarkerTTL = 2 * time.Minute

// CheckoutService owns the multi-page checkout sequence and the order
// submission itself
type CheckoutService interface {
	Get(ctx context.Context) (*dto.CheckoutStateResponse, error)
	Update(ctx context.Context, req *dto.UpdateCheckoutRequest) (*dto.CheckoutStateResponse, error)
	Reset(ctx context.Context) (*dto.CheckoutStateResponse, error)
	PlaceOrder(ctx context.Context) (*dto.PlaceOrderResponse, error)
}

type checkoutService struct {
	ServiceParams
}

func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{ServiceParams: params}
}

func (s *checkoutService) Get(ctx context.Context) (*dto.CheckoutStateResponse, error) {
	return s.withStore(ctx, func(store *checkout.Store) error {
		return nil
	})
}

func (s *checkoutService) Update(ctx context.Context, req *dto.UpdateCheckoutRequest) (*dto.CheckoutStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *checkout.Store) error {
		if req.Step != nil {
			store.SetStep(types.CheckoutStep(*req.Step))
		}
		if req.DeliveryAddress != nil {
			store.SetDeliveryAddress(req.DeliveryAddress)
		}
		if req.DeliverySchedule != nil {
			store.SetDeliverySchedule(req.DeliverySchedule)
		}
		if req.SubscriptionFrequency != nil {
			store.SetSubscriptionFrequency(types.SubscriptionFrequency(*req.SubscriptionFrequency))
		}
		if req.SaveAddress != nil {
			store.SetSaveAddress(*req.SaveAddress)
		}
		if req.SavePaymentMethod != nil {
			store.SetSavePaymentMethod(*req.SavePaymentMethod)
		}
		if req.GuestEmail != nil {
			store.SetGuestEmail(*req.GuestEmail)
		}
		if req.Notes != nil {
			store.SetNotes(*req.Notes)
		}
		return nil
	})
}

func (s *checkoutService) Reset(ctx context.Context) (*dto.CheckoutStateResponse, error) {
	return s.withStore(ctx, func(store *checkout.Store) error {
		store.Reset()
		return nil
	})
}

// PlaceOrder freezes the cart into a snapshot, charges the shopper and
// creates the order record.
//
// Failure handling follows the money. A payment failure aborts cleanly,
// nothing was charged and nothing changed. An order creation failure after
// the payment captured must NOT roll anything back: the charge is real, so
// the snapshot is parked as a pending order and the reconciler replays it
// until the (idempotent) creation lands.
func (s *checkoutService) PlaceOrder(ctx context.Context) (*dto.PlaceOrderResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	unlock := s.Locks.Acquire(sessionID)
	defer unlock()

	marker := submitMarkerKey(sessionID)
	if _, busy := s.Cache.Get(ctx, marker); busy {
		return nil, ierr.NewError("submission already in progress").
			WithHint("Your order is already being placed").
			Mark(ierr.ErrInvalidOperation)
	}
	s.Cache.Set(ctx, marker, true, submitMarkerTTL)
	defer s.Cache.Delete(ctx, marker)

	cartStore, err := loadCartStore(ctx, s.ServiceParams, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cartStore.Items()) == 0 {
		return nil, ierr.NewError("cart is empty").
			WithHint("Add something to the cart before checking out").
			Mark(ierr.ErrInvalidOperation)
	}

	checkoutStore, err := s.loadStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := buildSnapshot(cartStore, checkoutStore.State())

	confirmation, err := s.PaymentClient.Confirm(ctx, sessionID, snapshot.Total)
	if err != nil {
		// nothing was charged, the shopper stays on the payment page
		return nil, err
	}

	resp := &dto.PlaceOrderResponse{
		PaymentToken: confirmation.Token,
		Snapshot:     snapshot,
	}

	created, err := s.OrderClient.Create(ctx, snapshot, confirmation.Token)
	if err != nil {
		pending := order.NewPending(sessionID, confirmation.Token, snapshot)
		if saveErr := s.PendingOrderRepo.Save(ctx, pending); saveErr != nil {
			// money moved and we could not even park the record; surface the
			// failure, the payment token lets support resolve it manually
			s.Logger.Errorw("order creation and pending record both failed",
				"session_id", sessionID, "payment_token", confirmation.Token,
				"create_error", err, "save_error", saveErr)
			return nil, saveErr
		}
		s.Reconciler.Enqueue(pending)
		resp.Reconciling = true
		resp.Reference = pending.Reference
		s.Logger.Warnw("order creation failed after payment capture, queued for reconciliation",
			"session_id", sessionID, "pending_id", pending.ID, "error", err)
	} else {
		resp.OrderID = created.OrderID
	}

	s.finishCheckout(ctx, sessionID, checkoutStore, cartStore)
	return resp, nil
}

// finishCheckout clears the cart and parks the checkout on the confirmation
// page. Persistence failures here only log, the order already exists.
func (s *checkoutService) finishCheckout(ctx context.Context, sessionID string, checkoutStore *checkout.Store, cartStore *cart.Store) {
	cartStore.Clear()
	if err := s.CartRepo.Save(ctx, sessionID, cartStore.Snapshot()); err != nil {
		s.Logger.Errorw("failed to clear cart after order", "session_id", sessionID, "error", err)
	}

	checkoutStore.Reset()
	checkoutStore.SetStep(types.CheckoutStepConfirmation)
	if err := s.CheckoutRepo.Save(ctx, sessionID, checkoutStore.Snapshot()); err != nil {
		s.Logger.Errorw("failed to reset checkout after order", "session_id", sessionID, "error", err)
	}

	if userID := types.GetUserID(ctx); userID != "" {
		if err := s.SavedCartRepo.Delete(ctx, userID); err != nil {
			s.Logger.Warnw("failed to clear saved cart after order", "user_id", userID, "error", err)
		}
	}
}

// buildSnapshot freezes the cart and checkout into the view handed to the
// order service; nothing in it is recalculated afterwards
func buildSnapshot(cartStore *cart.Store, state checkout.State) order.Snapshot {
	totals := cartStore.Totals()
	snapshot := order.Snapshot{
		Items:                 cartStore.Items(),
		Subtotal:              totals.Subtotal,
		DeliveryFee:           totals.DeliveryFee,
		Discount:              totals.Discount,
		Total:                 totals.Total,
		DeliveryAddress:       state.DeliveryAddress,
		SubscriptionFrequency: state.SubscriptionFrequency,
		GuestEmail:            state.GuestEmail,
		Notes:                 state.Notes,
	}
	if state.DeliverySchedule != nil {
		snapshot.DeliveryDate = state.DeliverySchedule.Date
		snapshot.DeliveryTimeSlot = state.DeliverySchedule.TimeSlot
	}
	if promo := cartStore.Promo(); promo != nil && promo.IsValid {
		snapshot.PromoCode = promo.Code
	}
	return snapshot
}

func (s *checkoutService) withStore(ctx context.Context, fn func(store *checkout.Store) error) (*dto.CheckoutStateResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	unlock := s.Locks.Acquire(sessionID)
	defer unlock()

	store, err := s.loadStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(store); err != nil {
		return nil, err
	}

	if err := s.CheckoutRepo.Save(ctx, sessionID, store.Snapshot()); err != nil {
		return nil, err
	}

	_, inFlight := s.Cache.Get(ctx, submitMarkerKey(sessionID))
	return &dto.CheckoutStateResponse{State: store.State(), InFlight: inFlight}, nil
}

func (s *checkoutService) loadStore(ctx context.Context, sessionID string) (*checkout.Store, error) {
	state, err := s.CheckoutRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return checkout.NewStore(), nil
	}
	return checkout.RestoreStore(*state), nil
}

func submitMarkerKey(sessionID string) string {
	return fmt.Sprintf("checkout:submit:%s", sessionID)
}
