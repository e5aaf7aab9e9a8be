package service

import (
	"context"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/domain/pricing"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/types"
)

// BuilderService drives one shopper's box configurator. Every operation is
// session scoped: it loads the persisted state, applies the mutation through
// the domain store and persists the result, all under the session lock.
type BuilderService interface {
	Start(ctx context.Context, req *dto.StartBuilderRequest) (*dto.BuilderStateResponse, error)
	Get(ctx context.Context) (*dto.BuilderStateResponse, error)
	GoToStep(ctx context.Context, step types.BuilderStep) (*dto.BuilderStateResponse, error)
	NextStep(ctx context.Context) (*dto.BuilderStateResponse, error)
	PrevStep(ctx context.Context) (*dto.BuilderStateResponse, error)
	IncrementItem(ctx context.Context, req *dto.BuilderItemRequest) (*dto.BuilderStateResponse, error)
	DecrementItem(ctx context.Context, req *dto.BuilderItemRequest) (*dto.BuilderStateResponse, error)
	AddCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)
	RemoveCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)
	IncrementCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)
	DecrementCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)
	UpdateCurrySpice(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)
	SetNotes(ctx context.Context, req *dto.BuilderNotesRequest) (*dto.BuilderStateResponse, error)
	SkipBunnyBuilder(ctx context.Context) (*dto.BuilderStateResponse, error)
	Reset(ctx context.Context) (*dto.BuilderStateResponse, error)
	AddToCart(ctx context.Context) (*dto.CartResponse, error)
}

type builderService struct {
	ServiceParams
}

func NewBuilderService(params ServiceParams) BuilderService {
	return &builderService{ServiceParams: params}
}

func (s *builderService) Start(ctx context.Context, req *dto.StartBuilderRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	unlock := s.Locks.Acquire(sessionID)
	defer unlock()

	flow := types.BuilderFlow(req.Flow)
	if !flow.Validate() {
		flow = types.FlowUnspecified
	}

	store := builder.NewStore(flow)
	if err := s.BuilderRepo.Save(ctx, sessionID, store.Snapshot()); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, store)
}

func (s *builderService) Get(ctx context.Context) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		return nil
	})
}

func (s *builderService) GoToStep(ctx context.Context, step types.BuilderStep) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		if !store.GoToStep(step) {
			return ierr.NewError("step is not reachable").
				WithHint("Complete the current step before moving on").
				WithReportableDetails(map[string]any{"step": step}).
				Mark(ierr.ErrInvalidOperation)
		}
		return nil
	})
}

func (s *builderService) NextStep(ctx context.Context) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		if !store.NextStep() {
			return ierr.NewError("cannot advance").
				WithHint("Complete the current step before moving on").
				Mark(ierr.ErrInvalidOperation)
		}
		return nil
	})
}

func (s *builderService) PrevStep(ctx context.Context) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.PrevStep()
		return nil
	})
}

func (s *builderService) IncrementItem(ctx context.Context, req *dto.BuilderItemRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	category := types.ItemCategory(req.Category)
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		item, ok := cat.Lookup(category, req.ItemID)
		if !ok {
			return unknownItemErr(category, req.ItemID)
		}
		store.IncrementItem(category, item)
		return nil
	})
}

func (s *builderService) DecrementItem(ctx context.Context, req *dto.BuilderItemRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.DecrementItem(types.ItemCategory(req.Category), req.ItemID)
		return nil
	})
}

func (s *builderService) AddCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	kind := req.CurryKind()
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		item, ok := cat.Lookup(curryCategory(kind), req.ItemID)
		if !ok {
			return unknownItemErr(curryCategory(kind), req.ItemID)
		}
		store.AddCurry(kind, item, req.Spice())
		return nil
	})
}

func (s *builderService) RemoveCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.RemoveCurry(req.CurryKind(), req.ItemID)
		return nil
	})
}

func (s *builderService) IncrementCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	kind := req.CurryKind()
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		item, ok := cat.Lookup(curryCategory(kind), req.ItemID)
		if !ok {
			return unknownItemErr(curryCategory(kind), req.ItemID)
		}
		store.IncrementCurry(kind, item)
		return nil
	})
}

func (s *builderService) DecrementCurry(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.DecrementCurry(req.CurryKind(), req.ItemID)
		return nil
	})
}

func (s *builderService) UpdateCurrySpice(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.UpdateCurrySpice(req.CurryKind(), req.ItemID, req.Spice())
		return nil
	})
}

func (s *builderService) SetNotes(ctx context.Context, req *dto.BuilderNotesRequest) (*dto.BuilderStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.SetNotes(req.Notes)
		return nil
	})
}

func (s *builderService) SkipBunnyBuilder(ctx context.Context) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		if !store.SkipBunnyBuilder() {
			return ierr.NewError("bunny builder is not skippable").
				WithHint("This step cannot be skipped in the current flow").
				Mark(ierr.ErrInvalidOperation)
		}
		return nil
	})
}

func (s *builderService) Reset(ctx context.Context) (*dto.BuilderStateResponse, error) {
	return s.withStore(ctx, func(store *builder.Store, cat *catalog.Catalog) error {
		store.Reset()
		return nil
	})
}

// AddToCart flattens the selection into priced lines, appends them to the
// cart and resets the configurator for the next box
func (s *builderService) AddToCart(ctx context.Context) (*dto.CartResponse, error) {
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

	cat, err := fetchCatalog(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}

	sel := store.Selection()
	lines := pricing.CostLineItems(sel, cat)
	if len(lines) == 0 {
		return nil, ierr.NewError("nothing to add").
			WithHint("Select at least one item before adding the box to the cart").
			Mark(ierr.ErrInvalidOperation)
	}

	cartStore, err := loadCartStore(ctx, s.ServiceParams, sessionID)
	if err != nil {
		return nil, err
	}
	cartStore.AddFromBuilder(lines)

	if err := s.CartRepo.Save(ctx, sessionID, cartStore.Snapshot()); err != nil {
		return nil, err
	}

	store.MarkAsSaved()
	store.Reset()
	if err := s.BuilderRepo.Save(ctx, sessionID, store.Snapshot()); err != nil {
		return nil, err
	}

	syncSavedCart(ctx, s.ServiceParams, cartStore)

	s.Logger.Infow("builder selection added to cart",
		"session_id", sessionID, "lines", len(lines))
	return cartResponse(cartStore), nil
}

// withStore runs one mutation under the session lock: load, mutate, persist,
// respond. The mutation's error aborts before anything is persisted.
func (s *builderService) withStore(ctx context.Context, fn func(store *builder.Store, cat *catalog.Catalog) error) (*dto.BuilderStateResponse, error) {
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

	cat, err := fetchCatalog(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}

	if err := fn(store, cat); err != nil {
		return nil, err
	}

	if err := s.BuilderRepo.Save(ctx, sessionID, store.Snapshot()); err != nil {
		return nil, err
	}
	return s.buildResponse(store, cat), nil
}

func (s *builderService) loadStore(ctx context.Context, sessionID string) (*builder.Store, error) {
	state, err := s.BuilderRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return builder.NewStore(types.FlowUnspecified), nil
	}
	return builder.RestoreStore(*state), nil
}

func (s *builderService) toResponse(ctx context.Context, store *builder.Store) (*dto.BuilderStateResponse, error) {
	cat, err := fetchCatalog(ctx, s.ServiceParams)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(store, cat), nil
}

func (s *builderService) buildResponse(store *builder.Store, cat *catalog.Catalog) *dto.BuilderStateResponse {
	nav := store.Navigation()
	sel := store.Selection()

	lines := pricing.CostLineItems(sel, cat)
	priced := make([]pricing.PricedItem, len(lines))
	for i, line := range lines {
		priced[i] = pricing.PricedItem{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}

	steps := make([]dto.StepInfo, 0, len(store.Steps()))
	for _, cfg := range store.Steps() {
		steps = append(steps, dto.StepInfo{
			Step:      cfg.Step,
			Optional:  cfg.Optional,
			Skippable: cfg.Skippable,
			Current:   cfg.Step == nav.CurrentStep,
		})
	}

	return &dto.BuilderStateResponse{
		Flow:              nav.Flow,
		CurrentStep:       nav.CurrentStep,
		BunnyBuilderPart:  nav.BunnyBuilderPart,
		Steps:             steps,
		Selection:         sel,
		HasUnsavedChanges: store.HasUnsavedChanges(),
		Lines:             lines,
		Totals:            pricing.CalculateTotals(priced, nil, s.PricingRules()),
	}
}

func curryCategory(kind types.CurryKind) types.ItemCategory {
	if kind == types.CurryKindFamily {
		return types.ItemCategoryFamily
	}
	return types.ItemCategoryBunny
}

func unknownItemErr(category types.ItemCategory, itemID string) error {
	return ierr.NewError("item not found in catalog").
		WithHint("This item is no longer on the menu").
		WithReportableDetails(map[string]any{
			"category": category,
			"item_id":  itemID,
		}).
		Mark(ierr.ErrNotFound)
}

// sessionFromContext extracts the shopper session id set by the middleware
func sessionFromContext(ctx context.Context) (string, error) {
	sessionID := types.GetSessionID(ctx)
	if sessionID == "" {
		return "", ierr.NewError("missing session id").
			WithHint("A session id header is required").
			Mark(ierr.ErrValidation)
	}
	return sessionID, nil
}

// syncSavedCart pushes the cart to the user-scoped server copy. Strictly best
// effort: guests have no copy and failures only log.
func syncSavedCart(ctx context.Context, p ServiceParams, store *cart.Store) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return
	}
	if err := p.SavedCartRepo.Save(ctx, userID, store.Snapshot()); err != nil {
		p.Logger.Warnw("saved cart sync failed", "user_id", userID, "error", err)
	}
}
