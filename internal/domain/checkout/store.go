package checkout

import (
	"github.com/currybox/currybox/internal/types"
)

// Store is a pure state container for the checkout sequence. Pages read the
// slice they need and write back on submit; the store performs no validation.
type Store struct {
	state State
	// inFlight mirrors an outstanding payment/order call so the UI can
	// disable the triggering action; the store does not enforce it
	inFlight bool
}

func NewStore() *Store {
	return &Store{state: NewState()}
}

// State returns a copy of the current checkout state
func (s *Store) State() State {
	return s.state
}

func (s *Store) SetStep(step types.CheckoutStep) {
	s.state.Step = step
}

func (s *Store) SetDeliveryAddress(address *DeliveryAddress) {
	if address == nil {
		s.state.DeliveryAddress = nil
		return
	}
	a := *address
	s.state.DeliveryAddress = &a
}

func (s *Store) SetDeliverySchedule(schedule *DeliverySchedule) {
	if schedule == nil {
		s.state.DeliverySchedule = nil
		return
	}
	sc := *schedule
	s.state.DeliverySchedule = &sc
}

func (s *Store) SetSubscriptionFrequency(frequency types.SubscriptionFrequency) {
	if !frequency.Validate() {
		frequency = types.SubscriptionNone
	}
	s.state.SubscriptionFrequency = frequency
}

func (s *Store) SetSaveAddress(save bool) {
	s.state.SaveAddress = save
}

func (s *Store) SetSavePaymentMethod(save bool) {
	s.state.SavePaymentMethod = save
}

func (s *Store) SetGuestEmail(email string) {
	s.state.GuestEmail = email
}

func (s *Store) SetNotes(notes string) {
	s.state.Notes = notes
}

// BeginSubmit marks an order/payment call as outstanding. Returns false when
// one is already in flight so duplicate submissions can be refused.
func (s *Store) BeginSubmit() bool {
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// EndSubmit clears the in-flight flag
func (s *Store) EndSubmit() {
	s.inFlight = false
}

// InFlight reports whether a submission is outstanding
func (s *Store) InFlight() bool {
	return s.inFlight
}

// Reset restores the initial empty state. Must be called after a completed or
// abandoned checkout.
func (s *Store) Reset() {
	s.state = NewState()
	s.inFlight = false
}

// Snapshot returns the serializable state. The in-flight flag is transient
// and deliberately not persisted.
func (s *Store) Snapshot() State {
	return s.state
}

// RestoreStore rebuilds a store from a persisted snapshot
func RestoreStore(state State) *Store {
	if state.Step == "" {
		state.Step = types.CheckoutStepCart
	}
	if !state.SubscriptionFrequency.Validate() {
		state.SubscriptionFrequency = types.SubscriptionNone
	}
	return &Store{state: state}
}
