package checkout

import (
	"testing"

	"github.com/currybox/currybox/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	state := NewStore().State()
	assert.Equal(t, types.CheckoutStepCart, state.Step)
	assert.Equal(t, types.SubscriptionNone, state.SubscriptionFrequency)
	assert.Nil(t, state.DeliveryAddress)
	assert.Nil(t, state.DeliverySchedule)
}

func TestSettersCopyInputs(t *testing.T) {
	store := NewStore()

	addr := &DeliveryAddress{RecipientName: "P. Naidoo", Line1: "12 Florida Rd", City: "Durban", Postcode: "4001"}
	store.SetDeliveryAddress(addr)
	addr.City = "mutated"
	assert.Equal(t, "Durban", store.State().DeliveryAddress.City)

	schedule := &DeliverySchedule{Date: "2026-09-05", TimeSlot: "12:00-14:00"}
	store.SetDeliverySchedule(schedule)
	schedule.TimeSlot = "mutated"
	assert.Equal(t, "12:00-14:00", store.State().DeliverySchedule.TimeSlot)
}

func TestSetSubscriptionFrequencyValidates(t *testing.T) {
	store := NewStore()
	store.SetSubscriptionFrequency(types.SubscriptionWeekly)
	assert.Equal(t, types.SubscriptionWeekly, store.State().SubscriptionFrequency)

	store.SetSubscriptionFrequency(types.SubscriptionFrequency("hourly"))
	assert.Equal(t, types.SubscriptionNone, store.State().SubscriptionFrequency)
}

func TestSubmitFlag(t *testing.T) {
	store := NewStore()
	require.True(t, store.BeginSubmit())
	assert.True(t, store.InFlight())

	// duplicate submission refused while one is outstanding
	assert.False(t, store.BeginSubmit())

	store.EndSubmit()
	assert.False(t, store.InFlight())
	assert.True(t, store.BeginSubmit())
}

func TestResetRestoresInitialState(t *testing.T) {
	store := NewStore()
	store.SetStep(types.CheckoutStepPayment)
	store.SetDeliveryAddress(&DeliveryAddress{Line1: "12 Florida Rd"})
	store.SetGuestEmail("guest@example.com")
	store.SetNotes("ring the bell")
	store.SetSaveAddress(true)
	require.True(t, store.BeginSubmit())

	store.Reset()

	assert.Equal(t, NewState(), store.State())
	assert.False(t, store.InFlight())
}

func TestSnapshotOmitsInFlight(t *testing.T) {
	store := NewStore()
	store.SetStep(types.CheckoutStepDelivery)
	require.True(t, store.BeginSubmit())

	restored := RestoreStore(store.Snapshot())
	assert.Equal(t, types.CheckoutStepDelivery, restored.State().Step)
	assert.False(t, restored.InFlight(), "in-flight flag is transient")
}

func TestRestoreRepairsEmptyFields(t *testing.T) {
	restored := RestoreStore(State{})
	assert.Equal(t, types.CheckoutStepCart, restored.State().Step)
	assert.Equal(t, types.SubscriptionNone, restored.State().SubscriptionFrequency)
}
