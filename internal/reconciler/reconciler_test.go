package reconciler_test

import (
	"context"
	"testing"
	"time"

	"github.com/currybox/currybox/internal/domain/order"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/reconciler"
	"github.com/currybox/currybox/internal/testutil"
	"github.com/stretchr/testify/require"
)

func pendingFixture() *order.Pending {
	return order.NewPending("sess_test", "pay-token-1", order.Snapshot{
		Subtotal: 1295,
		Total:    1795,
	})
}

func TestResumesOpenRecordsOnStart(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewInMemoryPendingOrderRepository()
	orders := &testutil.StubOrderClient{}

	pending := pendingFixture()
	require.NoError(t, repo.Save(ctx, pending))

	rec := reconciler.New(repo, orders, logger.L)
	require.NoError(t, rec.Start(ctx))
	defer rec.Stop(ctx)

	require.Eventually(t, func() bool {
		got, err := repo.Get(ctx, pending.ID)
		return err == nil && got.Status == order.PendingStatusResolved
	}, 5*time.Second, 20*time.Millisecond)

	require.Equal(t, []string{"pay-token-1"}, orders.Tokens)
}

func TestEnqueueResolvesRecord(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewInMemoryPendingOrderRepository()
	orders := &testutil.StubOrderClient{}

	rec := reconciler.New(repo, orders, logger.L)
	require.NoError(t, rec.Start(ctx))
	defer rec.Stop(ctx)

	pending := pendingFixture()
	require.NoError(t, repo.Save(ctx, pending))
	rec.Enqueue(pending)

	require.Eventually(t, func() bool {
		got, err := repo.Get(ctx, pending.ID)
		return err == nil && got.Status == order.PendingStatusResolved
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRetriesUntilOrderServiceRecovers(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewInMemoryPendingOrderRepository()
	orders := &testutil.StubOrderClient{FailTimes: 2}

	rec := reconciler.New(repo, orders, logger.L)
	require.NoError(t, rec.Start(ctx))
	defer rec.Stop(ctx)

	pending := pendingFixture()
	require.NoError(t, repo.Save(ctx, pending))
	rec.Enqueue(pending)

	require.Eventually(t, func() bool {
		got, err := repo.Get(ctx, pending.ID)
		return err == nil && got.Status == order.PendingStatusResolved
	}, 10*time.Second, 50*time.Millisecond)

	require.GreaterOrEqual(t, orders.Calls, 3)
}
