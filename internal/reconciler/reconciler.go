package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/currybox/currybox/internal/domain/order"
	"github.com/currybox/currybox/internal/integration/orderapi"
	"github.com/currybox/currybox/internal/logger"
	"github.com/sourcegraph/conc/pool"
)

const (
	// maxAttempts bounds how often a pending order is retried before it is
	// parked for manual follow up
	maxAttempts = 8

	// scanInterval is how often open records are re-queued. Covers records
	// whose in-process retries were exhausted or that another process left
	// behind.
	scanInterval = time.Minute

	resolveTimeout = 2 * time.Minute
)

// Reconciler resolves captured payments that have no order record yet. Order
// creation is idempotent keyed by the payment token, so replaying a record is
// always safe.
type Reconciler struct {
	repo   order.PendingRepository
	orders orderapi.Client
	log    *logger.Logger

	queue   chan *order.Pending
	workers *pool.Pool
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(repo order.PendingRepository, orders orderapi.Client, log *logger.Logger) *Reconciler {
	return &Reconciler{
		repo:     repo,
		orders:   orders,
		log:      log,
		queue:    make(chan *order.Pending, 64),
		workers:  pool.New().WithMaxGoroutines(2),
		done:     make(chan struct{}),
		inFlight: make(map[string]struct{}),
	}
}

// Start resumes any records a previous process left open, then begins
// consuming the queue
func (r *Reconciler) Start(ctx context.Context) error {
	open, err := r.repo.ListOpen(ctx)
	if err != nil {
		return err
	}
	for _, pending := range open {
		r.Enqueue(pending)
	}
	if len(open) > 0 {
		r.log.Infow("resuming pending order reconciliation", "count", len(open))
	}

	r.wg.Add(1)
	go r.run()
	return nil
}

// Stop drains in-flight work and shuts the worker pool down
func (r *Reconciler) Stop(ctx context.Context) error {
	close(r.done)
	r.wg.Wait()
	r.workers.Wait()
	return nil
}

// Enqueue hands a pending record to the worker pool without blocking the
// caller. A full queue is fine, the periodic scan picks the record up later.
func (r *Reconciler) Enqueue(pending *order.Pending) {
	select {
	case r.queue <- pending:
	default:
		r.log.Warnw("reconciler queue full, deferring to periodic scan", "id", pending.ID)
	}
}

func (r *Reconciler) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case pending := <-r.queue:
			r.dispatch(pending)
		case <-ticker.C:
			r.rescan()
		}
	}
}

func (r *Reconciler) rescan() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	open, err := r.repo.ListOpen(ctx)
	if err != nil {
		r.log.Errorw("failed to scan for pending orders", "error", err)
		return
	}
	for _, pending := range open {
		r.Enqueue(pending)
	}
}

func (r *Reconciler) dispatch(pending *order.Pending) {
	r.mu.Lock()
	if _, busy := r.inFlight[pending.ID]; busy {
		r.mu.Unlock()
		return
	}
	r.inFlight[pending.ID] = struct{}{}
	r.mu.Unlock()

	r.workers.Go(func() {
		defer func() {
			r.mu.Lock()
			delete(r.inFlight, pending.ID)
			r.mu.Unlock()
		}()
		r.resolve(pending)
	})
}

func (r *Reconciler) resolve(pending *order.Pending) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	err := backoff.Retry(func() error {
		_, err := r.orders.Create(ctx, pending.Snapshot, pending.PaymentToken)
		return err
	}, policy)

	pending.Attempts++
	pending.UpdatedAt = time.Now().UTC()

	if err != nil {
		pending.LastError = err.Error()
		if pending.Attempts >= maxAttempts {
			pending.Status = order.PendingStatusAbandoned
			r.log.Errorw("pending order abandoned after repeated failures",
				"id", pending.ID, "attempts", pending.Attempts, "error", err)
		} else {
			r.log.Warnw("pending order reconciliation failed, will retry",
				"id", pending.ID, "attempts", pending.Attempts, "error", err)
		}
	} else {
		pending.Status = order.PendingStatusResolved
		pending.LastError = ""
		r.log.Infow("pending order reconciled", "id", pending.ID, "attempts", pending.Attempts)
	}

	if err := r.repo.Update(ctx, pending); err != nil {
		r.log.Errorw("failed to update pending order record", "id", pending.ID, "error", err)
	}
}
