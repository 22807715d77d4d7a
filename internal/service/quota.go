package service

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
)

// Quota is the guest metering gate. Admission is a pre-check: it never
// touches the durable counter, so an exhausted guest costs nothing and a
// failed summarization never burns a try. To keep concurrent requests
// from the same identifier from racing past the limit, admitted requests
// hold an in-process reservation until they either record usage or
// release. The reservation is taken under a per-identifier lock together
// with the durable read, and RecordUsage increments the durable counter
// before dropping the reservation, so the sum of committed count and
// reservations never undercounts admissions.
type Quota struct {
	store  model.GuestQuotaStore
	limit  int
	window time.Duration
	logger *logger.Logger

	mu       sync.Mutex
	locks    map[string]*identifierLock
	inflight map[string]int
}

type identifierLock struct {
	mu   sync.Mutex
	refs int
}

func NewQuota(store model.GuestQuotaStore, limit int, window time.Duration, logger *logger.Logger) *Quota {
	return &Quota{
		store:    store,
		limit:    limit,
		window:   window,
		logger:   logger,
		locks:    make(map[string]*identifierLock),
		inflight: make(map[string]int),
	}
}

// IdentifierFor derives the quota key from a network origin string. The
// derivation is deterministic: host without port, lowercased. The origin
// is the only signal, which makes the quota an abuse deterrent rather
// than a security boundary; a caller that changes origin gets a fresh
// window.
func (q *Quota) IdentifierFor(origin string) string {
	origin = strings.TrimSpace(origin)
	if host, _, err := net.SplitHostPort(origin); err == nil {
		origin = host
	}
	return strings.ToLower(origin)
}

// Status reads the current quota state for an identifier without taking
// a reservation. Passive expiry is applied and persisted by the store
// before the counter is trusted.
func (q *Quota) Status(ctx context.Context, identifier string) (model.GuestStatus, error) {
	quota, err := q.store.GetOrInit(ctx, identifier, q.window)
	if err != nil {
		return model.GuestStatus{}, fmt.Errorf("get guest quota: %w", err)
	}
	return q.statusFor(quota), nil
}

// CheckAndAdmit decides whether a guest request may proceed. When it
// admits, it reserves a slot that the caller must settle with either
// RecordUsage (action succeeded) or Release (action failed or skipped).
// The durable counter is not modified here.
func (q *Quota) CheckAndAdmit(ctx context.Context, identifier string) (model.GuestStatus, error) {
	lock := q.acquire(identifier)
	defer q.release(identifier, lock)

	quota, err := q.store.GetOrInit(ctx, identifier, q.window)
	if err != nil {
		// Fail closed: an unreachable store never admits.
		return model.GuestStatus{}, fmt.Errorf("get guest quota: %w", err)
	}

	status := q.statusFor(quota)

	q.mu.Lock()
	if quota.Count+q.inflight[identifier] >= q.limit {
		status.Admitted = false
	} else {
		q.inflight[identifier]++
	}
	q.mu.Unlock()

	return status, nil
}

// RecordUsage commits one use: the durable counter is incremented
// atomically, then the reservation taken by CheckAndAdmit is dropped.
// Call only after the metered action has succeeded.
func (q *Quota) RecordUsage(ctx context.Context, identifier string) error {
	lock := q.acquire(identifier)
	defer q.release(identifier, lock)

	_, err := q.store.Increment(ctx, identifier)

	// Drop the reservation only after the increment is durable, so a
	// concurrent admission check never sees both gone.
	q.dropReservation(identifier)

	if err != nil {
		return fmt.Errorf("increment guest quota: %w", err)
	}
	return nil
}

// ReleaseAdmission returns an admitted-but-unused slot, leaving the
// durable counter untouched. Called when the metered action fails.
func (q *Quota) ReleaseAdmission(identifier string) {
	q.dropReservation(identifier)
}

// Cleanup removes guest rows whose window elapsed before the cutoff.
func (q *Quota) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	n, err := q.store.DeleteExpired(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("cleanup guest quotas: %w", err)
	}
	return n, nil
}

// Limit returns the configured per-window limit.
func (q *Quota) Limit() int {
	return q.limit
}

func (q *Quota) statusFor(quota model.GuestQuota) model.GuestStatus {
	remaining := q.limit - quota.Count
	if remaining < 0 {
		remaining = 0
	}
	return model.GuestStatus{
		Admitted:  remaining > 0,
		Used:      quota.Count,
		Remaining: remaining,
		Limit:     q.limit,
		ResetAt:   quota.ResetAt,
	}
}

func (q *Quota) dropReservation(identifier string) {
	q.mu.Lock()
	if q.inflight[identifier] > 0 {
		q.inflight[identifier]--
		if q.inflight[identifier] == 0 {
			delete(q.inflight, identifier)
		}
	}
	q.mu.Unlock()
}

// acquire takes the per-identifier advisory lock. It serializes the
// read-and-reserve step with concurrent increments for one identifier
// while leaving other identifiers untouched. It is never held across
// the summarization call.
func (q *Quota) acquire(identifier string) *identifierLock {
	q.mu.Lock()
	lock, ok := q.locks[identifier]
	if !ok {
		lock = &identifierLock{}
		q.locks[identifier] = lock
	}
	lock.refs++
	q.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (q *Quota) release(identifier string, lock *identifierLock) {
	lock.mu.Unlock()

	q.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(q.locks, identifier)
	}
	q.mu.Unlock()
}
