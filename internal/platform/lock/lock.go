// Package lock serializes writers per key, in-process or across instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when a lock could not be acquired within its retry budget.
var ErrNotObtained = fmt.Errorf("%w: resource is being modified, retry later", apperrors.ErrConflict)

// ErrLockExpired is returned by Release when the lock TTL elapsed before the
// holder finished, so another writer may have run concurrently.
var ErrLockExpired = errors.New("lock expired before release")

// Releaser releases a held lock.
type Releaser interface {
	Release(ctx context.Context) error
}

// Locker hands out exclusive locks by key.
type Locker interface {
	Obtain(ctx context.Context, key string) (Releaser, error)
}

// TransactionKey is the lock key guarding one ledger transaction.
func TransactionKey(transactionID string) string {
	return "ledger:txn:" + transactionID
}

// AccountKey is the lock key guarding balance checks on one account.
func AccountKey(accountID string) string {
	return "ledger:account:" + accountID
}

// LocalLocker is a keyed mutex for a single process. Waiting honours ctx.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*localEntry
}

type localEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker creates an empty LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*localEntry)}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string) (Releaser, error) {
	l.mu.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return &localLock{owner: l, key: key, entry: e}, nil
	case <-ctx.Done():
		l.drop(key, e)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) drop(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}

type localLock struct {
	owner *LocalLocker
	key   string
	entry *localEntry
	once  sync.Once
}

func (k *localLock) Release(context.Context) error {
	k.once.Do(func() {
		<-k.entry.sem
		k.owner.drop(k.key, k.entry)
	})
	return nil
}

// RedisLocker obtains locks through bsm/redislock so that several API
// instances sharing one database never interleave writes to a transaction.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	opts   *redislock.Options
}

// NewRedisLocker builds a RedisLocker on an existing go-redis client.
// Acquisition retries with linear backoff for roughly the lock TTL.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	backoff := 50 * time.Millisecond
	retries := int(ttl / backoff)
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		opts: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoff), retries),
		},
	}
}

func (r *RedisLocker) Obtain(ctx context.Context, key string) (Releaser, error) {
	l, err := r.client.Obtain(ctx, key, r.ttl, r.opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return redisLock{l}, nil
}

type redisLock struct {
	l *redislock.Lock
}

// Release reports ErrLockExpired when the TTL ran out while the lock was held.
func (k redisLock) Release(ctx context.Context) error {
	err := k.l.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return fmt.Errorf("%w: %s", ErrLockExpired, k.l.Key())
	}
	return err
}
