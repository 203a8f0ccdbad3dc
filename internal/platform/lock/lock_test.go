package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/SscSPs/agency_ledger/internal/platform/lock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, l lock.Locker) {
	t.Helper()
	ctx := context.Background()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rel, err := l.Obtain(ctx, lock.TransactionKey("T1"))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			assert.NoError(t, rel.Release(ctx))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside, "only one holder at a time")
}

func TestLocalLocker_Exclusive(t *testing.T) {
	exercise(t, lock.NewLocalLocker())
}

func TestLocalLocker_HonoursContext(t *testing.T) {
	l := lock.NewLocalLocker()
	held, err := l.Obtain(context.Background(), "k")
	require.NoError(t, err)
	defer held.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Obtain(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := l.Obtain(context.Background(), "other")
	require.NoError(t, err, "keys are independent")
	require.NoError(t, other.Release(context.Background()))
}

func TestRedisLocker_Exclusive(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	exercise(t, lock.NewRedisLocker(rdb, 2*time.Second))
}

func TestRedisLocker_NotObtainedIsConflict(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	l := lock.NewRedisLocker(rdb, 100*time.Millisecond)
	held, err := l.Obtain(ctx, "busy")
	require.NoError(t, err)
	defer held.Release(ctx)

	_, err = lock.NewRedisLocker(rdb, 100*time.Millisecond).Obtain(ctx, "busy")
	assert.ErrorIs(t, err, lock.ErrNotObtained)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRedisLocker_ReleaseAfterTTLReportsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	l := lock.NewRedisLocker(rdb, 100*time.Millisecond)
	held, err := l.Obtain(ctx, lock.TransactionKey("T2"))
	require.NoError(t, err)

	mr.FastForward(time.Second)
	assert.ErrorIs(t, held.Release(ctx), lock.ErrLockExpired)

	again, err := l.Obtain(ctx, lock.TransactionKey("T2"))
	require.NoError(t, err)
	assert.NoError(t, again.Release(ctx), "release within the TTL succeeds")
}
