package lockx

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	l := NewKeyLock()

	var (
		wg      sync.WaitGroup
		counter int
	)
	// 同一 key 上并发自增, 有锁保护则结果精确
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock(1)
			counter++
			l.Unlock(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	// 引用计数归零后锁表应被清空
	assert.Empty(t, l.locks)
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewKeyLock()

	l.Lock(1)
	defer l.Unlock(1)

	// key 2 不受 key 1 持有影响
	done := make(chan struct{})
	go func() {
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key should not block")
	}
}

func TestKeyLock_LockTimeout(t *testing.T) {
	l := NewKeyLock()

	// 持锁期间限时抢锁超时失败
	l.Lock(1)
	assert.False(t, l.LockTimeout(1, 20*time.Millisecond))
	l.Unlock(1)
	// 超时放弃的等待者引用已回收, 锁表为空
	assert.Empty(t, l.locks)

	// 无人持锁时限时抢锁立即成功
	assert.True(t, l.LockTimeout(1, 20*time.Millisecond))
	l.Unlock(1)
	assert.Empty(t, l.locks)
}

func TestKeyLock_UnlockWithoutLockPanics(t *testing.T) {
	l := NewKeyLock()

	assert.Panics(t, func() {
		l.Unlock(1)
	})
}
