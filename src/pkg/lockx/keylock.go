package lockx

import (
	"sync"
	"time"
)

// KeyLock 按 key 串行化的互斥锁集合
// 用途: 以拍卖 ID 为 key, 让同一拍卖上的读-算-写临界区在单进程内严格串行,
// 不同 key 之间互不阻塞。锁对象按需创建, 引用计数归零后立即回收,
// 避免锁表随 key 数量无限增长
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*keyEntry
}

// keyEntry 用容量为 1 的 channel 充当信号量, 以支持带超时的抢锁
type keyEntry struct {
	ch  chan struct{}
	ref int // 持有或等待该 key 的调用方数量
}

// NewKeyLock 创建 KeyLock 实例
func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: make(map[int64]*keyEntry),
	}
}

// acquireEntry 取出 (或创建) key 对应的信号量并登记一个引用
func (l *KeyLock) acquireEntry(key int64) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.ref++
	return entry
}

// releaseEntry 注销一个引用, 归零时回收锁表项
func (l *KeyLock) releaseEntry(key int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		panic("lockx: release of unknown key")
	}
	entry.ref--
	if entry.ref == 0 {
		delete(l.locks, key)
	}
}

// Lock 锁定指定 key, 阻塞直到获得锁
func (l *KeyLock) Lock(key int64) {
	entry := l.acquireEntry(key)
	entry.ch <- struct{}{}
}

// LockTimeout 在限定时间内尝试锁定指定 key
// 获得锁返回 true; 超时返回 false, 此时等待登记已回收, 调用方不得再 Unlock。
// 持锁方卡死 (例如提交事务挂起) 时, 后续调用方在此有界退出而不是无限排队
func (l *KeyLock) LockTimeout(key int64, timeout time.Duration) bool {
	entry := l.acquireEntry(key)

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case entry.ch <- struct{}{}:
		return true
	case <-t.C:
		l.releaseEntry(key)
		return false
	}
}

// Unlock 释放指定 key 的锁
// 未 Lock 先 Unlock 属于调用方错误, 直接 panic
func (l *KeyLock) Unlock(key int64) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		l.mu.Unlock()
		panic("lockx: unlock of unlocked key")
	}
	entry.ref--
	if entry.ref == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	<-entry.ch
}
