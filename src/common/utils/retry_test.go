package utils

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry("test op", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry("test op", 3, time.Millisecond, func() error {
		calls++
		return errTransient
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	// 包装后仍能取回原始错误
	assert.Equal(t, errTransient, errors.Cause(err))
	assert.Contains(t, err.Error(), "test op: retry times over")
}

func TestRetry_NoSleepAfterFinalAttempt(t *testing.T) {
	start := time.Now()
	err := Retry("test op", 1, time.Hour, func() error {
		return errTransient
	})

	assert.Error(t, err)
	// 最后一次失败后立即返回, 不再白等一个间隔
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryIf_StopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := RetryIf("test op", 5, time.Millisecond,
		func(e error) bool { return errors.Cause(e) == errTransient },
		func() error {
			calls++
			if calls == 1 {
				return errTransient
			}
			return permanent
		})

	// 不可重试的错误原样返回, 不再包装
	assert.Equal(t, permanent, err)
	assert.Equal(t, 2, calls)
}

func TestMax(t *testing.T) {
	assert.Equal(t, int64(3), Max(1, 3))
	assert.Equal(t, int64(3), Max(3, 1))
	assert.Equal(t, int64(0), Max(0, -5))
}
