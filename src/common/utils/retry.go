package utils

import (
	"time"

	"github.com/pkg/errors"
)

// Retry 通用重试函数
// @param name: 操作名称(用于错误提示)
// @param attempts: 最大尝试次数
// @param sleep: 每次重试间隔时间
// @param fn: 需要执行的函数,返回 error 表示失败需要重试
// @return error: 所有尝试都失败时返回最后一次的错误
func Retry(name string, attempts int, sleep time.Duration, fn func() error) error {
	return RetryIf(name, attempts, sleep, func(error) bool { return true }, fn)
}

// RetryIf 带条件的重试函数
// 仅当 retryable 判定该错误可重试时才继续下一次尝试,
// 不可重试的错误 (如业务校验失败) 立即原样返回
func RetryIf(name string, attempts int, sleep time.Duration, retryable func(error) bool, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		// 可重试错误, 等待指定时间后继续下一次尝试; 最后一次失败不再等待
		if i < attempts-1 {
			time.Sleep(sleep)
		}
	}
	return errors.Wrapf(lastErr, "%s: retry times over", name)
}
