package xkv

import (
	"strconv"

	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store 键值存储 (Redis)
// 在 go-zero kv.Store 基础上补充少量类型化的便捷方法
type Store struct {
	kv.Store
}

// NewStore 创建 KV 存储实例
func NewStore(c kv.KvConf) *Store {
	return &Store{
		Store: kv.NewStore(c),
	}
}

// GetInt 读取整型值
// key 不存在时返回 0, 不视为错误
func (s *Store) GetInt(key string) (int64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// SetInt 写入整型值
func (s *Store) SetInt(key string, value int64) error {
	return s.Set(key, strconv.FormatInt(value, 10))
}
