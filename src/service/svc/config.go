package svc

import (
	"gorm.io/gorm"

	"github.com/m0nters/BidStorm-Backend-sub000/src/dao"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/lockx"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/xkv"
)

// CtxConfig 服务上下文配置构建器
// 用于使用 Option 模式构建 ServerCtx
type CtxConfig struct {
	db      *gorm.DB
	dao     *dao.Dao
	KvStore *xkv.Store
}

type CtxOption func(conf *CtxConfig)

// NewServerCtx 创建新的服务上下文
// 使用 Option 模式初始化 DB, KVStore, Dao 等组件
func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:          c.db,
		KvStore:     c.KvStore,
		Dao:         c.dao,
		AuctionLock: lockx.NewKeyLock(),
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}
