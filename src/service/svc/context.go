package svc

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/m0nters/BidStorm-Backend-sub000/src/config"
	"github.com/m0nters/BidStorm-Backend-sub000/src/dao"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/lockx"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/xkv"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
	// AuctionLock 以拍卖 ID 为粒度的进程内互斥锁
	// 同一拍卖上的出价/一口价/拒绝操作在此串行, 不同拍卖互不影响
	AuctionLock *lockx.KeyLock
}

// NewServiceContext 初始化服务上下文
// 该函数负责初始化后端服务所需的所有基础设施组件
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	// 1. 初始化日志系统 (Zap Logger)
	_, err := xzap.SetUp(c.Log)
	if err != nil {
		return nil, err
	}

	// 2. 构造 Redis 配置
	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}

	// 3. 初始化 Redis 客户端 (xkv Store)
	store := xkv.NewStore(kvConf)

	// 4. 初始化数据库连接 (GORM)
	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}

	// 5. 初始化数据访问层 (DAO)
	dao := dao.New(context.Background(), db, store)

	// 6. 组装 ServerCtx 对象
	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(dao),
	)
	serverCtx.C = c

	return serverCtx, nil
}
