package dao

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
)

const (
	// CacheAuctionDetailPrefix 拍卖详情缓存 key 前缀
	CacheAuctionDetailPrefix = "cache:bs:auction:detail:%d"
	// CacheAuctionDetailPeriod 拍卖详情缓存有效期 (秒)
	CacheAuctionDetailPeriod = 30
)

// GetAuctionCacheKey 生成拍卖详情缓存 key
func GetAuctionCacheKey(auctionId int64) string {
	return fmt.Sprintf(CacheAuctionDetailPrefix, auctionId)
}

// GetAuctionById 查询单个拍卖
// 每次出价/拒绝的读-算-写流程都从这里重新读取最新快照, 不复用旧状态
func (d *Dao) GetAuctionById(ctx context.Context, auctionId int64) (*auctionmodel.Auction, error) {
	var auction auctionmodel.Auction
	// SQL 逻辑:
	// SELECT * FROM ob_auction WHERE id = ? LIMIT 1
	err := d.DB.WithContext(ctx).Table(auctionmodel.AuctionTableName()).
		Where("id = ?", auctionId).
		First(&auction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(errcode.ErrNotFound, "auction not found")
		}
		return nil, errors.Wrap(err, "failed on get auction info")
	}

	return &auction, nil
}

// GetAuctionDetailCache 读取拍卖详情缓存 (JSON 串)
// 缓存未命中返回空串
func (d *Dao) GetAuctionDetailCache(auctionId int64) (string, error) {
	raw, err := d.KvStore.Get(GetAuctionCacheKey(auctionId))
	if err != nil {
		return "", errors.Wrap(err, "failed on get auction detail cache")
	}
	return raw, nil
}

// SetAuctionDetailCache 写入拍卖详情缓存
func (d *Dao) SetAuctionDetailCache(auctionId int64, raw string) error {
	if err := d.KvStore.Setex(GetAuctionCacheKey(auctionId), raw, CacheAuctionDetailPeriod); err != nil {
		return errors.Wrap(err, "failed on set auction detail cache")
	}
	return nil
}

// DelAuctionDetailCache 删除拍卖详情缓存
// 每次成功的状态变更 (出价 / 一口价 / 拒绝) 之后调用, 防止读到过期价格
func (d *Dao) DelAuctionDetailCache(auctionId int64) error {
	if _, err := d.KvStore.Del(GetAuctionCacheKey(auctionId)); err != nil {
		return errors.Wrap(err, "failed on del auction detail cache")
	}
	return nil
}
