package dao

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
)

// BidCommit 一次出价落地需要同步写入拍卖行的全部字段
// 这些字段与新的出价记录必须出现在同一个事务中, 读者要么全部可见要么全部不可见
type BidCommit struct {
	NewPrice    decimal.Decimal // 新的展示价
	NewLeaderId int64           // 新的领先出价人
	NewEndTime  int64           // 自动延时之后的结束时间 (未触发时保持原值)
	Terminal    bool            // 一口价: 同时落终态 (is_ended / winner_id)
}

// GetTopBid 查询当前领先的出价记录
// 排序规则: max_bid_amount 最大者优先, 相同上限按出价时间最早者优先
// 领先者永远从账本重新推导, 不信任 auction 行里缓存的 highest_bidder_id
// 没有任何出价时返回 (nil, nil)
func (d *Dao) GetTopBid(ctx context.Context, auctionId int64) (*auctionmodel.Bid, error) {
	var top auctionmodel.Bid
	// SQL 逻辑:
	// SELECT * FROM ob_bid WHERE auction_id = ?
	// ORDER BY max_bid_amount DESC, create_time ASC, id ASC LIMIT 1
	err := d.DB.WithContext(ctx).Table(auctionmodel.BidTableName()).
		Where("auction_id = ?", auctionId).
		Order("max_bid_amount desc, create_time asc, id asc").
		First(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed on get top bid")
	}

	return &top, nil
}

// GetAuctionBids 查询拍卖的全部出价记录, 最新在前
func (d *Dao) GetAuctionBids(ctx context.Context, auctionId int64) ([]auctionmodel.Bid, error) {
	var bids []auctionmodel.Bid
	// SQL 逻辑:
	// SELECT * FROM ob_bid WHERE auction_id = ?
	// ORDER BY create_time DESC, id DESC
	err := d.DB.WithContext(ctx).Table(auctionmodel.BidTableName()).
		Where("auction_id = ?", auctionId).
		Order("create_time desc, id desc").
		Find(&bids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed on get auction bids")
	}

	return bids, nil
}

// CommitBid 原子提交一次出价
// 处理逻辑 (单事务):
// 1. 带版本号条件更新拍卖行 (乐观锁 CAS):
//    current_price / highest_bidder_id / bid_count+1 / end_time / version+1
//    Terminal 时额外落 is_ended / winner_id
// 2. 版本号不匹配说明读取的快照已过期, 返回并发冲突, 由上层重跑整个读-算-写流程
// 3. 追加出价记录
// 任一步失败整个事务回滚, 不会留下部分写入
func (d *Dao) CommitBid(ctx context.Context, auction *auctionmodel.Auction, bid *auctionmodel.Bid, commit BidCommit) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"current_price":     commit.NewPrice,
			"highest_bidder_id": commit.NewLeaderId,
			"bid_count":         gorm.Expr("bid_count + 1"),
			"end_time":          commit.NewEndTime,
			"version":           gorm.Expr("version + 1"),
		}
		if commit.Terminal {
			updates["is_ended"] = true
			updates["winner_id"] = commit.NewLeaderId
		}

		// 1. CAS 更新拍卖行
		res := tx.Table(auctionmodel.AuctionTableName()).
			Where("id = ? and version = ?", auction.Id, auction.Version).
			Updates(updates)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed on update auction state")
		}
		// 2. 版本冲突
		if res.RowsAffected == 0 {
			return errors.Wrap(errcode.ErrConcurrencyConflict, "auction version changed")
		}

		// 3. 追加账本记录
		if err := tx.Table(auctionmodel.BidTableName()).Create(bid).Error; err != nil {
			return errors.Wrap(err, "failed on append bid record")
		}

		return nil
	})
}
