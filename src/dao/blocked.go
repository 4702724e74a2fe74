package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m0nters/BidStorm-Backend-sub000/src/common/utils"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
)

// IsBidderBlocked 查询出价人是否在该拍卖的黑名单中
func (d *Dao) IsBidderBlocked(ctx context.Context, auctionId, bidderId int64) (bool, error) {
	var count int64
	// SQL 逻辑:
	// SELECT COUNT(*) FROM ob_blocked_bidder WHERE auction_id = ? AND bidder_id = ?
	err := d.DB.WithContext(ctx).Table(auctionmodel.BlockedBidderTableName()).
		Where("auction_id = ? and bidder_id = ?", auctionId, bidderId).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed on check blocked bidder")
	}

	return count > 0, nil
}

// RejectResult 拒绝出价人之后重算出的拍卖状态
type RejectResult struct {
	Removed     int64           // 被删除的出价记录数
	NewLeaderId int64           // 重算后的领先者 (0 表示无人领先)
	NewPrice    decimal.Decimal // 重算后的展示价
}

// RejectBidder 卖家拒绝出价人 (原子操作)
// 处理逻辑 (单事务):
// 1. 删除目标出价人在该拍卖下的全部出价记录
// 2. 幂等插入黑名单 (INSERT IGNORE), 重复拒绝同一出价人不报错
// 3. 在剩余记录中重算领先者: max_bid_amount 最大者, 相同上限取出价最早者
//    展示价取领先者的上限; 无剩余记录时回落到起拍价
// 4. CAS 更新拍卖行 (这是唯一允许 current_price 下降的操作)
func (d *Dao) RejectBidder(ctx context.Context, auction *auctionmodel.Auction, targetBidderId int64) (*RejectResult, error) {
	result := &RejectResult{}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 批量删除目标出价人的账本记录
		del := tx.Table(auctionmodel.BidTableName()).
			Where("auction_id = ? and bidder_id = ?", auction.Id, targetBidderId).
			Delete(&auctionmodel.Bid{})
		if del.Error != nil {
			return errors.Wrap(del.Error, "failed on delete bidder records")
		}
		result.Removed = del.RowsAffected

		// 2. 幂等写入黑名单
		blocked := auctionmodel.BlockedBidder{
			AuctionId:  auction.Id,
			BidderId:   targetBidderId,
			CreateTime: time.Now().Unix(),
		}
		if err := tx.Table(auctionmodel.BlockedBidderTableName()).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&blocked).Error; err != nil {
			return errors.Wrap(err, "failed on insert blocked bidder")
		}

		// 3. 从剩余记录重算领先者与展示价
		result.NewLeaderId = 0
		result.NewPrice = auction.StartingPrice

		var top auctionmodel.Bid
		err := tx.Table(auctionmodel.BidTableName()).
			Where("auction_id = ?", auction.Id).
			Order("max_bid_amount desc, create_time asc, id asc").
			First(&top).Error
		if err == nil {
			result.NewLeaderId = top.BidderId
			result.NewPrice = top.MaxBidAmount
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed on recompute auction leader")
		}

		// 4. CAS 更新拍卖行
		res := tx.Table(auctionmodel.AuctionTableName()).
			Where("id = ? and version = ?", auction.Id, auction.Version).
			Updates(map[string]interface{}{
				"current_price":     result.NewPrice,
				"highest_bidder_id": result.NewLeaderId,
				"bid_count":         utils.Max(0, auction.BidCount-result.Removed),
				"version":           gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed on update auction state")
		}
		if res.RowsAffected == 0 {
			return errors.Wrap(errcode.ErrConcurrencyConflict, "auction version changed")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
