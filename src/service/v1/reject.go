package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/m0nters/BidStorm-Backend-sub000/src/common/utils"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/mq"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
)

// RejectBidder 卖家拒绝出价人
// 原子效果: 删除目标的全部出价记录, 幂等写入黑名单,
// 从剩余记录重算领先者与展示价 (无剩余时回落到起拍价)。
// 这是唯一允许 current_price 下降的操作; 被拒绝的出价人之后的出价一律被拒
func RejectBidder(ctx context.Context, svcCtx *svc.ServerCtx, auctionId, sellerId, targetBidderId int64) error {
	if !svcCtx.AuctionLock.LockTimeout(auctionId, lockWaitTimeout(svcCtx)) {
		return errors.Wrap(errcode.ErrConcurrencyConflict, "auction lock wait timed out")
	}
	defer svcCtx.AuctionLock.Unlock(auctionId)

	return utils.RetryIf("reject bidder", commitRetryTimes(svcCtx), commitRetrySleep, isConflict, func() error {
		// 1. 加载最新快照
		auction, err := svcCtx.Dao.GetAuctionById(ctx, auctionId)
		if err != nil {
			return err
		}

		// 2. 只有卖家本人可以拒绝出价人
		if sellerId != auction.SellerId {
			return errors.WithStack(errcode.ErrNotAuctionSeller)
		}

		// 3. 目标出价人必须存在
		target, err := svcCtx.Dao.GetUserById(ctx, targetBidderId)
		if err != nil {
			return err
		}

		// 4. 原子执行 删除 + 拉黑 + 重算 + CAS 更新
		result, err := svcCtx.Dao.RejectBidder(ctx, auction, target.Id)
		if err != nil {
			return err
		}

		xzap.WithContext(ctx).Info("bidder rejected",
			zap.Int64("auction_id", auction.Id),
			zap.Int64("target_bidder_id", target.Id),
			zap.Int64("removed", result.Removed),
			zap.Int64("new_leader_id", result.NewLeaderId),
			zap.String("reset_price", result.NewPrice.String()))

		// 5. 提交后的旁路工作
		afterCommit(svcCtx, auction.Id, &mq.NotifyEvent{
			Type:      mq.EventBidRejected,
			AuctionId: auction.Id,
			BidderId:  target.Id,
			Price:     result.NewPrice,
			LeaderId:  result.NewLeaderId,
			EventTime: time.Now().Unix(),
		})

		return nil
	})
}
