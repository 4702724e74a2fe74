package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/m0nters/BidStorm-Backend-sub000/src/common/utils"
	"github.com/m0nters/BidStorm-Backend-sub000/src/dao"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/mq"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
	types "github.com/m0nters/BidStorm-Backend-sub000/src/types/v1"
)

// commitRetrySleep 乐观锁冲突后的重试间隔
const commitRetrySleep = 50 * time.Millisecond

// defaultCommitRetryTimes 未配置时的默认整体重试次数
const defaultCommitRetryTimes = 3

// defaultLockWaitTimeout 未配置时抢占拍卖锁的最长等待
const defaultLockWaitTimeout = 3 * time.Second

// PlaceBid 处理一次代理出价
// 并发模型: 先按拍卖 ID 获取进程内互斥锁, 使同一拍卖上的读-算-写严格串行;
// 提交时再做版本号 CAS 校验, 多实例部署下退化为整体重试而不是丢失更新。
// 抢锁等待有界: 持锁方卡死时后续请求按并发冲突快速失败, 不无限排队。
// 冲突重试重跑的是完整的 加载→校验→计算→提交 流程, 不是只重放写入
func PlaceBid(ctx context.Context, svcCtx *svc.ServerCtx, auctionId, bidderId int64, maxBid decimal.Decimal) (*types.BidResult, error) {
	if !svcCtx.AuctionLock.LockTimeout(auctionId, lockWaitTimeout(svcCtx)) {
		return nil, errors.Wrap(errcode.ErrConcurrencyConflict, "auction lock wait timed out")
	}
	defer svcCtx.AuctionLock.Unlock(auctionId)

	var result *types.BidResult
	err := utils.RetryIf("place bid", commitRetryTimes(svcCtx), commitRetrySleep, isConflict, func() error {
		var err error
		result, err = placeBidOnce(ctx, svcCtx, auctionId, bidderId, maxBid)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// placeBidOnce 执行一轮完整的出价流程
// 1. 读取最新的拍卖快照 / 出价人信息 / 黑名单状态
// 2. 一口价路由: 上限不低于一口价时走一口价快速通道
// 3. 资格校验 → 最小加价校验 → 代理出价计算 → 自动延时计算
// 4. 单事务原子提交 (账本追加 + 拍卖行 CAS 更新)
func placeBidOnce(ctx context.Context, svcCtx *svc.ServerCtx, auctionId, bidderId int64, maxBid decimal.Decimal) (*types.BidResult, error) {
	// 1. 加载提交时刻的最新状态
	auction, err := svcCtx.Dao.GetAuctionById(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	bidder, err := svcCtx.Dao.GetUserById(ctx, bidderId)
	if err != nil {
		return nil, err
	}
	blocked, err := svcCtx.Dao.IsBidderBlocked(ctx, auctionId, bidderId)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()

	// 2. 通道决策: 出价上限达到一口价时直接按一口价成交
	buyNow, routeErr := routeBid(auction, maxBid)
	if buyNow {
		return buyNowCommit(ctx, svcCtx, auction, bidder.Id, blocked, now)
	}

	// 3. 普通出价资格校验 (含评价资格)
	if err := checkBidEligibility(auction, bidder, blocked, now); err != nil {
		return nil, err
	}

	// 最小加价不满足 (资格类错误优先于金额错误)
	if routeErr != nil {
		return nil, routeErr
	}

	// 4. 从账本重算现任领先者 (不信任拍卖行里缓存的 highest_bidder_id)
	top, err := svcCtx.Dao.GetTopBid(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	var (
		hasLeader bool
		leaderId  int64
		leaderMax decimal.Decimal
	)
	if top != nil {
		hasLeader = true
		leaderId = top.BidderId
		leaderMax = top.MaxBidAmount
	}

	// 5. 代理出价 + 自动延时计算 (纯函数)
	proxy := computeProxyBid(auction.CurrentPrice, auction.PriceStep, leaderId, leaderMax, hasLeader, bidder.Id, maxBid)
	newEndTime := computeAutoExtend(auction.AutoExtend, auction.EndTime, now,
		svcCtx.C.Bid.AutoExtendTriggerMinutes, svcCtx.C.Bid.AutoExtendByMinutes)

	// 6. 原子提交
	bid := &auctionmodel.Bid{
		BidId:        uuid.NewString(),
		AuctionId:    auction.Id,
		BidderId:     bidder.Id,
		BidAmount:    proxy.NewPrice,
		MaxBidAmount: maxBid,
		CreateTime:   now,
	}
	err = svcCtx.Dao.CommitBid(ctx, auction, bid, dao.BidCommit{
		NewPrice:    proxy.NewPrice,
		NewLeaderId: proxy.NewLeaderId,
		NewEndTime:  newEndTime,
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("bid accepted",
		zap.Int64("auction_id", auction.Id),
		zap.Int64("bidder_id", bidder.Id),
		zap.String("new_price", proxy.NewPrice.String()),
		zap.Int64("leader_id", proxy.NewLeaderId))

	// 7. 提交后的旁路工作: 缓存失效 + 通知入队 (失败不影响出价结果)
	afterCommit(svcCtx, auction.Id, &mq.NotifyEvent{
		Type:      mq.EventBidAccepted,
		AuctionId: auction.Id,
		BidId:     bid.BidId,
		BidderId:  bidder.Id,
		Price:     proxy.NewPrice,
		LeaderId:  proxy.NewLeaderId,
		EndTime:   newEndTime,
		EventTime: now,
	})

	return &types.BidResult{
		BidId:       bid.BidId,
		ResultPrice: proxy.NewPrice,
		IsLeader:    proxy.NewLeaderId == bidder.Id,
	}, nil
}

// BuyNow 处理显式的一口价请求
func BuyNow(ctx context.Context, svcCtx *svc.ServerCtx, auctionId, bidderId int64) (*types.BidResult, error) {
	if !svcCtx.AuctionLock.LockTimeout(auctionId, lockWaitTimeout(svcCtx)) {
		return nil, errors.Wrap(errcode.ErrConcurrencyConflict, "auction lock wait timed out")
	}
	defer svcCtx.AuctionLock.Unlock(auctionId)

	var result *types.BidResult
	err := utils.RetryIf("buy now", commitRetryTimes(svcCtx), commitRetrySleep, isConflict, func() error {
		auction, err := svcCtx.Dao.GetAuctionById(ctx, auctionId)
		if err != nil {
			return err
		}
		bidder, err := svcCtx.Dao.GetUserById(ctx, bidderId)
		if err != nil {
			return err
		}
		blocked, err := svcCtx.Dao.IsBidderBlocked(ctx, auctionId, bidderId)
		if err != nil {
			return err
		}

		result, err = buyNowCommit(ctx, svcCtx, auction, bidder.Id, blocked, time.Now().Unix())
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// buyNowCommit 一口价快速通道
// 前置条件: 拍卖配置了一口价; 未结束; 非卖家本人; 不在黑名单
// 评价资格在该通道不做校验 (与普通出价路径的差异沿用既有业务行为)
// 原子效果: 追加一条终态账本记录 (bid_amount = max_bid_amount = 一口价),
// 展示价抬到一口价, 出价人同时成为领先者与赢家, 拍卖立即终结
func buyNowCommit(ctx context.Context, svcCtx *svc.ServerCtx, auction *auctionmodel.Auction, bidderId int64, blocked bool, now int64) (*types.BidResult, error) {
	if !auction.HasBuyNowPrice() {
		return nil, errors.Wrap(errcode.ErrInvalidBidAmount, "auction has no buy-now price")
	}
	if err := checkBuyNowEligibility(auction, bidderId, blocked, now); err != nil {
		return nil, err
	}

	price := auction.BuyNowPrice.Decimal
	bid := &auctionmodel.Bid{
		BidId:        uuid.NewString(),
		AuctionId:    auction.Id,
		BidderId:     bidderId,
		BidAmount:    price,
		MaxBidAmount: price,
		CreateTime:   now,
	}

	// 一口价不触发自动延时, 结束时间保持原值, 终态由 is_ended 承载
	err := svcCtx.Dao.CommitBid(ctx, auction, bid, dao.BidCommit{
		NewPrice:    price,
		NewLeaderId: bidderId,
		NewEndTime:  auction.EndTime,
		Terminal:    true,
	})
	if err != nil {
		return nil, err
	}

	xzap.WithContext(ctx).Info("auction bought now",
		zap.Int64("auction_id", auction.Id),
		zap.Int64("winner_id", bidderId),
		zap.String("price", price.String()))

	afterCommit(svcCtx, auction.Id, &mq.NotifyEvent{
		Type:      mq.EventBoughtNow,
		AuctionId: auction.Id,
		BidId:     bid.BidId,
		BidderId:  bidderId,
		Price:     price,
		LeaderId:  bidderId,
		EventTime: now,
	})

	return &types.BidResult{
		BidId:       bid.BidId,
		ResultPrice: price,
		IsLeader:    true,
	}, nil
}

// afterCommit 提交成功后的旁路处理
// 1. 删除拍卖详情缓存, 避免读到过期价格
// 2. 异步推送通知事件, 失败只记录日志, 绝不让已提交的出价"失败"
func afterCommit(svcCtx *svc.ServerCtx, auctionId int64, event *mq.NotifyEvent) {
	if err := svcCtx.Dao.DelAuctionDetailCache(auctionId); err != nil {
		xzap.WithContext(context.Background()).Warn("failed on invalidate auction cache",
			zap.Int64("auction_id", auctionId), zap.Error(err))
	}

	threading.GoSafe(func() {
		if err := mq.PushNotifyEvent(svcCtx.KvStore, svcCtx.C.ProjectCfg.Name, event); err != nil {
			xzap.WithContext(context.Background()).Error("failed on push notify event",
				zap.Int64("auction_id", auctionId),
				zap.String("event_type", event.Type),
				zap.Error(err))
		}
	})
}

// commitRetryTimes 读取配置的整体重试次数
func commitRetryTimes(svcCtx *svc.ServerCtx) int {
	if svcCtx.C != nil && svcCtx.C.Bid.CommitRetryTimes > 0 {
		return svcCtx.C.Bid.CommitRetryTimes
	}
	return defaultCommitRetryTimes
}

// lockWaitTimeout 读取配置的抢锁等待上限
func lockWaitTimeout(svcCtx *svc.ServerCtx) time.Duration {
	if svcCtx.C != nil && svcCtx.C.Bid.LockWaitMs > 0 {
		return time.Duration(svcCtx.C.Bid.LockWaitMs) * time.Millisecond
	}
	return defaultLockWaitTimeout
}

// isConflict 判断是否为可重试的并发冲突
func isConflict(err error) bool {
	return errcode.IsErrCode(err, errcode.ErrConcurrencyConflict)
}
