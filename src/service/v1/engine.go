package service

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/stores/gdb/auctionmodel"
)

// 本文件是代理出价引擎的纯计算部分: 资格校验 / 代理出价 / 自动延时 / 领先者重算
// 所有函数无副作用, 只依赖入参, 由协调方保证入参是提交时刻的最新快照

// checkBuyNowEligibility 一口价资格校验 (按顺序快速失败)
// 1. 拍卖未结束 (手动标志 OR 已过结束时间)
// 2. 非卖家本人
// 3. 不在该拍卖黑名单中
// 注意: 一口价路径不校验评价资格, 与普通出价路径不同 (沿用既有业务行为)
func checkBuyNowEligibility(auction *auctionmodel.Auction, bidderId int64, blocked bool, now int64) error {
	if auction.Ended(now) {
		return errors.WithStack(errcode.ErrAuctionEnded)
	}
	if bidderId == auction.SellerId {
		return errors.WithStack(errcode.ErrSelfBid)
	}
	if blocked {
		return errors.WithStack(errcode.ErrBidderBlocked)
	}
	return nil
}

// checkBidEligibility 普通出价资格校验
// 在一口价三项检查之上追加评价资格:
// 好评率达到门槛, 或者 (无任何评价 且 该拍卖允许无评价出价人)
// 无评价和差评返回不同的错误码, 便于前端给出不同提示
func checkBidEligibility(auction *auctionmodel.Auction, bidder *auctionmodel.User, blocked bool, now int64) error {
	if err := checkBuyNowEligibility(auction, bidder.Id, blocked, now); err != nil {
		return err
	}

	if bidder.RatingTotal == 0 {
		if auction.AllowUnratedBidders {
			return nil
		}
		return errors.WithStack(errcode.ErrUnratedBidder)
	}
	if bidder.RatingPercentage() < auctionmodel.RatingEligibleThreshold {
		return errors.WithStack(errcode.ErrLowRating)
	}
	return nil
}

// routeBid 出价通道决策 (纯函数)
// 上限达到一口价 → 走一口价快速通道 (buyNow = true)
// 否则必须满足最小加价: 上限 >= 当前价 + 步长, 不满足时返回无效金额错误。
// 返回的 err 由协调方在资格校验之后才生效, 保证结束/资格类错误优先于金额错误
func routeBid(auction *auctionmodel.Auction, maxBid decimal.Decimal) (bool, error) {
	if auction.HasBuyNowPrice() && maxBid.GreaterThanOrEqual(auction.BuyNowPrice.Decimal) {
		return true, nil
	}
	if maxBid.LessThan(auction.CurrentPrice.Add(auction.PriceStep)) {
		return false, errors.Wrap(errcode.ErrInvalidBidAmount, "below minimum increment")
	}
	return false, nil
}

// proxyBidResult 代理出价的计算结果
type proxyBidResult struct {
	NewPrice    decimal.Decimal // 落地后的展示价
	NewLeaderId int64           // 落地后的领先者
}

// computeProxyBid 代理出价核心算法 (纯函数)
// 入参: 当前展示价 / 步长 / 现任领先者及其私密上限 / 新出价人及其上限
// 规则:
//   - 无领先者: 首次出价以当前展示价(即起拍价)落地, 新出价人直接领先
//   - 新上限 <= 现任上限 C:
//     高于当前展示价 → 价格抬到新上限, 领先者不变 (代理为现任自动跟价)
//     否则 → 价格与领先者都不变 (影子出价, 记录仍会落账本)
//   - 新上限 > C: 价格为 C+步长, 新出价人取代领先
// 最小加价校验 (新上限 >= 当前价+步长) 由协调方在调用前完成
func computeProxyBid(currentPrice, priceStep decimal.Decimal, leaderId int64, leaderMax decimal.Decimal, hasLeader bool, bidderId int64, maxBid decimal.Decimal) proxyBidResult {
	// 无领先者: 首次出价
	if !hasLeader {
		return proxyBidResult{
			NewPrice:    currentPrice,
			NewLeaderId: bidderId,
		}
	}

	// 新上限打不过现任上限
	if maxBid.LessThanOrEqual(leaderMax) {
		if maxBid.GreaterThan(currentPrice) {
			// 代理机制替现任把价格顶到新出价人的上限
			return proxyBidResult{
				NewPrice:    maxBid,
				NewLeaderId: leaderId,
			}
		}
		// 影子出价: 价格与领先者均不变
		return proxyBidResult{
			NewPrice:    currentPrice,
			NewLeaderId: leaderId,
		}
	}

	// 新上限超过现任上限: 现任出局, 价格为现任上限 + 一个步长
	return proxyBidResult{
		NewPrice:    leaderMax.Add(priceStep),
		NewLeaderId: bidderId,
	}
}

// computeAutoExtend 自动延时策略 (纯函数)
// 规则: 开启自动延时 且 结束时间距 now 不足 triggerMinutes 分钟时,
// 结束时间向后推 extendMinutes 分钟; 否则保持不变
// 连续的晚到出价可以反复触发, 没有累计上限
func computeAutoExtend(autoExtend bool, endTime, now, triggerMinutes, extendMinutes int64) int64 {
	if !autoExtend {
		return endTime
	}
	if endTime < now+triggerMinutes*60 {
		return endTime + extendMinutes*60
	}
	return endTime
}

// pickLeader 从账本记录中重算当前领先记录
// 规则与 computeProxyBid / 拒绝重算完全一致:
// max_bid_amount 最大者优先, 相同上限按出价时间最早者优先, 再按 id 最小者
// 返回领先记录的指针, 无记录时返回 nil
func pickLeader(bids []auctionmodel.Bid) *auctionmodel.Bid {
	var top *auctionmodel.Bid
	for i := range bids {
		b := &bids[i]
		if top == nil {
			top = b
			continue
		}
		if b.MaxBidAmount.GreaterThan(top.MaxBidAmount) {
			top = b
			continue
		}
		if b.MaxBidAmount.Equal(top.MaxBidAmount) {
			if b.CreateTime < top.CreateTime ||
				(b.CreateTime == top.CreateTime && b.Id < top.Id) {
				top = b
			}
		}
	}
	return top
}
