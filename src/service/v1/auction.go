package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/m0nters/BidStorm-Backend-sub000/src/common/utils"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
	types "github.com/m0nters/BidStorm-Backend-sub000/src/types/v1"
)

// GetAuctionDetail 查询拍卖详情
// 带 30s 的 Redis 缓存; 任何成功的状态变更都会主动删除缓存 (见 afterCommit)
func GetAuctionDetail(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64) (*types.AuctionDetail, error) {
	// 1. 优先读缓存
	raw, err := svcCtx.Dao.GetAuctionDetailCache(auctionId)
	if err != nil {
		// 缓存故障降级为直查数据库
		xzap.WithContext(ctx).Warn("failed on read auction cache",
			zap.Int64("auction_id", auctionId), zap.Error(err))
	}
	if raw != "" {
		var cached types.AuctionDetail
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	// 2. 缓存未命中, 查库
	auction, err := svcCtx.Dao.GetAuctionById(ctx, auctionId)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	detail := &types.AuctionDetail{
		Id:                  auction.Id,
		SellerId:            auction.SellerId,
		Title:               auction.Title,
		StartingPrice:       auction.StartingPrice,
		CurrentPrice:        auction.CurrentPrice,
		PriceStep:           auction.PriceStep,
		EndTime:             auction.EndTime,
		SecondsRemaining:    utils.Max(0, auction.EndTime-now),
		AutoExtend:          auction.AutoExtend,
		AllowUnratedBidders: auction.AllowUnratedBidders,
		HighestBidderId:     auction.HighestBidderId,
		WinnerId:            auction.WinnerId,
		BidCount:            auction.BidCount,
		IsEnded:             auction.Ended(now),
	}
	if auction.HasBuyNowPrice() {
		buyNow := auction.BuyNowPrice.Decimal
		detail.BuyNowPrice = &buyNow
	}
	if detail.IsEnded {
		detail.SecondsRemaining = 0
	}

	// 3. 回填缓存 (失败不影响返回)
	if data, err := json.Marshal(detail); err == nil {
		if err := svcCtx.Dao.SetAuctionDetailCache(auctionId, string(data)); err != nil {
			xzap.WithContext(ctx).Warn("failed on set auction cache",
				zap.Int64("auction_id", auctionId), zap.Error(err))
		}
	}

	return detail, nil
}
