package service

import (
	"context"

	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
	types "github.com/m0nters/BidStorm-Backend-sub000/src/types/v1"
)

// GetBidHistory 查询拍卖的出价历史, 最新在前
// 每条记录的 is_leader 标志按账本实时重算 (与代理出价/拒绝重算同一套
// 最大上限 + 最早时间 的规则), 不读取任何可能过期的存量字段
func GetBidHistory(ctx context.Context, svcCtx *svc.ServerCtx, auctionId int64) ([]types.BidRecord, error) {
	// 1. 拍卖必须存在
	if _, err := svcCtx.Dao.GetAuctionById(ctx, auctionId); err != nil {
		return nil, err
	}

	// 2. 拉取全部账本记录 (最新在前)
	bids, err := svcCtx.Dao.GetAuctionBids(ctx, auctionId)
	if err != nil {
		return nil, err
	}

	// 3. 重算当前领先记录并打标
	top := pickLeader(bids)

	records := make([]types.BidRecord, 0, len(bids))
	for _, b := range bids {
		records = append(records, types.BidRecord{
			BidId:        b.BidId,
			BidderId:     b.BidderId,
			BidAmount:    b.BidAmount,
			MaxBidAmount: b.MaxBidAmount,
			CreateTime:   b.CreateTime,
			IsLeader:     top != nil && b.Id == top.Id,
		})
	}

	return records, nil
}
