package types

import "github.com/shopspring/decimal"

// PlaceBidReq 出价请求
type PlaceBidReq struct {
	BidderId int64           `json:"bidder_id" binding:"required"`       // 出价人 ID
	MaxBid   decimal.Decimal `json:"max_bid" binding:"required,d_gt_0"`  // 授权的私密价格上限
}

// BuyNowReq 一口价请求
type BuyNowReq struct {
	BidderId int64 `json:"bidder_id" binding:"required"` // 买家 ID
}

// RejectBidderReq 卖家拒绝出价人请求
type RejectBidderReq struct {
	SellerId int64 `json:"seller_id" binding:"required"` // 发起请求的卖家 ID
	BidderId int64 `json:"bidder_id" binding:"required"` // 被拒绝的出价人 ID
}

// BidResult 出价/一口价的处理结果
type BidResult struct {
	BidId       string          `json:"bid_id"`       // 新落地的出价记录 ID
	ResultPrice decimal.Decimal `json:"result_price"` // 落地后的展示价
	IsLeader    bool            `json:"is_leader"`    // 本次调用者是否成为领先者
}

// BidRecord 出价历史中的单条记录
type BidRecord struct {
	BidId        string          `json:"bid_id"`         // 出价记录 ID
	BidderId     int64           `json:"bidder_id"`      // 出价人 ID
	BidAmount    decimal.Decimal `json:"bid_amount"`     // 公开展示价
	MaxBidAmount decimal.Decimal `json:"max_bid_amount"` // 私密价格上限
	CreateTime   int64           `json:"create_time"`    // 出价时间
	IsLeader     bool            `json:"is_leader"`      // 是否为当前领先记录 (实时重算, 非存量字段)
}
