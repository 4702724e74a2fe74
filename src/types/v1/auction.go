package types

import "github.com/shopspring/decimal"

// AuctionDetail 拍卖详情
// is_ended 为计算后的有效结束状态 (手动标志 OR 已过结束时间)
type AuctionDetail struct {
	Id                  int64            `json:"id"`                     // 拍卖 ID
	SellerId            int64            `json:"seller_id"`              // 卖家 ID
	Title               string           `json:"title"`                  // 标题
	StartingPrice       decimal.Decimal  `json:"starting_price"`         // 起拍价
	CurrentPrice        decimal.Decimal  `json:"current_price"`          // 当前展示价
	PriceStep           decimal.Decimal  `json:"price_step"`             // 最小加价步长
	BuyNowPrice         *decimal.Decimal `json:"buy_now_price,omitempty"` // 一口价 (未配置时省略)
	EndTime             int64            `json:"end_time"`               // 结束时间 (unix 秒)
	SecondsRemaining    int64            `json:"seconds_remaining"`      // 剩余秒数 (已结束为 0)
	AutoExtend          bool             `json:"auto_extend"`            // 是否开启自动延时
	AllowUnratedBidders bool             `json:"allow_unrated_bidders"`  // 是否允许无评价出价人
	HighestBidderId     int64            `json:"highest_bidder_id"`      // 当前领先出价人 (0 表示暂无)
	WinnerId            int64            `json:"winner_id"`              // 最终赢家 (0 表示未产生)
	BidCount            int64            `json:"bid_count"`              // 有效出价数
	IsEnded             bool             `json:"is_ended"`               // 有效结束状态
}
