package auctionmodel

import (
	"github.com/shopspring/decimal"
)

const AuctionTable = "ob_auction"

// Auction 拍卖聚合根
// current_price / highest_bidder_id / bid_count / end_time 只允许在同一个
// 事务里随出价记录一起变更, version 字段用于乐观锁校验
type Auction struct {
	Id                  int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                        // 拍卖 ID
	SellerId            int64               `gorm:"column:seller_id" json:"seller_id"`                                   // 卖家用户 ID
	Title               string              `gorm:"column:title" json:"title"`                                           // 拍卖标题
	StartingPrice       decimal.Decimal     `gorm:"column:starting_price;type:decimal(30,0)" json:"starting_price"`      // 起拍价
	CurrentPrice        decimal.Decimal     `gorm:"column:current_price;type:decimal(30,0)" json:"current_price"`        // 当前展示价
	PriceStep           decimal.Decimal     `gorm:"column:price_step;type:decimal(30,0)" json:"price_step"`              // 最小加价步长
	BuyNowPrice         decimal.NullDecimal `gorm:"column:buy_now_price;type:decimal(30,0)" json:"buy_now_price"`        // 一口价 (可选)
	EndTime             int64               `gorm:"column:end_time" json:"end_time"`                                     // 结束时间 (unix 秒)
	AutoExtend          bool                `gorm:"column:auto_extend" json:"auto_extend"`                               // 是否开启自动延时
	AllowUnratedBidders bool                `gorm:"column:allow_unrated_bidders" json:"allow_unrated_bidders"`           // 是否允许无评价出价人
	HighestBidderId     int64               `gorm:"column:highest_bidder_id" json:"highest_bidder_id"`                   // 当前领先出价人 ID (0 表示暂无)
	WinnerId            int64               `gorm:"column:winner_id" json:"winner_id"`                                   // 最终赢家 ID (0 表示未产生)
	BidCount            int64               `gorm:"column:bid_count" json:"bid_count"`                                   // 有效出价记录数
	IsEnded             bool                `gorm:"column:is_ended" json:"is_ended"`                                     // 手动结束标志, 置位后不可回退
	Version             int64               `gorm:"column:version" json:"version"`                                       // 乐观锁版本号
	CreateTime          int64               `gorm:"column:create_time;autoCreateTime" json:"create_time"`                // 创建时间
	UpdateTime          int64               `gorm:"column:update_time;autoUpdateTime" json:"update_time"`                // 更新时间
}

func AuctionTableName() string {
	return AuctionTable
}

// Ended 计算拍卖的有效结束状态
// 结束状态是单一谓词: 手动标志 OR 已过结束时间, 两者不作为独立事实各自维护
func (a *Auction) Ended(now int64) bool {
	return a.IsEnded || now >= a.EndTime
}

// HasBuyNowPrice 是否配置了一口价
func (a *Auction) HasBuyNowPrice() bool {
	return a.BuyNowPrice.Valid
}
