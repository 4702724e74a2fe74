package auctionmodel

import (
	"github.com/shopspring/decimal"
)

const BidTable = "ob_bid"

// Bid 出价流水 (只追加账本)
// 每条记录一旦写入不再更新; 仅在卖家拒绝出价人时被批量删除
type Bid struct {
	Id           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                  // 自增主键
	BidId        string          `gorm:"column:bid_id" json:"bid_id"`                                   // 对外暴露的出价 ID (uuid)
	AuctionId    int64           `gorm:"column:auction_id" json:"auction_id"`                           // 拍卖 ID
	BidderId     int64           `gorm:"column:bidder_id" json:"bidder_id"`                             // 出价人 ID
	BidAmount    decimal.Decimal `gorm:"column:bid_amount;type:decimal(30,0)" json:"bid_amount"`        // 公开展示价 (该次出价落地后的显示价格)
	MaxBidAmount decimal.Decimal `gorm:"column:max_bid_amount;type:decimal(30,0)" json:"max_bid_amount"` // 出价人授权的私密价格上限
	CreateTime   int64           `gorm:"column:create_time;autoCreateTime" json:"create_time"`          // 出价时间 (unix 秒)
}

func BidTableName() string {
	return BidTable
}
