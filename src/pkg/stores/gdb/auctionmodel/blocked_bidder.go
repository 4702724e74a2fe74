package auctionmodel

const BlockedBidderTable = "ob_blocked_bidder"

// BlockedBidder 拍卖级黑名单
// (auction_id, bidder_id) 唯一, 只插入不更新, 重复插入幂等
type BlockedBidder struct {
	Id         int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuctionId  int64 `gorm:"column:auction_id;uniqueIndex:uk_auction_bidder" json:"auction_id"` // 拍卖 ID
	BidderId   int64 `gorm:"column:bidder_id;uniqueIndex:uk_auction_bidder" json:"bidder_id"`   // 被拉黑的出价人 ID
	CreateTime int64 `gorm:"column:create_time;autoCreateTime" json:"create_time"`              // 拉黑时间
}

func BlockedBidderTableName() string {
	return BlockedBidderTable
}
