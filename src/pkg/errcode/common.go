package errcode

// 通用错误码
const (
	CodeOK            uint32 = 200  // 成功
	CodeCustom        uint32 = 2000 // 自定义错误
	CodeUnexpected    uint32 = 500  // 未知内部错误
	CodeInvalidParams uint32 = 1002 // 参数错误
	CodeNotFound      uint32 = 1004 // 资源不存在
)

// 竞拍引擎错误码 (3000 段)
const (
	CodeAuctionEnded        uint32 = 3001 // 拍卖已结束
	CodeSelfBid             uint32 = 3002 // 卖家对自己的拍卖出价
	CodeBidderBlocked       uint32 = 3003 // 出价人已被卖家拉黑
	CodeLowRating           uint32 = 3004 // 出价人评价过低
	CodeUnratedBidder       uint32 = 3005 // 出价人无评价且该拍卖不允许无评价出价
	CodeInvalidBidAmount    uint32 = 3006 // 出价金额不合法
	CodeNotAuctionSeller    uint32 = 3007 // 非卖家操作卖家专属功能
	CodeConcurrencyConflict uint32 = 3009 // 并发冲突(可重试)
)

var (
	ErrUnexpected    = NewErr(CodeUnexpected, "Internal server error")
	ErrInvalidParams = NewErr(CodeInvalidParams, "Invalid params")
	ErrNotFound      = NewErr(CodeNotFound, "Resource not found")

	// ErrAuctionEnded 拍卖已经结束 (手动结束标志或超过结束时间), 拒绝一切变更操作
	ErrAuctionEnded = NewErr(CodeAuctionEnded, "Auction has ended")
	// ErrSelfBid 卖家不能对自己的拍卖出价
	ErrSelfBid = NewErr(CodeSelfBid, "Seller cannot bid on own auction")
	// ErrBidderBlocked 出价人已被该拍卖卖家拉黑
	ErrBidderBlocked = NewErr(CodeBidderBlocked, "Bidder is blocked from this auction")
	// ErrLowRating 出价人好评率低于门槛 (80%)
	ErrLowRating = NewErr(CodeLowRating, "Bidder rating is below the required threshold")
	// ErrUnratedBidder 出价人没有任何评价, 且该拍卖不接受无评价出价人
	ErrUnratedBidder = NewErr(CodeUnratedBidder, "Auction does not allow unrated bidders")
	// ErrInvalidBidAmount 出价低于最小加价额度, 或对未配置一口价的拍卖发起一口价
	ErrInvalidBidAmount = NewErr(CodeInvalidBidAmount, "Invalid bid amount")
	// ErrNotAuctionSeller 只有卖家本人可以拒绝出价人
	ErrNotAuctionSeller = NewErr(CodeNotAuctionSeller, "Only the auction seller can perform this operation")
	// ErrConcurrencyConflict 针对同一拍卖的并发操作冲突, 属于瞬时错误, 调用方可整体重试
	ErrConcurrencyConflict = NewErr(CodeConcurrencyConflict, "Concurrent update conflict, please retry")
)
