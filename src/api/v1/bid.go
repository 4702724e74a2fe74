package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/xhttp"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
	service "github.com/m0nters/BidStorm-Backend-sub000/src/service/v1"
	types "github.com/m0nters/BidStorm-Backend-sub000/src/types/v1"
)

// PlaceBidHandler 处理出价请求
// 主要功能:
// 1. 解析路径中的拍卖 ID 与请求体 (出价人 / 价格上限)
// 2. 调用 Service 层执行代理出价 (含一口价路由)
// 3. 返回 {bid_id, result_price, is_leader}
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := parseAuctionId(c)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		var req types.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.PlaceBid(c.Request.Context(), svcCtx, auctionId, req.BidderId, req.MaxBid)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// BuyNowHandler 处理一口价请求
func BuyNowHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := parseAuctionId(c)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		var req types.BuyNowReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.BuyNow(c.Request.Context(), svcCtx, auctionId, req.BidderId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// RejectBidderHandler 处理卖家拒绝出价人请求
func RejectBidderHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := parseAuctionId(c)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		var req types.RejectBidderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := service.RejectBidder(c.Request.Context(), svcCtx, auctionId, req.SellerId, req.BidderId); err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, nil)
	}
}

// BidHistoryHandler 查询拍卖出价历史
// 返回结果最新在前, 每条记录附带实时重算的 is_leader 标志
func BidHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := parseAuctionId(c)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.GetBidHistory(c.Request.Context(), svcCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}
