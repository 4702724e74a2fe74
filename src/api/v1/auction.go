package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/xhttp"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
	service "github.com/m0nters/BidStorm-Backend-sub000/src/service/v1"
)

// AuctionDetailHandler 查询拍卖详情
func AuctionDetailHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, err := parseAuctionId(c)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.GetAuctionDetail(c.Request.Context(), svcCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
