package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseAuctionId 解析路径参数中的拍卖 ID
func parseAuctionId(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
