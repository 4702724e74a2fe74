package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/m0nters/BidStorm-Backend-sub000/src/api/middleware"
	v1 "github.com/m0nters/BidStorm-Backend-sub000/src/api/v1"
	"github.com/m0nters/BidStorm-Backend-sub000/src/common/utils"
	"github.com/m0nters/BidStorm-Backend-sub000/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	// 强制控制台颜色输出，使日志更易读
	gin.ForceConsoleColor()
	// 设置 Gin 为发布模式 (ReleaseMode)
	gin.SetMode(gin.ReleaseMode)
	// 注册金额等自定义校验规则
	utils.RegisterValidators()

	r := gin.New()                        // 新建一个gin引擎实例
	r.Use(middleware.RecoverMiddleware()) // 使用自定义的恢复中间件，处理 Panic
	r.Use(middleware.RLog())              // 使用请求日志中间件，记录API访问日志

	r.Use(cors.New(cors.Config{ // 使用cors中间件，配置跨域访问策略
		AllowAllOrigins:  true,                                                         // 允许所有源
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}, // 允许的方法
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "X-GW-Error-Code", "X-GW-Error-Message"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx) // 加载 v1 版本的路由分组

	return r
}

// loadV1 挂载 v1 版本的全部路由
func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api/v1")

	auctions := apiV1.Group("/auctions")
	{
		auctions.GET("/:id", v1.AuctionDetailHandler(svcCtx))          // 拍卖详情
		auctions.GET("/:id/bids", v1.BidHistoryHandler(svcCtx))        // 出价历史
		auctions.POST("/:id/bids", v1.PlaceBidHandler(svcCtx))         // 代理出价
		auctions.POST("/:id/buy-now", v1.BuyNowHandler(svcCtx))        // 一口价
		auctions.POST("/:id/reject", v1.RejectBidderHandler(svcCtx))   // 卖家拒绝出价人
	}
}
