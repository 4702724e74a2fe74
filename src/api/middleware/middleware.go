package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/logger/xzap"
	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/xhttp"
)

// RecoverMiddleware 自定义恢复中间件
// 捕获 handler 中的 panic, 记录日志并返回统一的内部错误响应
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path))
				xhttp.Error(c, errcode.ErrUnexpected)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RLog 请求日志中间件
// 记录每次 API 访问的方法 / 路径 / 状态码 / 耗时
func RLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		xzap.WithContext(c.Request.Context()).Info("api access",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
