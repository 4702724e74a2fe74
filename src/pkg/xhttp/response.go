package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/m0nters/BidStorm-Backend-sub000/src/pkg/errcode"
)

// Response 统一的 HTTP 响应结构
// 所有接口都返回该信封结构, 业务错误通过 code/msg 区分
type Response struct {
	Code uint32      `json:"code"`           // 业务状态码, 200 表示成功
	Msg  string      `json:"msg"`            // 提示信息
	Data interface{} `json:"data,omitempty"` // 业务数据
}

// OkJson 返回成功响应
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error 返回错误响应
// 将任意 error 解析为业务错误码后写入响应信封
// HTTP 状态码保持 200, 客户端统一根据 code 字段判断
func Error(c *gin.Context, err error) {
	e := errcode.ParseErr(err)
	c.JSON(http.StatusOK, Response{
		Code: e.Code(),
		Msg:  e.Msg(),
	})
}
