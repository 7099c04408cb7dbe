package http

import (
	nethttp "net/http"

	"ParallelRealms/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

// Response 是后端 API 的统一响应体，code 为 0 表示成功。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(transport.OK))
	c.JSON(nethttp.StatusOK, Response{Code: transport.OK, Msg: "ok", Data: data})
}

// Fail 写失败响应，reason 进访问日志。
func Fail(c *gin.Context, status, code int, msg, reason string) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(code))
	transport.SetErrorReason(c.Request.Context(), reason)
	c.AbortWithStatusJSON(status, Response{Code: code, Msg: msg})
}
