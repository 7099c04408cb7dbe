package middleware

import (
	"net/http"

	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// AccessLog 每个请求一行访问日志。业务码由 OK/Fail 写入，
// 没经过它们的请求（healthz、gin 自己的 404）按状态码推断。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !transport.HasBizCode(ctx) {
			transport.SetBizCode(ctx, transport.BizCode(codeOfStatus(c.Writer.Status())))
		}
		transport.WriteAccessLog(ctx, log)
	}
}

func codeOfStatus(status int) int {
	switch {
	case status < http.StatusBadRequest:
		return transport.OK
	case status == http.StatusUnauthorized:
		return transport.NotLoggedIn
	case status == http.StatusForbidden:
		return transport.Forbidden
	case status == http.StatusNotFound:
		return transport.NotFound
	case status < http.StatusInternalServerError:
		return transport.InvalidParam
	default:
		return transport.SystemError
	}
}
