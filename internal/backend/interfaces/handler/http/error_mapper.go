package http

import (
	nethttp "net/http"

	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/modules/kit/errx"
)

// toHTTP 把 errx 错误码映射成 http 状态码和响应体 code。
func toHTTP(err error) (status int, code int) {
	switch errx.CodeOf(err) {
	case errx.CodeReqParamError:
		return nethttp.StatusBadRequest, transport.InvalidParam
	case errx.CodeUnauthorized:
		return nethttp.StatusUnauthorized, transport.NotLoggedIn
	case errx.CodeForbidden:
		return nethttp.StatusForbidden, transport.Forbidden
	case errx.CodeNotFound:
		return nethttp.StatusNotFound, transport.NotFound
	default:
		return nethttp.StatusInternalServerError, transport.SystemError
	}
}
