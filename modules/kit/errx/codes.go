package errx

// 系统类错误码，跨进程（realm / backend）统一。
// 业务拒绝（插旗失败、资源不足等）不走 errx，由引擎返回 Result。
const (
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeTimeout       Code = "TIMEOUT"
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeCorrupt       Code = "DATA_CORRUPT"
)

// 哨兵错误，只能通过 WithData/WithCause 派生，不要修改。
var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR  = NewBiz(CodeReqParamError, "请求参数错误")
	ErrNotFound     = NewBiz(CodeNotFound, "数据不存在")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "未登录")
	ErrForbidden    = NewBiz(CodeForbidden, "无权访问")
	ErrCorrupt      = NewSys(CodeCorrupt, "数据损坏")
)
