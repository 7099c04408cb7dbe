package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// ws 响应和 http 响应体里的 code。0 成功，>=500 记为系统错误。
const (
	OK           = 0
	InvalidParam = 400
	NotLoggedIn  = 401
	Forbidden    = 403
	NotFound     = 404
	RuleRejected = 409
	SystemError  = 500
)
