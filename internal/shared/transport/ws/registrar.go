package ws

// Registrar 由各业务模块实现，把路由挂到 Router 上。
type Registrar interface {
	WsRegister(r *Router)
}
