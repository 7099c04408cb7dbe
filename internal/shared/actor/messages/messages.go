package messages

// Reply 是 RealmActor 对每个请求的统一回复，Code 取 transport 业务码。
type Reply struct {
	Code    int
	Message string
	Data    any
}

// PushFunc 把引擎事件推到连接上，由 RealmActor 在自己的协程里调用。
type PushFunc func(name string, data any)

// OpenSession 建立或接管一个会话；同一 Session 再次打开时只换连接。
type OpenSession struct {
	Session string
	ConnID  string
	UserID  string
	// Token 非空时用于访问存档后端。
	Token   string
	IsAdmin bool
	Push    PushFunc
}

// CloseSession 只有 ConnID 仍是当前连接时才停止会话。
type CloseSession struct {
	Session string
	ConnID  string
}
