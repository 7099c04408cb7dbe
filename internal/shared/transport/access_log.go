package transport

import (
	"context"
	"time"

	"ParallelRealms/modules/kit/logx"
	"ParallelRealms/modules/kit/tracex"

	"go.uber.org/zap"
)

// AccessLog 一次请求（ws 消息或 http 调用）的访问记录，处理结束时写一行。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	UserID      string

	proto  string
	action string
	begin  time.Time
	coded  bool
}

type accessLogKey struct{}

// spanName 由进程入口设置（realm / backend）。
var spanName = "realm"

func SetSpanName(name string) {
	if name != "" {
		spanName = name
	}
}

// NewContext ws 消息用，消息之间没有父 context。
func NewContext(action string) context.Context {
	return begin(context.Background(), "ws", action)
}

// NewContextWithParent http 请求用，保留请求的取消信号。
func NewContextWithParent(parent context.Context, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return begin(parent, "http", action)
}

func begin(ctx context.Context, proto, action string) context.Context {
	if action == "" {
		action = "unknown"
	}
	if id := tracex.NewTraceID(); id != "" {
		ctx = tracex.WithTraceID(ctx, id)
	}
	ctx = tracex.WithSpanID(ctx, spanName)
	// 没有显式设置业务码的请求按系统错误记
	return context.WithValue(ctx, accessLogKey{}, &AccessLog{
		BizCode: BizCode(SystemError),
		proto:   proto,
		action:  action,
		begin:   time.Now(),
	})
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode, al.coded = code, true
	}
}

// HasBizCode 处理过程中是否显式设置过业务码。
func HasBizCode(ctx context.Context) bool {
	al := FromContext(ctx)
	return al != nil && al.coded
}

// SetErrorReason 只保留第一个 reason，后面的通常是外层补的泛化原因。
func SetErrorReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && reason != "" && al.ErrorReason == "" {
		al.ErrorReason = reason
	}
}

func SetUserID(ctx context.Context, uid string) {
	if al := FromContext(ctx); al != nil {
		al.UserID = uid
	}
}

func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	result := "success"
	if al.BizCode != BizCode(OK) {
		result = "failure"
	}
	fields := []zap.Field{
		zap.String("proto", al.proto),
		zap.String("result", result),
		zap.Duration("latency", time.Since(al.begin)),
	}
	if al.UserID != "" {
		fields = append(fields, zap.String("user_id", al.UserID))
	}
	if al.ErrorReason != "" {
		fields = append(fields, zap.String("error_reason", al.ErrorReason))
	}
	logx.ReportAccess(ctx, log, al.action, int(al.BizCode), fields...)
}
