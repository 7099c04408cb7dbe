package logx

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// BizLog 一次规则拒绝：插旗失败、材料不足、无权访问。
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog 一次技术错误：落盘失败、远端不可达、存档损坏。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// fieldSet 空值不进日志。
type fieldSet []zap.Field

func (f fieldSet) str(key, val string) fieldSet {
	if val == "" {
		return f
	}
	return append(f, zap.String(key, val))
}

func (f fieldSet) strs(key string, vals []string) fieldSet {
	if len(vals) == 0 {
		return f
	}
	return append(f, zap.Strings(key, vals))
}

// headline 形如 "game.save, reason:X, error:Y"。
func headline(action string, kv ...string) string {
	var b strings.Builder
	b.WriteString(action)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(kv[i])
		b.WriteByte(':')
		b.WriteString(kv[i+1])
	}
	return b.String()
}

// ReportAccess 业务码 0 记 INFO，>=500 记 ERROR，其余 WARN。
func ReportAccess(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	all := append(fieldSet{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)

	log := l.WithContext(ctx).Info
	if bizCode >= 500 {
		log = l.WithContext(ctx).Error
	} else if bizCode != 0 {
		log = l.WithContext(ctx).Warn
	}
	log("access", all...)
}

// ReportBiz 规则拒绝记 INFO，不带栈。
func ReportBiz(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := biz.Action
	if action == "" {
		action = "biz_reject"
	}
	all := fieldSet{zap.String("err_type", "biz"), zap.String("action", action)}.
		str("reason", biz.Reason).
		str("biz_message", biz.Message)
	all = append(all, fields...)
	l.WithContext(ctx).Info(headline(action, "reason", biz.Reason, "msg", biz.Message), all...)
}

// ReportSysError 技术错误记 ERROR，带错误码、cause 链和发生处的栈。
func ReportSysError(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if l == nil || sys.Err == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	all := fieldSet{zap.String("err_type", "sys"), zap.String("action", action)}.
		str("error_code", meta.Code).
		strs("cause_chain", meta.CauseChain).
		str("origin_caller", meta.Origin).
		str("stack_origin", meta.Stack)
	if len(meta.Data) != 0 {
		all = append(all, zap.Any("error_data", meta.Data))
	}
	all = append(all, fields...)
	l.WithContext(ctx).Error(headline(action, "reason", meta.Reason, "error", meta.Error), all...)
}
