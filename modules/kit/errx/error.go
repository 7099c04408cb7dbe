package errx

import (
	"errors"
	"maps"
	"runtime"
	"slices"
	"strings"
)

// Code 错误的稳定语义标识，跨进程不变。
type Code string

type kind uint8

const (
	kindBiz kind = iota
	kindSys
)

// Reason 细分同一个 Code 下的具体原因。
type Reason interface {
	ReasonCode() string
}

const reasonKey = "reason"

// Error 不可变：With* 都返回副本。
// 系统错误第一次挂 cause 时捕获栈，链上已有栈时不再捕获。
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
	kind  kind
}

func NewBiz(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindBiz}
}

func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindSys}
}

// Error 形如 "CODE: msg: cause"，空的部分省略。
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := []string{string(e.code)}
	if e.msg != "" {
		parts = append(parts, e.msg)
	}
	if e.cause != nil {
		parts = append(parts, e.cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只比较 code，errors.Is(err, ErrNotFound) 不关心 data 和 cause。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string { return string(e.Code()) }

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// IsSys 系统错误记 ERROR 带栈，业务错误记 INFO。
func (e *Error) IsSys() bool {
	return e != nil && e.kind == kindSys
}

func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return maps.Clone(e.data)
}

func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	s, _ := e.data[reasonKey].(string)
	return s
}

func (e *Error) Stack() []uintptr {
	if e == nil {
		return nil
	}
	return slices.Clone(e.stack)
}

func (e *Error) WithData(key string, value any) *Error {
	return e.WithDataMap(map[string]any{key: value})
}

func (e *Error) WithReason(reason Reason) *Error {
	code := ""
	if reason != nil {
		code = reason.ReasonCode()
	}
	return e.WithData(reasonKey, code)
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	next := e.clone()
	if len(data) == 0 {
		return next
	}
	if next.data == nil {
		next.data = make(map[string]any, len(data))
	}
	maps.Copy(next.data, data)
	return next
}

func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	if next.kind == kindSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		// 跳过 runtime.Callers、captureStack 和 WithCause 自己
		next.stack = captureStack(3)
	}
	return next
}

func (e *Error) clone() *Error {
	c := *e
	c.data = maps.Clone(e.data)
	c.stack = slices.Clone(e.stack)
	return &c
}

// CodeOf 错误链上第一个 *Error 的 code，没有则为空。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	for depth := 0; err != nil && depth < 32; depth++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
