package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// ErrorLog 是从 errx.Error（或任意 error）中提取出的日志字段。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// 不直接依赖 errx，任何实现了这些方法的 error 都能被提取。
type richError interface {
	CodeText() string
	Msg() string
	Reason() string
	Data() map[string]any
	Stack() []uintptr
}

func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var re richError
	if errors.As(err, &re) {
		out.Code = re.CodeText()
		out.Msg = re.Msg()
		out.Reason = re.Reason()
		out.Data = re.Data()
		out.Origin, out.Stack = formatStack(re.Stack(), 32)
	}
	out.CauseChain = buildCauseChain(err, 20)
	return out
}

func buildCauseChain(err error, maxDepth int) []string {
	var out []string
	cur := errors.Unwrap(err)
	for i := 0; i < maxDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = errors.Unwrap(cur)
	}
	return out
}

func formatStack(pcs []uintptr, maxFrames int) (origin string, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxFrames)
	for i := 0; i < maxFrames; i++ {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		line := f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
		if origin == "" {
			origin = line
		}
		lines = append(lines, line)
		if !more {
			break
		}
	}
	return origin, strings.Join(lines, "\n")
}
