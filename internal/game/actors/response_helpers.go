package actors

import (
	"ParallelRealms/internal/game/engine"
	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/transport"
)

func success(data any) *messages.Reply {
	return &messages.Reply{Code: transport.OK, Message: "ok", Data: data}
}

func fail(code int, msg string) *messages.Reply {
	return &messages.Reply{Code: code, Message: msg}
}

// outcome 规则拒绝不是错误，回 RuleRejected 并带上原因。
func outcome(ok bool, rejected string) *messages.Reply {
	if ok {
		return success(messages.Outcome{Success: true})
	}
	r := fail(transport.RuleRejected, rejected)
	r.Data = messages.Outcome{Success: false, Message: rejected}
	return r
}

func fromResult(res engine.Result) *messages.Reply {
	out := messages.Outcome{Success: res.Success, Message: res.Message, ItemName: res.ItemName}
	if res.Success {
		return success(out)
	}
	r := fail(transport.RuleRejected, res.Message)
	r.Data = out
	return r
}
