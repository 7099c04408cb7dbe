package actors

import (
	"reflect"

	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/transport"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, RH.HandleInitPosition)
	register(d, RH.HandleMove)
	register(d, RH.HandlePlaceFirstFlag)
	register(d, RH.HandlePlaceAdditionalFlag)
	register(d, RH.HandleRemoveLastFlag)
	register(d, RH.HandleClearFirstFlag)
	register(d, RH.HandleCanBuild)
	register(d, RH.HandleBuild)
	register(d, RH.HandleCanMove)
	register(d, RH.HandleSetTarget)
	register(d, RH.HandleTeleport)
	register(d, RH.HandleAttack)
	register(d, RH.HandleRest)
	register(d, RH.HandleCraft)
	register(d, RH.HandleSocket)
	register(d, RH.HandleEquip)
	register(d, RH.HandleUnequip)
	register(d, RH.HandleUseItem)
	register(d, RH.HandleCollect)
	register(d, RH.HandleSpawnLoot)
	register(d, RH.HandleLearnSkill)
	register(d, RH.HandleUpgradeSkill)
	register(d, RH.HandleGetState)
	register(d, RH.HandleSave)
	register(d, RH.HandleDeleteSave)
	register(d, RH.HandleBank)
}

// register 按请求的具体类型（指针）注册。
func register[Req messages.RealmMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, p *RealmActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}
	if _, dup := d.handlers[reqType]; dup {
		panic("dispatcher duplicate handler for " + reqType.String())
	}
	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *RealmActor, req messages.RealmMessage) {
	if req == nil {
		ctx.Respond(fail(transport.InvalidParam, "nil req"))
		return
	}
	handler, ok := d.handlers[reflect.TypeOf(req)]
	if !ok {
		ctx.Respond(fail(transport.InvalidParam, "no handler for request body"))
		return
	}
	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
