package actors

import (
	"context"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/transport"

	"github.com/asynkron/protoactor-go/actor"
)

type RealmHandler struct{}

var RH = &RealmHandler{}

func (h *RealmHandler) HandleInitPosition(ctx actor.Context, p *RealmActor, req *messages.InitPosition) {
	p.engine.InitializePlayerPosition(req.Lat, req.Lng)
	ctx.Respond(success(p.view()))
}

// HandleMove 定位更新，回复整份状态以便客户端重绘。
func (h *RealmHandler) HandleMove(ctx actor.Context, p *RealmActor, req *messages.Move) {
	p.engine.UpdatePlayerGPSPosition(req.Lat, req.Lng)
	ctx.Respond(success(p.view()))
}

func (h *RealmHandler) HandlePlaceFirstFlag(ctx actor.Context, p *RealmActor, req *messages.PlaceFirstFlag) {
	ctx.Respond(outcome(p.engine.PlaceFirstFlag(req.Lat, req.Lng), "First flag already placed."))
}

func (h *RealmHandler) HandlePlaceAdditionalFlag(ctx actor.Context, p *RealmActor, req *messages.PlaceAdditionalFlag) {
	ctx.Respond(outcome(p.engine.PlaceAdditionalFlag(req.Lat, req.Lng), "Flags must be placed at the edge of your territory."))
}

func (h *RealmHandler) HandleRemoveLastFlag(ctx actor.Context, p *RealmActor, req *messages.RemoveLastFlag) {
	ctx.Respond(outcome(p.engine.RemoveLastFlag(), "Cannot remove your only flag."))
}

func (h *RealmHandler) HandleClearFirstFlag(ctx actor.Context, p *RealmActor, req *messages.ClearFirstFlag) {
	p.engine.ClearFirstFlag()
	ctx.Respond(success(messages.Outcome{Success: true}))
}

func (h *RealmHandler) HandleCanBuild(ctx actor.Context, p *RealmActor, req *messages.CanBuild) {
	ctx.Respond(success(messages.Outcome{Success: p.engine.CanBuildAt(req.Lat, req.Lng)}))
}

func (h *RealmHandler) HandleBuild(ctx actor.Context, p *RealmActor, req *messages.Build) {
	if req.Type == "" {
		ctx.Respond(fail(transport.InvalidParam, "building type is required"))
		return
	}
	ctx.Respond(fromResult(p.engine.BuildStructure(entity.BuildingType(req.Type), req.Lat, req.Lng)))
}

func (h *RealmHandler) HandleCanMove(ctx actor.Context, p *RealmActor, req *messages.CanMove) {
	ctx.Respond(success(messages.Outcome{Success: p.engine.CanMoveToLocation(req.Lat, req.Lng)}))
}

func (h *RealmHandler) HandleSetTarget(ctx actor.Context, p *RealmActor, req *messages.SetTarget) {
	ctx.Respond(outcome(p.engine.SetMovementTarget(req.Lat, req.Lng), "You can only move within your territory."))
}

func (h *RealmHandler) HandleTeleport(ctx actor.Context, p *RealmActor, req *messages.Teleport) {
	if !p.engine.TeleportToFlag(req.TerritoryID) {
		ctx.Respond(outcome(false, "Flag not found."))
		return
	}
	ctx.Respond(success(p.view()))
}

func (h *RealmHandler) HandleAttack(ctx actor.Context, p *RealmActor, req *messages.Attack) {
	ctx.Respond(fromResult(p.engine.Attack()))
}

func (h *RealmHandler) HandleRest(ctx actor.Context, p *RealmActor, req *messages.Rest) {
	p.engine.Rest()
	ctx.Respond(success(p.engine.Player()))
}

func (h *RealmHandler) HandleCraft(ctx actor.Context, p *RealmActor, req *messages.Craft) {
	ctx.Respond(fromResult(p.engine.CraftAtAnvil(req.RecipeID)))
}

func (h *RealmHandler) HandleSocket(ctx actor.Context, p *RealmActor, req *messages.Socket) {
	ctx.Respond(fromResult(p.engine.SocketGem(req.TargetID, req.GemID)))
}

func (h *RealmHandler) HandleEquip(ctx actor.Context, p *RealmActor, req *messages.Equip) {
	ctx.Respond(outcome(p.engine.EquipItem(req.ItemID), "Item cannot be equipped."))
}

func (h *RealmHandler) HandleUnequip(ctx actor.Context, p *RealmActor, req *messages.Unequip) {
	ctx.Respond(outcome(p.engine.UnequipItem(entity.EquipSlot(req.Slot)), "Nothing equipped in that slot."))
}

func (h *RealmHandler) HandleUseItem(ctx actor.Context, p *RealmActor, req *messages.UseItem) {
	ctx.Respond(fromResult(p.engine.UseItem(req.ItemID)))
}

// HandleSpawnLoot 管理员在地图上投放掉落，玩家走近 20 米内拾取。
func (h *RealmHandler) HandleSpawnLoot(ctx actor.Context, p *RealmActor, req *messages.SpawnLoot) {
	if !p.isAdmin {
		ctx.Respond(fail(transport.Forbidden, "admin only"))
		return
	}
	level := req.Level
	if level <= 0 {
		level = p.engine.Player().Level
	}
	drop, ok := p.engine.SpawnLoot(entity.At(req.Lat, req.Lng), level)
	if !ok {
		ctx.Respond(outcome(false, "No loot dropped."))
		return
	}
	ctx.Respond(success(messages.Outcome{Success: true, ItemName: drop.Item.Name}))
}

func (h *RealmHandler) HandleCollect(ctx actor.Context, p *RealmActor, req *messages.Collect) {
	cityID := req.CityID
	if cityID == "" {
		if cities := p.engine.Player().Cities; len(cities) > 0 {
			cityID = cities[0].ID
		}
	}
	ctx.Respond(outcome(p.engine.CollectCityResources(cityID), "City not found."))
}

func (h *RealmHandler) HandleLearnSkill(ctx actor.Context, p *RealmActor, req *messages.LearnSkill) {
	ctx.Respond(outcome(p.engine.LearnSkill(req.SkillID), "Skill already learned."))
}

func (h *RealmHandler) HandleUpgradeSkill(ctx actor.Context, p *RealmActor, req *messages.UpgradeSkill) {
	ctx.Respond(outcome(p.engine.UpgradeSkill(req.SkillID), "Skill cannot be upgraded."))
}

func (h *RealmHandler) HandleGetState(ctx actor.Context, p *RealmActor, req *messages.GetState) {
	ctx.Respond(success(p.view()))
}

// HandleSave 手动存档，经 autosave 事件走和定时存档相同的路径。
func (h *RealmHandler) HandleSave(ctx actor.Context, p *RealmActor, req *messages.Save) {
	ctx.Respond(fromResult(p.engine.Save()))
}

func (h *RealmHandler) HandleDeleteSave(ctx actor.Context, p *RealmActor, req *messages.DeleteSave) {
	if err := p.dc.Delete(context.Background()); err != nil {
		ctx.Respond(fail(transport.SystemError, "delete save failed"))
		return
	}
	ctx.Respond(success(messages.Outcome{Success: true, Message: "Save deleted."}))
}

// HandleBank 只有管理员能看金库；回复缓存值并触发后台刷新。
func (h *RealmHandler) HandleBank(ctx actor.Context, p *RealmActor, req *messages.Bank) {
	if !p.isAdmin {
		ctx.Respond(fail(transport.Forbidden, "admin only"))
		return
	}
	p.dc.RefreshBank()
	gold, cached := p.dc.BankGold()
	ctx.Respond(success(messages.BankView{OwnerBankGold: gold, Cached: cached}))
}
