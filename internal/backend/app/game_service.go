package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/shared/backendapi"
)

// Caller 是 JWT 里的调用方身份。
type Caller struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// CanAccess 非管理员只能读写自己的存档。
func (c Caller) CanAccess(userID string) bool {
	return c.IsAdmin || c.UserID == userID
}

// saveHead 只解出列表需要的字段，其余原样存储。
type saveHead struct {
	UserID string `json:"userId"`
	Player struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	} `json:"player"`
	LastSaved time.Time `json:"lastSaved"`
}

type GameService struct {
	store port.SaveStore
	now   func() time.Time
}

func NewGameService(store port.SaveStore, now func() time.Time) *GameService {
	if now == nil {
		now = time.Now
	}
	return &GameService{store: store, now: now}
}

// Save 按 userId upsert 快照。
func (s *GameService) Save(ctx context.Context, caller Caller, raw json.RawMessage) (*backendapi.SaveResult, error) {
	var head saveHead
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, reject(ErrInvalidParam, ReasonBadSaveBody).WithCause(err)
	}
	head.UserID = strings.TrimSpace(head.UserID)
	if head.UserID == "" {
		return nil, reject(ErrInvalidParam, ReasonUserIDMissing)
	}
	if !caller.CanAccess(head.UserID) {
		return nil, reject(ErrForbidden, ReasonOtherUser).WithData("user_id", head.UserID)
	}

	now := s.now().UTC()
	rec := port.SaveRecord{
		UserID:     head.UserID,
		PlayerName: head.Player.Name,
		Level:      head.Player.Level,
		LastSaved:  head.LastSaved,
		UpdatedAt:  now,
		Data:       append(json.RawMessage(nil), raw...),
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, reject(ErrUnavailable, ReasonSaveStoreFail).WithData("user_id", head.UserID).WithCause(err)
	}
	return &backendapi.SaveResult{UserID: head.UserID, SavedAt: now}, nil
}

// Load 返回原样存储的 GameState JSON。
func (s *GameService) Load(ctx context.Context, caller Caller, userID string) (json.RawMessage, error) {
	rec, err := s.find(ctx, caller, userID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(rec.Data) {
		return nil, reject(ErrCorrupt, ReasonSaveDataBroken).WithData("user_id", userID)
	}
	return rec.Data, nil
}

func (s *GameService) Delete(ctx context.Context, caller Caller, userID string) error {
	if err := s.check(caller, userID); err != nil {
		return err
	}
	err := s.store.Delete(ctx, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, port.ErrSaveNotFound):
		return reject(ErrNotFound, ReasonSaveNotFound).WithData("user_id", userID)
	default:
		return reject(ErrUnavailable, ReasonSaveStoreFail).WithData("user_id", userID).WithCause(err)
	}
}

// List 一个用户最多一份存档，没有时返回空列表。
func (s *GameService) List(ctx context.Context, caller Caller, userID string) ([]backendapi.SaveMeta, error) {
	rec, err := s.find(ctx, caller, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []backendapi.SaveMeta{}, nil
		}
		return nil, err
	}
	return []backendapi.SaveMeta{{
		UserID:     rec.UserID,
		PlayerName: rec.PlayerName,
		Level:      rec.Level,
		LastSaved:  rec.LastSaved,
		UpdatedAt:  rec.UpdatedAt,
	}}, nil
}

func (s *GameService) check(caller Caller, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return reject(ErrInvalidParam, ReasonUserIDMissing)
	}
	if !caller.CanAccess(userID) {
		return reject(ErrForbidden, ReasonOtherUser).WithData("user_id", userID)
	}
	return nil
}

func (s *GameService) find(ctx context.Context, caller Caller, userID string) (*port.SaveRecord, error) {
	if err := s.check(caller, userID); err != nil {
		return nil, err
	}
	rec, err := s.store.Find(ctx, userID)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, port.ErrSaveNotFound):
		return nil, reject(ErrNotFound, ReasonSaveNotFound).WithData("user_id", userID)
	default:
		return nil, reject(ErrUnavailable, ReasonSaveStoreFail).WithData("user_id", userID).WithCause(err)
	}
}
