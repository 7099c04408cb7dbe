package mongodb

import (
	"context"
	"errors"
	"time"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/errs"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "game_saves"

// saveDoc state 保持客户端 JSON 的结构存成子文档，方便在库里直接查看。
type saveDoc struct {
	UserID     string    `bson:"_id"`
	PlayerName string    `bson:"player_name"`
	Level      int       `bson:"level"`
	LastSaved  time.Time `bson:"last_saved"`
	UpdatedAt  time.Time `bson:"updated_at"`
	State      bson.D    `bson:"state"`
}

type SaveStore struct {
	coll *mongo.Collection
}

func NewSaveStore(db *mongo.Database, collection string) *SaveStore {
	if collection == "" {
		collection = defaultCollectionName
	}
	return &SaveStore{coll: db.Collection(collection)}
}

const (
	OpUpsert = "repo.game.Upsert"
	OpFind   = "repo.game.Find"
	OpDelete = "repo.game.Delete"
)

func (s *SaveStore) Upsert(ctx context.Context, rec port.SaveRecord) error {
	var state bson.D
	if err := bson.UnmarshalExtJSON(rec.Data, false, &state); err != nil {
		return errs.Wrap(OpUpsert, errs.KindCorrupt, err, map[string]any{"user_id": rec.UserID})
	}
	doc := saveDoc{
		UserID:     rec.UserID,
		PlayerName: rec.PlayerName,
		Level:      rec.Level,
		LastSaved:  rec.LastSaved,
		UpdatedAt:  rec.UpdatedAt,
		State:      state,
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.UserID}, doc, options.Replace().SetUpsert(true))
	return errs.Wrap(OpUpsert, errs.KindInfra, err, map[string]any{"user_id": rec.UserID})
}

func (s *SaveStore) Find(ctx context.Context, userID string) (*port.SaveRecord, error) {
	var doc saveDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	switch {
	case err == nil:
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, port.ErrSaveNotFound
	default:
		return nil, errs.Wrap(OpFind, errs.KindInfra, err, map[string]any{"user_id": userID})
	}

	data, err := bson.MarshalExtJSON(doc.State, false, false)
	if err != nil {
		return nil, errs.Wrap(OpFind, errs.KindCorrupt, err, map[string]any{"user_id": userID})
	}
	return &port.SaveRecord{
		UserID:     doc.UserID,
		PlayerName: doc.PlayerName,
		Level:      doc.Level,
		LastSaved:  doc.LastSaved,
		UpdatedAt:  doc.UpdatedAt,
		Data:       data,
	}, nil
}

func (s *SaveStore) Delete(ctx context.Context, userID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return errs.Wrap(OpDelete, errs.KindInfra, err, map[string]any{"user_id": userID})
	}
	if res.DeletedCount == 0 {
		return port.ErrSaveNotFound
	}
	return nil
}
