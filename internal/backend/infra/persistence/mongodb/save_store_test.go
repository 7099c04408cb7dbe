package mongodb

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// 不连库，只验证 state 在 JSON 和 bson 之间来回转换不丢字段。
func TestSaveDoc_状态JSON往返(t *testing.T) {
	in := []byte(`{"userId":"u-1","player":{"name":"Hero","level":3,"position":{"lat":51.5074,"lng":-0.1278},"inventory":[]},"territories":[],"lastSaved":"2026-03-01T08:00:00Z"}`)

	var state bson.D
	if err := bson.UnmarshalExtJSON(in, false, &state); err != nil {
		t.Fatalf("期望 JSON 转 bson 成功: %v", err)
	}
	raw, err := bson.Marshal(saveDoc{UserID: "u-1", State: state})
	if err != nil {
		t.Fatalf("期望编码成功: %v", err)
	}
	var doc saveDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("期望解码成功: %v", err)
	}
	out, err := bson.MarshalExtJSON(doc.State, false, false)
	if err != nil {
		t.Fatalf("期望 bson 转 JSON 成功: %v", err)
	}

	var want, got map[string]any
	_ = json.Unmarshal(in, &want)
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("期望输出合法 JSON: %v", err)
	}
	wp, gp := want["player"].(map[string]any), got["player"].(map[string]any)
	if gp["name"] != wp["name"] || gp["level"] != wp["level"] || got["lastSaved"] != want["lastSaved"] {
		t.Fatalf("期望字段保留\nwant=%v\ngot =%v", want, got)
	}
	if inv, ok := gp["inventory"].([]any); !ok || len(inv) != 0 {
		t.Fatalf("期望空数组仍是数组，实际 %v", gp["inventory"])
	}
	pos := gp["position"].(map[string]any)
	if pos["lat"] != 51.5074 || pos["lng"] != -0.1278 {
		t.Fatalf("期望坐标精度不变，实际 %v", pos)
	}
}
