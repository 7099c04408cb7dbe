package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_空cause返回nil(t *testing.T) {
	if Wrap("repo.game.Upsert", KindInfra, nil, nil) != nil {
		t.Fatalf("期望 cause 为空时返回 nil")
	}
}

func TestWrap_保留根因和分类(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrap("repo.game.Find", KindInfra, root, map[string]any{"user_id": "u-1"})
	if !errors.Is(err, root) {
		t.Fatalf("期望 errors.Is 找到根因")
	}
	if err.Error() != "repo.game.Find: connection refused" {
		t.Fatalf("期望错误信息带 op，实际 %s", err.Error())
	}
	outer := fmt.Errorf("service: %w", err)
	if KindOf(outer) != KindInfra || KindOf(root) != KindUnknown {
		t.Fatalf("期望从链上取到分类")
	}
}
