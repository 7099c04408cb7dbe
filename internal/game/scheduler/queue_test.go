package scheduler

import (
	"testing"
	"time"
)

func TestQueue_按时间再按入队顺序(t *testing.T) {
	q := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q.Schedule(KindRegen, base.Add(2*time.Second), "b")
	q.Schedule(KindRegen, base.Add(time.Second), "a1")
	q.Schedule(KindCounterAttack, base.Add(time.Second), "a2")

	var got []string
	for {
		ev, ok := q.PopDue(base.Add(5 * time.Second))
		if !ok {
			break
		}
		got = append(got, ev.Target)
	}
	if len(got) != 3 || got[0] != "a1" || got[1] != "a2" || got[2] != "b" {
		t.Fatalf("期望 a1,a2,b, got=%v", got)
	}
}

func TestQueue_未到期不弹出(t *testing.T) {
	q := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q.Schedule(KindAutosave, base.Add(30*time.Second), "")

	if _, ok := q.PopDue(base.Add(29 * time.Second)); ok {
		t.Fatalf("期望未到期事件不弹出")
	}
	if at, ok := q.NextAt(); !ok || !at.Equal(base.Add(30*time.Second)) {
		t.Fatalf("期望 NextAt=30s, got=%v", at)
	}
	if _, ok := q.PopDue(base.Add(30 * time.Second)); !ok {
		t.Fatalf("期望到点（含边界）弹出")
	}
	if q.Len() != 0 {
		t.Fatalf("期望队列为空")
	}
}

func TestQueue_Pending按类型计数(t *testing.T) {
	q := New()
	now := time.Now()
	q.Schedule(KindRegen, now, "n1")
	q.Schedule(KindRegen, now, "n2")
	q.Schedule(KindConstruction, now, "b1")
	if q.Pending(KindRegen) != 2 || q.Pending(KindConstruction) != 1 || q.Pending(KindAutosave) != 0 {
		t.Fatalf("期望按类型计数")
	}
}
