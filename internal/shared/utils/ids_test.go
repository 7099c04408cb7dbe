package utils

import (
	"strings"
	"testing"
)

func TestSnowflakeIDGen_前缀与唯一(t *testing.T) {
	sf, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("期望 node id 合法, err=%v", err)
	}
	g := NewSnowflakeIDGen(sf)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.Next("monster")
		if !strings.HasPrefix(id, "monster-") {
			t.Fatalf("期望带前缀, got=%s", id)
		}
		if seen[id] {
			t.Fatalf("期望 id 不重复, dup=%s", id)
		}
		seen[id] = true
	}
}

func TestSeqIDGen_顺序递增(t *testing.T) {
	var g SeqIDGen
	if a, b := g.Next("item"), g.Next("item"); a != "item-1" || b != "item-2" {
		t.Fatalf("期望 item-1,item-2, got=%s,%s", a, b)
	}
}

func TestRandSeq_长度(t *testing.T) {
	if got := RandSeq(16); len(got) != 16 {
		t.Fatalf("期望 16 位, got=%d", len(got))
	}
}

func TestNewSnowflake_越界(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望 node id 越界报错")
	}
}

func TestSnowflake_同一毫秒序号递增(t *testing.T) {
	sf, _ := NewSnowflake(1)
	sf.now = func() int64 { return realmEpoch + 10 }
	a, b := sf.NextID(), sf.NextID()
	if b != a+1 {
		t.Fatalf("期望同一毫秒内序号加一, a=%d b=%d", a, b)
	}
	sf.now = func() int64 { return realmEpoch + 5 }
	if c := sf.NextID(); c <= b {
		t.Fatalf("期望时钟回拨后仍然递增, b=%d c=%d", b, c)
	}
}
