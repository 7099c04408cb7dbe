package utils

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// 雪花 id 布局：41 位毫秒时间 | 10 位节点 | 12 位序号。
// realm 和 backend 各自配置节点号，存档 id、用户 id 都从这里取。
const (
	realmEpoch = 1767225600000 // 2026-01-01 UTC

	nodeBits = 10
	seqBits  = 12

	maxNodeID = 1<<nodeBits - 1
	seqMask   = 1<<seqBits - 1
)

// NodeIDEnv 节点号环境变量，默认 1。
const NodeIDEnv = "PR_NODE_ID"

type Snowflake struct {
	mu   sync.Mutex
	node int64
	last int64
	seq  int64
	now  func() int64
}

func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > maxNodeID {
		return nil, fmt.Errorf("snowflake node %d not in [0,%d]", node, maxNodeID)
	}
	return &Snowflake{node: node, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

// NextID 单调递增；时钟回拨时沿用上一次的毫秒。
func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := max(s.now(), s.last)
	if ms == s.last {
		s.seq = (s.seq + 1) & seqMask
		if s.seq == 0 {
			// 本毫秒序号用完
			for ms <= s.last {
				ms = s.now()
			}
		}
	} else {
		s.seq = 0
	}
	s.last = ms
	return (ms-realmEpoch)<<(nodeBits+seqBits) | s.node<<seqBits | s.seq
}

var defaultNode = sync.OnceValues(func() (*Snowflake, error) {
	node := int64(1)
	if raw := os.Getenv(NodeIDEnv); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", NodeIDEnv, err)
		}
		node = v
	}
	return NewSnowflake(node)
})

// DefaultSnowflake 进程级生成器，节点号读 PR_NODE_ID。
func DefaultSnowflake() (*Snowflake, error) {
	return defaultNode()
}

func NextSnowflakeID() (int64, error) {
	sf, err := defaultNode()
	if err != nil {
		return 0, err
	}
	return sf.NextID(), nil
}
