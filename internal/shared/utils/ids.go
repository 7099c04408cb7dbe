package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"sync/atomic"
)

// IDGen 生成实体 id，形如 "monster-<n>"。
type IDGen interface {
	Next(prefix string) string
}

// SnowflakeIDGen 用雪花 id 做后缀，进程内唯一且单调。
type SnowflakeIDGen struct {
	sf *Snowflake
}

func NewSnowflakeIDGen(sf *Snowflake) *SnowflakeIDGen {
	return &SnowflakeIDGen{sf: sf}
}

func (g *SnowflakeIDGen) Next(prefix string) string {
	return prefix + "-" + strconv.FormatInt(g.sf.NextID(), 10)
}

// SeqIDGen 顺序 id，测试里用可预测的值。
type SeqIDGen struct {
	n atomic.Uint64
}

func (g *SeqIDGen) Next(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.n.Add(1))
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandSeq 生成 n 位随机串，用作 ws 握手密钥。
func RandSeq(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(letters)))
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = letters[i%len(letters)]
			continue
		}
		b[i] = letters[v.Int64()]
	}
	return string(b)
}
