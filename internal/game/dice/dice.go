// Package dice 是引擎唯一的随机来源，测试里替换成固定序列。
package dice

import (
	"math/rand/v2"
	"sync"
)

// Roller: Float64 返回 [0,1)。
type Roller interface {
	Float64() float64
}

// Intn 返回 [0,n)，n<=0 返回 0。
func Intn(r Roller, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Pick 从列表中均匀取一个。
func Pick[T any](r Roller, list []T) T {
	return list[Intn(r, len(list))]
}

// Between 返回 [lo,hi)。
func Between(r Roller, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRand(seed uint64) Roller {
	return &randRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *randRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Sequence 依次返回给定值，用完后循环。
type Sequence struct {
	vals []float64
	i    int
}

func NewSequence(vals ...float64) *Sequence {
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return &Sequence{vals: vals}
}

func (s *Sequence) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// Fixed 始终返回同一个值。
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }
