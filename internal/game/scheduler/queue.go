// Package scheduler 是引擎的定时队列：按触发时间排序，同一时刻按入队顺序。
package scheduler

import (
	"time"

	"github.com/emirpasic/gods/queues/priorityqueue"
)

type Kind string

const (
	KindConstruction  Kind = "construction"
	KindRegen         Kind = "regen"
	KindCounterAttack Kind = "counter_attack"
	KindAutosave      Kind = "autosave"
)

// Event 只描述“何时对谁做什么”，执行逻辑在引擎里。
type Event struct {
	Kind   Kind
	FireAt time.Time
	// Target 是建筑 / 资源点 / 怪物 id，autosave 为空。
	Target string

	seq uint64
}

type Queue struct {
	pq  *priorityqueue.Queue
	seq uint64
}

func New() *Queue {
	return &Queue{pq: priorityqueue.NewWith(byFireAt)}
}

func byFireAt(a, b interface{}) int {
	ea, eb := a.(Event), b.(Event)
	switch {
	case ea.FireAt.Before(eb.FireAt):
		return -1
	case ea.FireAt.After(eb.FireAt):
		return 1
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	}
	return 0
}

func (q *Queue) Schedule(kind Kind, at time.Time, target string) Event {
	q.seq++
	ev := Event{Kind: kind, FireAt: at, Target: target, seq: q.seq}
	q.pq.Enqueue(ev)
	return ev
}

// PopDue 弹出一个 FireAt <= now 的事件。
func (q *Queue) PopDue(now time.Time) (Event, bool) {
	v, ok := q.pq.Peek()
	if !ok {
		return Event{}, false
	}
	ev := v.(Event)
	if ev.FireAt.After(now) {
		return Event{}, false
	}
	q.pq.Dequeue()
	return ev, true
}

// NextAt 最早的触发时间。
func (q *Queue) NextAt() (time.Time, bool) {
	v, ok := q.pq.Peek()
	if !ok {
		return time.Time{}, false
	}
	return v.(Event).FireAt, true
}

func (q *Queue) Len() int {
	return q.pq.Size()
}

// Pending 统计某类事件的数量。
func (q *Queue) Pending(kind Kind) int {
	n := 0
	for _, v := range q.pq.Values() {
		if v.(Event).Kind == kind {
			n++
		}
	}
	return n
}

func (q *Queue) Clear() {
	q.pq.Clear()
}
