package systems

import (
	"sync"
	"sync/atomic"

	"github.com/decker502/pomburst/pkg/components"
)

// InputQueue 有界输入事件队列
//
// 输入后端（可能在其它 goroutine 中）调用 Push 投递事件，
// SimulationSystem 在每个 tick 的固定位置调用 Drain 一次性取出，
// 因此模拟在每个 tick 只看到一个一致的输入快照。
//
// 容量只限制指针移动和系统重复按键：
//   - 按下/松开类事件改变输入状态，总是入队，永不丢弃
//   - 连续的指针移动合并为最后一个位置，不额外占用容量
//   - 队列已满时，新的移动和重复按键被丢弃并计数
type InputQueue struct {
	mu       sync.Mutex
	events   []components.InputEvent
	spare    []components.InputEvent // Drain 交替使用的缓冲
	capacity int

	dropped   atomic.Uint64
	coalesced atomic.Uint64
}

// NewInputQueue 创建指定容量的队列
func NewInputQueue(size int) *InputQueue {
	if size < 1 {
		size = 1
	}
	return &InputQueue{
		events:   make([]components.InputEvent, 0, size),
		spare:    make([]components.InputEvent, 0, size),
		capacity: size,
	}
}

// isTransition 事件是否改变按下/松开状态
func isTransition(ev components.InputEvent) bool {
	switch ev.Kind {
	case components.PointerMove:
		return false
	case components.KeyDown:
		return !ev.Repeat
	default:
		return true
	}
}

// Push 投递一个事件，不会阻塞
// 只有队列已满时的移动和重复按键会被丢弃，此时返回 false
func (q *InputQueue) Push(ev components.InputEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ev.Kind == components.PointerMove {
		if n := len(q.events); n > 0 && q.events[n-1].Kind == components.PointerMove {
			q.events[n-1] = ev
			q.coalesced.Add(1)
			return true
		}
	}

	if !isTransition(ev) && len(q.events) >= q.capacity {
		q.dropped.Add(1)
		return false
	}

	q.events = append(q.events, ev)
	return true
}

// Drain 取出调用时队列中已有的全部事件
// 排空过程中新到达的事件留到下一个 tick
func (q *InputQueue) Drain(fn func(components.InputEvent)) int {
	q.mu.Lock()
	batch := q.events
	q.events = q.spare[:0]
	q.mu.Unlock()

	for _, ev := range batch {
		fn(ev)
	}

	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}

// Len 返回队列中待处理的事件数
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped 返回因队列已满而丢弃的事件总数（只包括移动和重复按键）
func (q *InputQueue) Dropped() uint64 {
	return q.dropped.Load()
}

// Coalesced 返回被后续移动覆盖的指针移动数
func (q *InputQueue) Coalesced() uint64 {
	return q.coalesced.Load()
}
