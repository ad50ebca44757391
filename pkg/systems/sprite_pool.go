package systems

import (
	"log"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/ecs"
)

// FrameSource 素材后端的最小契约
// 返回指定键的动画帧数，键不存在或没有可渲染内容时返回 0
type FrameSource interface {
	FrameCount(key string) int
}

// SpritePool 可复用渲染对象池
//
// 对象按 Key 分区：为 Key 创建的对象永远不会被其它 Key 复用。
// 池只增长不收缩，对象在进程生命周期内不会被销毁。
//
// 没有显式的 Release：对象由 SimulationSystem 在退场时切换为空闲，
// 池只根据对象的 State 和空闲列表判断是否可复用。
type SpritePool struct {
	frames FrameSource
	arena  *ecs.Arena[components.SpriteObject]

	// 每个 Key 的空闲对象ID列表
	free map[string][]ecs.EntityID
	// 每个 Key 创建过的对象数
	counts map[string]int
	// 已记录过缺失日志的 Key，避免每次生成都刷屏
	missingLogged map[string]bool
}

// NewSpritePool 创建对象池
func NewSpritePool(frames FrameSource) *SpritePool {
	return &SpritePool{
		frames:        frames,
		arena:         ecs.NewArena[components.SpriteObject](),
		free:          make(map[string][]ecs.EntityID),
		counts:        make(map[string]int),
		missingLogged: make(map[string]bool),
	}
}

// Acquire 申请一个指定 Key 的对象
//
// 优先复用同 Key 的空闲对象；没有空闲对象时向素材后端查询帧数并新建。
// 素材缺失（帧数为 0）属于软失败：返回 ok=false，调用方应静默跳过本次生成。
//
// 返回的对象仍处于空闲状态，调用方负责重置生成字段并调用 Activate。
func (p *SpritePool) Acquire(key string, isShockwave bool) (ecs.EntityID, *components.SpriteObject, bool) {
	if ids := p.free[key]; len(ids) > 0 {
		id := ids[len(ids)-1]
		return id, p.arena.Get(id), true
	}

	totalFrames := p.frames.FrameCount(key)
	if totalFrames <= 0 {
		if !p.missingLogged[key] {
			log.Printf("[SpritePool] Warning: no animation frames for %q, skipping spawns", key)
			p.missingLogged[key] = true
		}
		return ecs.InvalidEntity, nil, false
	}

	id := p.arena.CreateEntity(components.SpriteObject{
		Key:         key,
		IsShockwave: isShockwave,
		TotalFrames: totalFrames,
		State:       components.StateFree,
	})
	p.free[key] = append(p.free[key], id)
	p.counts[key]++
	return id, p.arena.Get(id), true
}

// Activate 将申请到的对象标记为活动并移出空闲列表
// 对已经活动的对象返回 false
func (p *SpritePool) Activate(id ecs.EntityID) bool {
	obj := p.arena.Get(id)
	if obj == nil || obj.State != components.StateFree {
		return false
	}

	ids := p.free[obj.Key]
	for i := len(ids) - 1; i >= 0; i-- {
		if ids[i] == id {
			p.free[obj.Key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	obj.State = components.StateActive
	return true
}

// markFree 对象退场后重新进入空闲列表
// 重复调用是安全的：已经空闲的对象不会被再次加入
func (p *SpritePool) markFree(id ecs.EntityID, reason components.RetireReason) {
	obj := p.arena.Get(id)
	if obj == nil || obj.State == components.StateFree {
		return
	}

	obj.State = components.StateFree
	obj.LastRetire = reason
	p.free[obj.Key] = append(p.free[obj.Key], id)
}

// Get 根据ID获取对象
func (p *SpritePool) Get(id ecs.EntityID) *components.SpriteObject {
	return p.arena.Get(id)
}

// Len 返回池中对象总数
func (p *SpritePool) Len() int {
	return p.arena.Len()
}

// Count 返回为指定 Key 创建过的对象数
func (p *SpritePool) Count(key string) int {
	return p.counts[key]
}

// FreeCount 返回指定 Key 当前的空闲对象数
func (p *SpritePool) FreeCount(key string) int {
	return len(p.free[key])
}

// ActiveCount 返回当前处于活动状态的对象数
func (p *SpritePool) ActiveCount() int {
	active := 0
	p.arena.Each(func(_ ecs.EntityID, obj *components.SpriteObject) bool {
		if obj.IsActive() {
			active++
		}
		return true
	})
	return active
}
