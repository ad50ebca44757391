package systems

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/ecs"
)

// markerUnset 上次生成 tick 的初始值，保证第一次生成不受节流影响
const markerUnset = -999

// SimulationState 模拟的全部跨帧状态
// 由 SimulationSystem 持有，逐步传递给调度器和镜头系统
type SimulationState struct {
	Tick       int // 单调递增，每次 Step 加 1
	ShakeTimer int // 镜头震动剩余（半速 tick）

	LastDragSpawnTick int // 指针通道上次生成的 tick
	LastKeySpawnTick  int // 生成键通道上次生成的 tick
	KeyDownStartTick  int // 生成键按下时的 tick

	// Input 输入快照，只在排空输入队列时修改
	Input components.InputSnapshot
}

// SpawnEvent 一次成对生成的结果
type SpawnEvent struct {
	Request SpawnRequest
	Plan    SpawnPlan
	Spawned int // 实际激活的对象数（0~2），素材缺失时小于 2
}

// SimulationOptions 创建 SimulationSystem 的参数
type SimulationOptions struct {
	Config       *config.SpawnerConfig
	Frames       FrameSource
	Characters   []string // 角色键列表
	ShockwaveKey string
	Viewport     components.Viewport
	// Rand 随机源，为 nil 时使用基于当前时间的随机源
	Rand *rand.Rand
}

// SimulationSystem 每帧推进一次的模拟核心
//
// Step 的顺序：
//  1. 排空输入队列（事件按上一 tick 的计数处理，与帧间回调的时序一致）
//  2. Tick 加 1
//  3. 仅在偶数 tick：按住类输入的节流检查、镜头震动、对象推进与退场、按 ZIndex 排序
type SimulationSystem struct {
	config       *config.SpawnerConfig
	characters   []string
	shockwaveKey string
	rng          *rand.Rand

	pool       *SpritePool
	queue      *InputQueue
	scheduler  *SpawnScheduler
	trajectory *TrajectoryGenerator
	camera     *CameraSystem

	viewport components.Viewport
	state    SimulationState

	// 活动对象ID列表（Step 结束时按 ZIndex 升序，即绘制顺序）
	active []ecs.EntityID
	// 复用的请求缓冲
	requests []SpawnRequest

	onSpawn func(SpawnEvent)
}

// NewSimulationSystem 创建模拟系统
func NewSimulationSystem(opts SimulationOptions) (*SimulationSystem, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("simulation config is required")
	}
	if opts.Frames == nil {
		return nil, fmt.Errorf("frame source is required")
	}
	if len(opts.Characters) == 0 {
		return nil, fmt.Errorf("at least one character key is required")
	}
	if opts.ShockwaveKey == "" {
		return nil, fmt.Errorf("shockwave key is required")
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &SimulationSystem{
		config:       opts.Config,
		characters:   append([]string(nil), opts.Characters...),
		shockwaveKey: opts.ShockwaveKey,
		rng:          rng,
		pool:         NewSpritePool(opts.Frames),
		queue:        NewInputQueue(opts.Config.InputQueueSize),
		scheduler:    NewSpawnScheduler(opts.Config, rng),
		trajectory:   NewTrajectoryGenerator(opts.Config, rng),
		camera:       NewCameraSystem(opts.Config, rng),
		state: SimulationState{
			LastDragSpawnTick: markerUnset,
			LastKeySpawnTick:  markerUnset,
			KeyDownStartTick:  markerUnset,
		},
		active:   make([]ecs.EntityID, 0, 64),
		requests: make([]SpawnRequest, 0, 4),
	}
	s.Resize(opts.Viewport)

	log.Printf("[SimulationSystem] Initialized: %d characters, viewport %.0fx%.0f",
		len(s.characters), opts.Viewport.Width, opts.Viewport.Height)
	return s, nil
}

// SetSpawnListener 设置生成回调（音效、日志等），传 nil 取消
func (s *SimulationSystem) SetSpawnListener(fn func(SpawnEvent)) {
	s.onSpawn = fn
}

// Input 返回输入队列，输入后端通过它投递事件
func (s *SimulationSystem) Input() *InputQueue {
	return s.queue
}

// Resize 更新视口尺寸
// 只影响之后生成的起点、深度计算和镜头中心，已有对象的绝对坐标不变
func (s *SimulationSystem) Resize(viewport components.Viewport) {
	s.viewport = viewport
	s.camera.Resize(viewport)
}

// Step 推进一个模拟帧
func (s *SimulationSystem) Step() {
	s.requests = s.requests[:0]
	s.queue.Drain(func(ev components.InputEvent) {
		s.requests = s.scheduler.HandleEvent(&s.state, ev, s.viewport.Width, s.requests)
	})
	s.spawnRequests()

	s.state.Tick++
	if s.state.Tick%2 != 0 {
		return
	}

	s.requests = s.scheduler.Evaluate(&s.state, s.viewport.Width, s.requests[:0])
	s.spawnRequests()

	s.camera.Update(&s.state)
	s.updateObjects()
	s.sortActive()
}

// spawnRequests 执行缓冲中的生成请求
func (s *SimulationSystem) spawnRequests() {
	for _, req := range s.requests {
		key := s.characters[s.rng.Intn(len(s.characters))]
		plan, spawned := s.spawnPair(req.T, key)
		if s.onSpawn != nil {
			s.onSpawn(SpawnEvent{Request: req, Plan: plan, Spawned: spawned})
		}
	}
	s.requests = s.requests[:0]
}

// SpawnPair 在生成线参数 t 处生成一对对象（角色 + 冲击波）
// 返回实际激活的对象数；任一对象素材缺失时静默跳过该对象
func (s *SimulationSystem) SpawnPair(t float64, characterKey string) int {
	_, spawned := s.spawnPair(t, characterKey)
	return spawned
}

func (s *SimulationSystem) spawnPair(t float64, characterKey string) (SpawnPlan, int) {
	plan := s.trajectory.ComputeSpawn(t, characterKey, s.viewport)

	spawned := 0
	if s.activate(characterKey, false, plan, plan.Character) {
		spawned++
	}
	if s.activate(s.shockwaveKey, true, plan, plan.Shockwave) {
		spawned++
	}
	return plan, spawned
}

// activate 从池中申请对象并重置全部生成字段
func (s *SimulationSystem) activate(key string, isShockwave bool, plan SpawnPlan, v Velocity) bool {
	id, obj, ok := s.pool.Acquire(key, isShockwave)
	if !ok {
		return false
	}

	obj.X, obj.Y = plan.X, plan.Y
	obj.Scale = s.config.MinScale
	obj.SpeedMultiplier = 1
	obj.VXBase, obj.VYBase = v.VX, v.VY
	obj.GotoAndStop(0)
	obj.ZIndex = zIndexFor(obj.Scale, isShockwave)

	if !s.pool.Activate(id) {
		return false
	}
	s.active = append(s.active, id)
	return true
}

// updateObjects 倒序推进所有活动对象，退场的对象当场移出活动列表
func (s *SimulationSystem) updateObjects() {
	for i := len(s.active) - 1; i >= 0; i-- {
		id := s.active[i]
		obj := s.pool.Get(id)
		if obj == nil || !obj.IsActive() {
			s.removeActive(i)
			continue
		}

		if reason := s.advance(obj); reason != components.RetireNone {
			s.pool.markFree(id, reason)
			s.removeActive(i)
		}
	}
}

// advance 推进单个对象一个半速 tick，返回退场原因
func (s *SimulationSystem) advance(obj *components.SpriteObject) components.RetireReason {
	if obj.TotalFrames <= 0 || !isFinite(obj.X) || !isFinite(obj.Y) {
		return components.RetireFault
	}

	depth := s.DepthFactor(obj.Y)
	obj.Scale = s.scaleForDepth(depth)
	obj.SpeedMultiplier = s.speedMultiplierForDepth(depth)
	obj.ZIndex = zIndexFor(obj.Scale, obj.IsShockwave)

	step := obj.SpeedMultiplier * s.config.TickDistance
	obj.X += obj.VXBase * step
	obj.Y += obj.VYBase * step

	reason := components.RetireNone
	if obj.CurrentFrame < obj.TotalFrames-1 {
		obj.GotoAndStop(obj.CurrentFrame + 1)
	} else {
		reason = components.RetireAnimationDone
	}

	if reason == components.RetireNone && s.outOfBounds(obj.X, obj.Y) {
		reason = components.RetireOutOfBounds
	}
	return reason
}

// outOfBounds 是否超出任一屏幕边缘 CullMargin 以上
func (s *SimulationSystem) outOfBounds(x, y float64) bool {
	margin := s.config.CullMargin
	return x > s.viewport.Width+margin || x < -margin ||
		y > s.viewport.Height+margin || y < -margin
}

// removeActive 保序移除活动列表中的第 i 项
func (s *SimulationSystem) removeActive(i int) {
	s.active = append(s.active[:i], s.active[i+1:]...)
}

// sortActive 按 ZIndex 稳定排序，得到绘制顺序
func (s *SimulationSystem) sortActive() {
	sort.SliceStable(s.active, func(a, b int) bool {
		return s.pool.Get(s.active[a]).ZIndex < s.pool.Get(s.active[b]).ZIndex
	})
}

// DepthFactor 由纵坐标推导的深度因子：max(0, y / 视口高度)
func (s *SimulationSystem) DepthFactor(y float64) float64 {
	if s.viewport.Height <= 0 {
		return 0
	}
	return math.Max(0, y/s.viewport.Height)
}

// ScaleAt 纵坐标 y 处的渲染缩放
func (s *SimulationSystem) ScaleAt(y float64) float64 {
	return s.scaleForDepth(s.DepthFactor(y))
}

// SpeedMultiplierAt 纵坐标 y 处的速度倍率
func (s *SimulationSystem) SpeedMultiplierAt(y float64) float64 {
	return s.speedMultiplierForDepth(s.DepthFactor(y))
}

func (s *SimulationSystem) scaleForDepth(depth float64) float64 {
	return s.config.MinScale + (s.config.MaxScale-s.config.MinScale)*depth
}

func (s *SimulationSystem) speedMultiplierForDepth(depth float64) float64 {
	return 1 + (s.config.MaxSpeedFactor-1)*depth
}

// zIndexFor 冲击波整体排在角色之后
func zIndexFor(scale float64, isShockwave bool) float64 {
	if isShockwave {
		return scale - 10
	}
	return scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// State 返回当前模拟状态的副本
func (s *SimulationSystem) State() SimulationState {
	return s.state
}

// Viewport 返回当前视口
func (s *SimulationSystem) Viewport() components.Viewport {
	return s.viewport
}

// Camera 返回当前镜头状态
func (s *SimulationSystem) Camera() components.CameraComponent {
	return s.camera.Camera()
}

// CameraTransform 将世界坐标变换为屏幕坐标
func (s *SimulationSystem) CameraTransform(x, y float64) (float64, float64) {
	return s.camera.Transform(x, y)
}

// Pool 返回对象池
func (s *SimulationSystem) Pool() *SpritePool {
	return s.pool
}

// ActiveIDs 返回活动对象ID的副本（绘制顺序）
func (s *SimulationSystem) ActiveIDs() []ecs.EntityID {
	return append([]ecs.EntityID(nil), s.active...)
}

// ActiveCount 返回活动对象数
func (s *SimulationSystem) ActiveCount() int {
	return len(s.active)
}

// EachActive 按绘制顺序遍历活动对象
func (s *SimulationSystem) EachActive(fn func(id ecs.EntityID, obj *components.SpriteObject)) {
	for _, id := range s.active {
		if obj := s.pool.Get(id); obj != nil && obj.IsActive() {
			fn(id, obj)
		}
	}
}

// CharacterIndex 返回角色键在列表中的序号，冲击波或未知键返回 -1
func (s *SimulationSystem) CharacterIndex(key string) int {
	for i, c := range s.characters {
		if c == key {
			return i
		}
	}
	return -1
}
