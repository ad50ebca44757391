package systems

import (
	"math/rand"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
)

// SpawnChannel 触发生成的输入通道
type SpawnChannel uint8

const (
	SpawnPointer SpawnChannel = iota // 点击/触摸按下，立即生成
	SpawnDrag                        // 按住拖拽，按间隔连续生成
	SpawnKey                         // 生成键按下沿
	SpawnKeyHold                     // 生成键长按，延迟后连续生成
)

// String 返回通道名称
func (c SpawnChannel) String() string {
	switch c {
	case SpawnPointer:
		return "pointer"
	case SpawnDrag:
		return "drag"
	case SpawnKey:
		return "key"
	case SpawnKeyHold:
		return "key_hold"
	default:
		return "unknown"
	}
}

// SpawnRequest 调度器输出的生成请求
type SpawnRequest struct {
	Channel SpawnChannel
	T       float64 // 生成线参数（抖动前）
}

// SpawnScheduler 将输入事件转换为生成请求
//
// 三个输入通道各自独立节流：
//   - 指针按下：立即生成，无冷却
//   - 指针按住：每 DragSpawnRate 个 tick 最多生成一次，只在偶数 tick 检查
//   - 生成键：按下沿立即生成（忽略系统重复），按住 KeyHoldInitialDelay 个 tick 后
//     以 DragSpawnRate 的间隔在随机位置连续生成
//
// 每次生成都会把镜头震动计时器重置为最大值，并更新对应通道的上次生成 tick。
type SpawnScheduler struct {
	config *config.SpawnerConfig
	rng    *rand.Rand
}

// NewSpawnScheduler 创建生成调度器
func NewSpawnScheduler(cfg *config.SpawnerConfig, rng *rand.Rand) *SpawnScheduler {
	return &SpawnScheduler{
		config: cfg,
		rng:    rng,
	}
}

// HandleEvent 处理一个输入事件，产生的生成请求追加到 out
func (s *SpawnScheduler) HandleEvent(state *SimulationState, ev components.InputEvent, viewportWidth float64, out []SpawnRequest) []SpawnRequest {
	in := &state.Input

	switch ev.Kind {
	case components.PointerDown:
		in.PointerDown = true
		in.PointerX, in.PointerY = ev.X, ev.Y
		in.HasInteracted = true
		out = append(out, s.pointerSpawn(state, viewportWidth, SpawnPointer))

	case components.PointerMove:
		in.PointerX, in.PointerY = ev.X, ev.Y

	case components.PointerUp:
		in.PointerDown = false

	case components.KeyDown:
		// 只响应松开→按下的边沿
		if ev.Repeat || in.KeyDown {
			return out
		}
		in.KeyDown = true
		in.HasInteracted = true
		state.KeyDownStartTick = state.Tick
		out = append(out, s.randomSpawn(state, SpawnKey))

	case components.KeyUp:
		in.KeyDown = false
	}

	return out
}

// Evaluate 检查按住类输入的节流条件
// 只在偶数 tick 生效，与模拟的半速更新保持一致
func (s *SpawnScheduler) Evaluate(state *SimulationState, viewportWidth float64, out []SpawnRequest) []SpawnRequest {
	if state.Tick%2 != 0 {
		return out
	}

	in := &state.Input
	rate := s.config.DragSpawnRate

	if in.PointerDown && state.Tick-state.LastDragSpawnTick >= rate {
		out = append(out, s.pointerSpawn(state, viewportWidth, SpawnDrag))
	}

	if in.KeyDown &&
		state.Tick-state.KeyDownStartTick >= s.config.KeyHoldInitialDelay &&
		state.Tick-state.LastKeySpawnTick >= rate {
		out = append(out, s.randomSpawn(state, SpawnKeyHold))
	}

	return out
}

// pointerSpawn 在指针的水平位置生成
func (s *SpawnScheduler) pointerSpawn(state *SimulationState, viewportWidth float64, channel SpawnChannel) SpawnRequest {
	t := 0.0
	if viewportWidth > 0 {
		t = state.Input.PointerX / viewportWidth
	}
	state.ShakeTimer = s.config.ShakeDuration
	state.LastDragSpawnTick = state.Tick
	return SpawnRequest{Channel: channel, T: t}
}

// randomSpawn 在随机水平位置生成
func (s *SpawnScheduler) randomSpawn(state *SimulationState, channel SpawnChannel) SpawnRequest {
	state.ShakeTimer = s.config.ShakeDuration
	state.LastKeySpawnTick = state.Tick
	return SpawnRequest{Channel: channel, T: s.rng.Float64()}
}
