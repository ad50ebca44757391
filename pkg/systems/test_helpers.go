package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
)

// fakeFrames 测试用的素材后端：键 -> 帧数
type fakeFrames map[string]int

func (f fakeFrames) FrameCount(key string) int {
	return f[key]
}

var testCharacters = []string{"char_01", "char_02", "char_03"}

const testShockwaveKey = "shockwave"

// testViewport 1920x1080，与默认桌面分辨率一致
var testViewport = components.Viewport{Width: 1920, Height: 1080}

// defaultTestFrames 每个键都有足够长的动画，保证对象不会因动画结束而退场
func defaultTestFrames() fakeFrames {
	frames := fakeFrames{testShockwaveKey: 1000}
	for _, key := range testCharacters {
		frames[key] = 1000
	}
	return frames
}

// newTestSimulation 创建使用固定随机种子的模拟系统
// mutate 可为 nil，用于在创建前修改配置
func newTestSimulation(t testing.TB, frames FrameSource, mutate func(*config.SpawnerConfig)) *SimulationSystem {
	t.Helper()

	cfg := config.DefaultSpawnerConfig()
	if mutate != nil {
		mutate(cfg)
	}
	if frames == nil {
		frames = defaultTestFrames()
	}

	sim, err := NewSimulationSystem(SimulationOptions{
		Config:       cfg,
		Frames:       frames,
		Characters:   testCharacters,
		ShockwaveKey: testShockwaveKey,
		Viewport:     testViewport,
		Rand:         rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("NewSimulationSystem failed: %v", err)
	}
	return sim
}

// spawnRecorder 按通道统计生成回调
type spawnRecorder struct {
	events []SpawnEvent
}

func (r *spawnRecorder) record(ev SpawnEvent) {
	r.events = append(r.events, ev)
}

func (r *spawnRecorder) count(channel SpawnChannel) int {
	n := 0
	for _, ev := range r.events {
		if ev.Request.Channel == channel {
			n++
		}
	}
	return n
}

// stepN 连续推进 n 个 tick
func stepN(sim *SimulationSystem, n int) {
	for i := 0; i < n; i++ {
		sim.Step()
	}
}

// push 投递事件，队列满时让测试失败
func push(t testing.TB, sim *SimulationSystem, ev components.InputEvent) {
	t.Helper()
	if !sim.Input().Push(ev) {
		t.Fatalf("input queue full while pushing %s", ev.Kind)
	}
}
