package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
)

// Velocity 基础速度向量（每个半速 tick，乘倍率前）
type Velocity struct {
	VX, VY float64
}

// SpawnPlan 一次成对生成的初始运动学参数
// 角色和冲击波共享起点与角度，只有 Key 和速率不同
type SpawnPlan struct {
	T            float64 // 抖动并截断后的生成线参数
	X, Y         float64 // 起点（屏幕坐标）
	AngleDeg     float64 // 发射角（度）
	CharacterKey string
	Character    Velocity
	Shockwave    Velocity
}

// TrajectoryGenerator 根据生成线参数 t 计算成对对象的起点和速度
type TrajectoryGenerator struct {
	config *config.SpawnerConfig
	rng    *rand.Rand
}

// NewTrajectoryGenerator 创建轨迹生成器
func NewTrajectoryGenerator(cfg *config.SpawnerConfig, rng *rand.Rand) *TrajectoryGenerator {
	return &TrajectoryGenerator{
		config: cfg,
		rng:    rng,
	}
}

// ComputeSpawn 计算一次生成的起点和速度
//
// t 为生成线上的归一化位置（指针x/屏幕宽度，或均匀随机数）。
// 先施加 (r-0.5)×JitterRange×SpawnRandomness 的抖动并截断到 [0,1]，
// 再沿生成线线性插值得到起点；发射角 = 基础角 + (t-0.5)×扩散强度。
func (g *TrajectoryGenerator) ComputeSpawn(t float64, characterKey string, viewport components.Viewport) SpawnPlan {
	cfg := g.config

	if cfg.SpawnRandomness != 0 {
		t += (g.rng.Float64() - 0.5) * cfg.JitterRange * cfg.SpawnRandomness
	}
	t = clamp01(t)

	startX := viewport.Width * cfg.SpawnLineStart.X
	startY := viewport.Height * cfg.SpawnLineStart.Y
	endX := viewport.Width * cfg.SpawnLineEnd.X
	endY := viewport.Height * cfg.SpawnLineEnd.Y

	angleDeg := cfg.MoveAngleDeg + (t-0.5)*cfg.SpreadStrength
	radians := angleDeg * math.Pi / 180
	cos, sin := math.Cos(radians), math.Sin(radians)

	shockwaveSpeed := cfg.BaseSpeed * cfg.ShockwaveSpeedMult

	return SpawnPlan{
		T:            t,
		X:            startX + t*(endX-startX),
		Y:            startY + t*(endY-startY),
		AngleDeg:     angleDeg,
		CharacterKey: characterKey,
		Character:    Velocity{VX: cos * cfg.BaseSpeed, VY: sin * cfg.BaseSpeed},
		Shockwave:    Velocity{VX: cos * shockwaveSpeed, VY: sin * shockwaveSpeed},
	}
}

// clamp01 截断到 [0,1]，NaN 视为 0
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
