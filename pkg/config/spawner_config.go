package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// 窗口默认尺寸（逻辑尺寸跟随窗口，缩放由视口负责）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// SpawnerConfigPath 默认配置文件路径（嵌入在 data/ 中）
const SpawnerConfigPath = "data/spawner.yaml"

// Point 屏幕比例坐标（0~1 为可见区域）
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnerConfig 生成器与模拟参数
// 全部是启动时常量，运行期间不可修改
type SpawnerConfig struct {
	// 轨迹
	MoveAngleDeg       float64 `yaml:"moveAngleDeg"`       // 基础发射角（度）
	SpreadStrength     float64 `yaml:"spreadStrength"`     // 扩散强度，乘以 (t - 0.5)
	BaseSpeed          float64 `yaml:"baseSpeed"`          // 角色基础速度
	MaxSpeedFactor     float64 `yaml:"maxSpeedFactor"`     // 深度因子为 1 时的速度倍率
	SpawnRandomness    float64 `yaml:"spawnRandomness"`    // 生成位置随机性系数，0 关闭抖动
	JitterRange        float64 `yaml:"jitterRange"`        // 随机性为 1 时的抖动幅度（单位区间的比例）
	ShockwaveSpeedMult float64 `yaml:"shockwaveSpeedMult"` // 冲击波速度 = 角色速度 × 此值

	// 镜头震动
	ShakeDuration  int     `yaml:"shakeDuration"`  // 持续时间（半速 tick）
	ShakeMaxX      float64 `yaml:"shakeMaxX"`      // 最大水平偏移
	ShakeMaxY      float64 `yaml:"shakeMaxY"`      // 最大垂直偏移
	ShakeMaxRotDeg float64 `yaml:"shakeMaxRotDeg"` // 最大旋转（度）

	// 深度缩放
	MinScale float64 `yaml:"minScale"`
	MaxScale float64 `yaml:"maxScale"`

	// 输入节流（tick）
	DragSpawnRate       int `yaml:"dragSpawnRate"`       // 拖拽/长按连续生成间隔
	KeyHoldInitialDelay int `yaml:"keyHoldInitialDelay"` // 长按多久后开始连续生成

	// 生成线（屏幕比例坐标）
	SpawnLineStart Point `yaml:"spawnLineStart"`
	SpawnLineEnd   Point `yaml:"spawnLineEnd"`

	// 每个半速 tick 的移动距离系数
	TickDistance float64 `yaml:"tickDistance"`
	// CullMargin 超出屏幕边缘多远后退场
	CullMargin float64 `yaml:"cullMargin"`

	// 表现
	ShowInstructions bool `yaml:"showInstructions"` // 是否显示操作提示
	MaxTPS           int  `yaml:"maxTPS"`           // 逻辑帧率上限
	InputQueueSize   int  `yaml:"inputQueueSize"`   // 输入事件队列容量
}

// DefaultSpawnerConfig 返回默认配置
func DefaultSpawnerConfig() *SpawnerConfig {
	return &SpawnerConfig{
		MoveAngleDeg:        50,
		SpreadStrength:      -40,
		BaseSpeed:           4,
		MaxSpeedFactor:      3.0,
		SpawnRandomness:     1.0,
		JitterRange:         1.0 / 9.0,
		ShockwaveSpeedMult:  0.3,
		ShakeDuration:       8,
		ShakeMaxX:           2,
		ShakeMaxY:           10,
		ShakeMaxRotDeg:      0.5,
		MinScale:            0.5,
		MaxScale:            2.0,
		DragSpawnRate:       4,  // 数值越小越快
		KeyHoldInitialDelay: 15, // 60fps 下约 250ms
		SpawnLineStart:      Point{X: 0.05, Y: 0.2},
		SpawnLineEnd:        Point{X: 0.7, Y: 0.0},
		TickDistance:        2,
		CullMargin:          800,
		ShowInstructions:    false,
		MaxTPS:              60,
		InputQueueSize:      64,
	}
}

// LoadSpawnerConfig 从 YAML 文件加载配置
// 文件中未出现的字段保留默认值
func LoadSpawnerConfig(filePath string) (*SpawnerConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawner config file: %w", err)
	}

	return ParseSpawnerConfig(data)
}

// ParseSpawnerConfig 解析 YAML 数据，未出现的字段保留默认值
func ParseSpawnerConfig(data []byte) (*SpawnerConfig, error) {
	config := DefaultSpawnerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse spawner config YAML: %w", err)
	}

	if err := validateSpawnerConfig(config); err != nil {
		return nil, fmt.Errorf("invalid spawner config: %w", err)
	}

	return config, nil
}

// validateSpawnerConfig 验证配置的有效性
func validateSpawnerConfig(config *SpawnerConfig) error {
	// NaN 与任何比较都为 false，必须在范围检查之前排除
	finite := []struct {
		name  string
		value float64
	}{
		{"moveAngleDeg", config.MoveAngleDeg},
		{"spreadStrength", config.SpreadStrength},
		{"baseSpeed", config.BaseSpeed},
		{"maxSpeedFactor", config.MaxSpeedFactor},
		{"spawnRandomness", config.SpawnRandomness},
		{"jitterRange", config.JitterRange},
		{"shockwaveSpeedMult", config.ShockwaveSpeedMult},
		{"shakeMaxX", config.ShakeMaxX},
		{"shakeMaxY", config.ShakeMaxY},
		{"shakeMaxRotDeg", config.ShakeMaxRotDeg},
		{"minScale", config.MinScale},
		{"maxScale", config.MaxScale},
		{"spawnLineStart.x", config.SpawnLineStart.X},
		{"spawnLineStart.y", config.SpawnLineStart.Y},
		{"spawnLineEnd.x", config.SpawnLineEnd.X},
		{"spawnLineEnd.y", config.SpawnLineEnd.Y},
		{"tickDistance", config.TickDistance},
		{"cullMargin", config.CullMargin},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be finite, got %g", f.name, f.value)
		}
	}

	if config.BaseSpeed < 0 {
		return fmt.Errorf("baseSpeed must be >= 0, got %g", config.BaseSpeed)
	}
	// 深度倍率必须单调不减
	if config.MaxSpeedFactor < 1 {
		return fmt.Errorf("maxSpeedFactor must be >= 1, got %g", config.MaxSpeedFactor)
	}
	if config.SpawnRandomness < 0 {
		return fmt.Errorf("spawnRandomness must be >= 0, got %g", config.SpawnRandomness)
	}
	if config.JitterRange < 0 || config.JitterRange > 1 {
		return fmt.Errorf("jitterRange must be between 0 and 1, got %g", config.JitterRange)
	}
	if config.ShockwaveSpeedMult <= 0 {
		return fmt.Errorf("shockwaveSpeedMult must be > 0, got %g", config.ShockwaveSpeedMult)
	}

	if config.ShakeDuration < 0 {
		return fmt.Errorf("shakeDuration must be >= 0, got %d", config.ShakeDuration)
	}
	if config.ShakeMaxX < 0 || config.ShakeMaxY < 0 || config.ShakeMaxRotDeg < 0 {
		return fmt.Errorf("shake magnitudes must be >= 0")
	}

	if config.MinScale <= 0 {
		return fmt.Errorf("minScale must be > 0, got %g", config.MinScale)
	}
	if config.MaxScale < config.MinScale {
		return fmt.Errorf("maxScale (%g) must be >= minScale (%g)", config.MaxScale, config.MinScale)
	}

	if config.DragSpawnRate < 1 {
		return fmt.Errorf("dragSpawnRate must be >= 1, got %d", config.DragSpawnRate)
	}
	if config.KeyHoldInitialDelay < 0 {
		return fmt.Errorf("keyHoldInitialDelay must be >= 0, got %d", config.KeyHoldInitialDelay)
	}

	if config.TickDistance <= 0 {
		return fmt.Errorf("tickDistance must be > 0, got %g", config.TickDistance)
	}
	if config.CullMargin < 0 {
		return fmt.Errorf("cullMargin must be >= 0, got %g", config.CullMargin)
	}

	if config.MaxTPS <= 0 {
		return fmt.Errorf("maxTPS must be > 0, got %d", config.MaxTPS)
	}
	if config.InputQueueSize < 1 {
		return fmt.Errorf("inputQueueSize must be >= 1, got %d", config.InputQueueSize)
	}

	return nil
}
