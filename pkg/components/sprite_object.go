package components

// ObjectState 池中对象的显式状态
type ObjectState uint8

const (
	// StateFree 空闲，可被同 Key 的下一次申请复用
	StateFree ObjectState = iota
	// StateActive 正在被模拟（位于活动列表中）
	StateActive
)

// String 返回状态名称（用于日志和调试覆盖层）
func (s ObjectState) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// RetireReason 对象最近一次退场的原因
// 对外表现完全相同（变为空闲、移出活动列表），仅用于测试和调试区分
type RetireReason uint8

const (
	RetireNone          RetireReason = iota // 尚未退场过
	RetireAnimationDone                     // 动画播放完毕
	RetireOutOfBounds                       // 离开屏幕超过裁剪边距
	RetireFault                             // 对象状态异常（非有限坐标、无帧）
)

// String 返回退场原因名称
func (r RetireReason) String() string {
	switch r {
	case RetireNone:
		return "none"
	case RetireAnimationDone:
		return "animation_done"
	case RetireOutOfBounds:
		return "out_of_bounds"
	case RetireFault:
		return "fault"
	default:
		return "unknown"
	}
}

// SpriteObject 可复用的渲染对象
//
// Key 与 IsShockwave 在创建后不再改变，池按 Key 分区。
// 速度方向在生成时确定，之后每帧只乘以由纵坐标推导出的速度倍率。
type SpriteObject struct {
	Key         string // 纹理/动画键（角色键或冲击波键）
	IsShockwave bool   // 冲击波变体（绘制在角色后方，混合模式不同）

	// 运动学（屏幕坐标）
	X, Y            float64
	VXBase, VYBase  float64 // 生成时确定的基础速度
	Scale           float64 // 由深度推导的缩放
	SpeedMultiplier float64 // 最近一次计算的速度倍率

	// 动画状态：没有自动播放，每个半速 tick 由模拟推进一帧
	CurrentFrame int
	TotalFrames  int

	// 池状态
	State      ObjectState
	LastRetire RetireReason

	// ZIndex 绘制顺序键，只影响绘制，不影响模拟
	ZIndex float64
}

// IsActive 是否处于活动状态
func (o *SpriteObject) IsActive() bool {
	return o.State == StateActive
}

// GotoAndStop 跳转到指定帧
func (o *SpriteObject) GotoAndStop(frame int) {
	o.CurrentFrame = frame
}
