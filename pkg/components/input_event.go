package components

// InputEventKind 输入事件类型
type InputEventKind uint8

const (
	PointerDown InputEventKind = iota
	PointerMove
	PointerUp
	KeyDown
	KeyUp
)

// String 返回事件类型名称
func (k InputEventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer_down"
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	default:
		return "unknown"
	}
}

// InputEvent 由输入后端投递的离散事件
// 键盘事件只针对生成键（数字键 1），其它按键不会进入队列
type InputEvent struct {
	Kind   InputEventKind
	X, Y   float64 // 指针位置（屏幕坐标），键盘事件忽略
	Repeat bool    // 系统按键重复产生的 KeyDown
}

// InputSnapshot 模拟在每个 tick 观察到的输入状态
// 只由输入队列的排空过程修改
type InputSnapshot struct {
	PointerDown bool
	PointerX    float64
	PointerY    float64
	KeyDown     bool

	// HasInteracted 是否发生过任何一次按下（用于淡出操作提示）
	HasInteracted bool
}
