package components

// CameraComponent 作用于所有活动对象的全局变换
// 渲染时的变换顺序：平移(-Pivot) → 旋转(Rotation) → 平移(X, Y)
type CameraComponent struct {
	// PivotX, PivotY 旋转中心（视口中心）
	PivotX float64
	PivotY float64

	// X, Y 当前位置，静止时等于 Pivot，震动时在其附近随机偏移
	X float64
	Y float64

	// Rotation 旋转角（弧度）
	Rotation float64
}

// Viewport 当前视口尺寸
type Viewport struct {
	Width  float64
	Height float64
}
