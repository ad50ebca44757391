// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pomburst/pkg/components"
)

// SpawnKeys 触发生成的按键（主键盘 1 和小键盘 1）
var SpawnKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyNumpad1}

// RawInput 一帧的原始输入快照
// 由 ReadRawInput 从 Ebitengine 读取，InputTracker 将其转换为输入事件
type RawInput struct {
	// 鼠标
	MousePressed bool
	CursorX      int
	CursorY      int

	// 触摸：只跟踪第一个按下的触摸点
	Touches []TouchPoint

	// 生成键是否按下（任一生成键）
	SpawnKeyPressed bool

	// 窗口是否拥有焦点，失去焦点视为指针和按键释放
	Focused bool
}

// TouchPoint 单个触摸点
type TouchPoint struct {
	ID   ebiten.TouchID
	X, Y int
}

// ReadRawInput 读取当前帧的原始输入
func ReadRawInput() RawInput {
	raw := RawInput{
		MousePressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Focused:      ebiten.IsFocused(),
	}
	raw.CursorX, raw.CursorY = ebiten.CursorPosition()

	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		raw.Touches = append(raw.Touches, TouchPoint{ID: id, X: x, Y: y})
	}

	for _, key := range SpawnKeys {
		if ebiten.IsKeyPressed(key) {
			raw.SpawnKeyPressed = true
			break
		}
	}
	return raw
}

// InputTracker 把逐帧的原始输入转换为按下/移动/抬起事件
//
// 指针来源：触摸优先；没有触摸时使用鼠标左键。
// 一次按下期间只跟踪一个来源，抬起后才会切换。
// 窗口失去焦点时（相当于在窗口外抬起）补发抬起事件。
type InputTracker struct {
	pointerDown bool
	touching    bool
	touchID     ebiten.TouchID

	lastX, lastY int
	hasPosition  bool

	keyDown bool
}

// NewInputTracker 创建输入跟踪器
func NewInputTracker() *InputTracker {
	return &InputTracker{}
}

// Update 比较本帧与上一帧的输入，追加产生的事件并返回
func (t *InputTracker) Update(raw RawInput, events []components.InputEvent) []components.InputEvent {
	events = t.updatePointer(raw, events)
	return t.updateKey(raw, events)
}

func (t *InputTracker) updatePointer(raw RawInput, events []components.InputEvent) []components.InputEvent {
	// 正在跟踪触摸
	if t.touching {
		for _, tp := range raw.Touches {
			if tp.ID == t.touchID {
				if !raw.Focused {
					break
				}
				return t.move(tp.X, tp.Y, events)
			}
		}
		// 触摸点消失：在最后位置抬起
		t.touching = false
		t.pointerDown = false
		return append(events, t.event(components.PointerUp, t.lastX, t.lastY))
	}

	if !t.pointerDown && raw.Focused && len(raw.Touches) > 0 {
		tp := raw.Touches[0]
		t.touching = true
		t.touchID = tp.ID
		t.pointerDown = true
		t.setPosition(tp.X, tp.Y)
		return append(events, t.event(components.PointerDown, tp.X, tp.Y))
	}

	// 鼠标
	mouseDown := raw.MousePressed && raw.Focused
	switch {
	case mouseDown && !t.pointerDown:
		t.pointerDown = true
		t.setPosition(raw.CursorX, raw.CursorY)
		return append(events, t.event(components.PointerDown, raw.CursorX, raw.CursorY))
	case !mouseDown && t.pointerDown:
		t.pointerDown = false
		t.setPosition(raw.CursorX, raw.CursorY)
		return append(events, t.event(components.PointerUp, raw.CursorX, raw.CursorY))
	}
	return t.move(raw.CursorX, raw.CursorY, events)
}

// move 位置变化时产生移动事件（按下与否都会更新指针位置）
func (t *InputTracker) move(x, y int, events []components.InputEvent) []components.InputEvent {
	if t.hasPosition && x == t.lastX && y == t.lastY {
		return events
	}
	t.setPosition(x, y)
	return append(events, t.event(components.PointerMove, x, y))
}

func (t *InputTracker) updateKey(raw RawInput, events []components.InputEvent) []components.InputEvent {
	pressed := raw.SpawnKeyPressed && raw.Focused
	switch {
	case pressed && !t.keyDown:
		t.keyDown = true
		return append(events, components.InputEvent{Kind: components.KeyDown})
	case !pressed && t.keyDown:
		t.keyDown = false
		return append(events, components.InputEvent{Kind: components.KeyUp})
	}
	return events
}

func (t *InputTracker) setPosition(x, y int) {
	t.lastX, t.lastY = x, y
	t.hasPosition = true
}

func (t *InputTracker) event(kind components.InputEventKind, x, y int) components.InputEvent {
	return components.InputEvent{Kind: kind, X: float64(x), Y: float64(y)}
}

// IsPointerDown 返回跟踪器认为指针是否按下
func (t *InputTracker) IsPointerDown() bool {
	return t.pointerDown
}
