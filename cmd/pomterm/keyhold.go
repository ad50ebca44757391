package main

import (
	"time"

	"github.com/decker502/pomburst/pkg/components"
)

// defaultReleaseGap 生成键最后一次按键后多久视为松开
// 需要覆盖终端的首次重复延迟（通常 250~600ms）
const defaultReleaseGap = 650 * time.Millisecond

// keyHold 为只有按下事件的终端合成松开事件
//
// 终端只会上报按键（包括系统重复），不会上报松开。
// 连续的重复按键视为按住，超过 gap 没有新按键就视为松开。
type keyHold struct {
	gap  time.Duration
	held bool
	last time.Time
}

func newKeyHold(gap time.Duration) *keyHold {
	return &keyHold{gap: gap}
}

// Press 记录一次按键，返回要投递的 KeyDown
// 按住期间的后续按键标记为 Repeat，调度器会忽略它们
func (k *keyHold) Press(now time.Time) components.InputEvent {
	ev := components.InputEvent{Kind: components.KeyDown, Repeat: k.held}
	k.held = true
	k.last = now
	return ev
}

// Expire 检查是否已经松开，松开时返回 KeyUp
func (k *keyHold) Expire(now time.Time) (components.InputEvent, bool) {
	if !k.held || now.Sub(k.last) < k.gap {
		return components.InputEvent{}, false
	}
	k.held = false
	return components.InputEvent{Kind: components.KeyUp}, true
}

// Release 立即松开（失去焦点、退出时）
func (k *keyHold) Release() (components.InputEvent, bool) {
	if !k.held {
		return components.InputEvent{}, false
	}
	k.held = false
	return components.InputEvent{Kind: components.KeyUp}, true
}

// Held 是否处于按住状态
func (k *keyHold) Held() bool {
	return k.held
}

// mouseTracker 把 tcell 的鼠标状态转换为按下/移动/松开事件
type mouseTracker struct {
	down   bool
	cx, cy int
}

// Update 根据当前按键状态和单元格位置生成事件
func (m *mouseTracker) Update(pressed bool, cx, cy int) []components.InputEvent {
	x, y := cellToWorld(cx, cy)
	var events []components.InputEvent

	switch {
	case pressed && !m.down:
		events = append(events, components.InputEvent{Kind: components.PointerDown, X: x, Y: y})
	case !pressed && m.down:
		events = append(events, components.InputEvent{Kind: components.PointerUp, X: x, Y: y})
	case cx != m.cx || cy != m.cy:
		events = append(events, components.InputEvent{Kind: components.PointerMove, X: x, Y: y})
	}

	m.down = pressed
	m.cx, m.cy = cx, cy
	return events
}
