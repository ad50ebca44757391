package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an application scene (e.g., loading screen, spawner).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收窗口逻辑尺寸变化
//
// 实现此接口的场景会在以下时机被调用 Resize()：
//   - 切换到该场景时（使用当前尺寸）
//   - 窗口尺寸变化时
type Resizable interface {
	Resize(width, height int)
}
