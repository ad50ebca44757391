package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebug 左上角的调试信息（--debug 或 F3）
func (s *SpawnerScene) drawDebug(screen *ebiten.Image) {
	state := s.sim.State()
	pool := s.sim.Pool()
	vp := s.sim.Viewport()

	lines := []string{
		fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("tick %d  shake %d", state.Tick, state.ShakeTimer),
		fmt.Sprintf("active %d  pool %d", s.sim.ActiveCount(), pool.Len()),
		fmt.Sprintf("pointer %v  key %v", state.Input.PointerDown, state.Input.KeyDown),
		fmt.Sprintf("viewport %.0fx%.0f  variant %s", vp.Width, vp.Height, s.rm.Variant()),
		fmt.Sprintf("dropped input %d", s.sim.Input().Dropped()),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*debugGlyphHeight)
	}
}
