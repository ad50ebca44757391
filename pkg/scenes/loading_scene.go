package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pomburst/pkg/game"
)

// spinnerDots 加载动画的圆点数
const spinnerDots = 12

// LoadingScene represents the loading screen shown when the application starts.
// It loads one asset key per frame, shows "Loading n/total" under a spinner,
// and switches to the spawner scene once every key has been processed.
type LoadingScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	nextScene       string

	width, height int
	elapsedTime   float64
	switched      bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(rm *game.ResourceManager, sm *game.SceneManager, nextScene string) *LoadingScene {
	_, total := rm.Progress()
	log.Printf("[LoadingScene] Loading %d asset keys (variant: %s)", total, rm.Variant())

	return &LoadingScene{
		resourceManager: rm,
		sceneManager:    sm,
		nextScene:       nextScene,
	}
}

// Resize implements game.Resizable.
func (s *LoadingScene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Update loads the next asset key, or switches scenes when loading is complete.
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	if !s.resourceManager.IsLoaded() {
		s.resourceManager.LoadNext()
		return
	}

	if !s.switched {
		s.switched = true
		log.Printf("[LoadingScene] Loading complete after %.2fs", s.elapsedTime)
		if !s.sceneManager.Switch(s.nextScene) {
			log.Printf("[LoadingScene] Warning: failed to switch to %s", s.nextScene)
		}
	}
}

// Draw renders the spinner and progress text.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cx, cy := float32(w)/2, float32(h)/2

	// 旋转的圆点，越靠前越亮
	head := int(s.elapsedTime*spinnerDots) % spinnerDots
	for i := 0; i < spinnerDots; i++ {
		angle := float64(i) / spinnerDots * 2 * math.Pi
		x := cx + 24*float32(math.Cos(angle))
		y := cy + 24*float32(math.Sin(angle))
		age := (head - i + spinnerDots) % spinnerDots
		a := uint8(255 - age*200/spinnerDots)
		vector.DrawFilledCircle(screen, x, y, 4, color.RGBA{R: a, G: a, B: a, A: a}, true)
	}

	msg := s.ProgressText()
	ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*debugGlyphWidth/2, h/2+80)
}

// ProgressText returns the progress message shown under the spinner.
func (s *LoadingScene) ProgressText() string {
	loaded, total := s.resourceManager.Progress()
	if loaded == 0 {
		return "Starting..."
	}
	return fmt.Sprintf("Loading %d/%d", loaded, total)
}
