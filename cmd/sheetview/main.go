// Package main provides a sprite sheet viewer for checking the animation
// frames of every key in the asset manifest.
//
// Usage:
//
//	go run ./cmd/sheetview [flags]
//
// Flags:
//
//	--manifest <path>   Asset manifest (default data/assets.yaml)
//	--assets <dir>      Directory that sheet paths are relative to
//	--variant <name>    desktop or mobile (default desktop)
//	--key <name>        Start with a specific key
//
// Controls:
//
//	Left/Right Arrow  - Previous/next key
//	Space             - Pause/resume playback
//	, / .             - Step one frame back/forward (while paused)
//	Up/Down           - Zoom in/out
//	V                 - Switch between desktop and mobile variants
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/game"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	manifestFlag = flag.String("manifest", config.AssetManifestPath, "Asset manifest YAML")
	assetsFlag   = flag.String("assets", ".", "Directory that sprite sheet paths are relative to")
	variantFlag  = flag.String("variant", config.VariantDesktop, "Asset variant: desktop or mobile")
	keyFlag      = flag.String("key", "", "Start with a specific key")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// SheetViewerGame implements ebiten.Game interface for the sheet viewer
type SheetViewerGame struct {
	manifest        *config.AssetManifest
	resourceManager *game.ResourceManager
	variant         string

	keys         []string
	currentIndex int
	frame        int
	paused       bool
	zoom         float64
}

// NewSheetViewerGame creates a new viewer and loads every key of the manifest
func NewSheetViewerGame(manifest *config.AssetManifest, variant, startKey string) *SheetViewerGame {
	g := &SheetViewerGame{
		manifest: manifest,
		keys:     manifest.Keys(),
		zoom:     1,
	}
	for i, key := range g.keys {
		if key == startKey {
			g.currentIndex = i
		}
	}
	g.load(variant)
	return g
}

// load (re)loads all keys for the variant
func (g *SheetViewerGame) load(variant string) {
	g.variant = variant
	g.resourceManager = game.NewResourceManager(nil, g.manifest, variant)
	g.resourceManager.SetAssetRoot(*assetsFlag)
	g.resourceManager.LoadAll()
	g.frame = 0
	log.Printf("[SheetViewer] Loaded %d keys (variant: %s)", len(g.keys), variant)
}

func (g *SheetViewerGame) currentKey() string {
	return g.keys[g.currentIndex]
}

// Update handles controls and advances playback
func (g *SheetViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.currentIndex = (g.currentIndex + 1) % len(g.keys)
		g.frame = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.currentIndex = (g.currentIndex - 1 + len(g.keys)) % len(g.keys)
		g.frame = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.zoom = min(g.zoom*1.25, 8)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.zoom = max(g.zoom/1.25, 0.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if g.variant == config.VariantDesktop {
			g.load(config.VariantMobile)
		} else {
			g.load(config.VariantDesktop)
		}
	}

	count := g.resourceManager.FrameCount(g.currentKey())
	if count == 0 {
		return nil
	}

	switch {
	case !g.paused:
		g.frame = (g.frame + 1) % count
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.frame = (g.frame + 1) % count
	case inpututil.IsKeyJustPressed(ebiten.KeyComma):
		g.frame = (g.frame - 1 + count) % count
	}
	return nil
}

// Draw renders the current frame with its anchor marked
func (g *SheetViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 40, G: 40, B: 48, A: 255})

	key := g.currentKey()
	count := g.resourceManager.FrameCount(key)
	cx, cy := float64(screenWidth)/2, float64(screenHeight)/2

	ax, ay := 0.5, 0.7
	if key == g.manifest.Shockwave {
		ax, ay = 0.45, 0.25
	}

	if img := g.resourceManager.Frame(key, g.frame); img != nil {
		w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-ax*w, -ay*h)
		op.GeoM.Scale(g.zoom, g.zoom)
		op.GeoM.Translate(cx, cy)
		screen.DrawImage(img, op)

		// 帧边框
		vector.StrokeRect(screen, float32(cx-ax*w*g.zoom), float32(cy-ay*h*g.zoom),
			float32(w*g.zoom), float32(h*g.zoom), 1, color.RGBA{R: 255, G: 255, A: 128}, false)
	}

	// 锚点
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), 3, color.RGBA{R: 255, A: 255}, true)

	source := "sprite sheet"
	if g.resourceManager.Sheet(key) == nil {
		source = "procedural"
	}
	if count == 0 {
		source = "missing"
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%d/%d] %s  (%s, %s)", g.currentIndex+1, len(g.keys), key, source, g.variant), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d/%d  zoom %.2f  paused %v", g.frame+1, count, g.zoom, g.paused), 10, 30)
	ebitenutil.DebugPrintAt(screen, "Left/Right: key  Space: pause  ,/.: step  Up/Down: zoom  V: variant  Q: quit", 10, screenHeight-24)
}

// Layout returns the fixed viewer size
func (g *SheetViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	// 默认静音运行，如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	manifest, err := config.LoadAssetManifest(*manifestFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load manifest: %v\n", err)
		os.Exit(1)
	}

	g := NewSheetViewerGame(manifest, *variantFlag, *keyFlag)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Pom Burst Sheet Viewer")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
