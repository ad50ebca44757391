package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pcm "github.com/decker502/pomburst/internal/audio"
	"github.com/decker502/pomburst/internal/spritesheet"
	"github.com/decker502/pomburst/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ResourceManager is responsible for centralized management of sprite resources.
// It loads every key of the asset manifest into an ordered list of animation
// frames, caches atlas images, and serves frame counts to the simulation.
//
// Loading is incremental: LoadNext loads exactly one key so that a loading
// scene can report progress between frames. A key whose sprite sheet cannot
// be loaded falls back to procedurally drawn frames when the manifest enables
// them; otherwise the key ends up with zero frames and spawns for it are skipped.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All calls are expected to happen on
// the Ebitengine game loop goroutine.
//
// Usage:
//
//	rm := NewResourceManager(audioContext, manifest, config.VariantDesktop)
//	for !rm.IsLoaded() {
//	    rm.LoadNext()
//	}
//	frames := rm.Frames("char_01")
type ResourceManager struct {
	imageCache   map[string]*ebiten.Image    // Cache for loaded atlas images: path -> Image
	audioCache   map[string]*audio.Player    // Cache for loaded sound effects: path -> Player
	audioContext *audio.Context              // Global audio context, may be nil when audio is disabled
	frames       map[string][]*ebiten.Image  // Animation frames: key -> frames
	sheets       map[string]*spritesheet.Sheet // Parsed sheets: key -> sheet (procedural keys have none)

	manifest *config.AssetManifest
	variant  string
	// assetRoot is prepended to relative sheet paths
	assetRoot string

	pending []string // Keys not loaded yet, in manifest order
	loaded  int
}

// NewResourceManager creates a ResourceManager for the given manifest and
// asset variant ("desktop" or "mobile"). audioContext may be nil.
func NewResourceManager(audioContext *audio.Context, manifest *config.AssetManifest, variant string) *ResourceManager {
	return &ResourceManager{
		imageCache:   make(map[string]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
		frames:       make(map[string][]*ebiten.Image),
		sheets:       make(map[string]*spritesheet.Sheet),
		manifest:     manifest,
		variant:      variant,
		pending:      manifest.Keys(),
	}
}

// SetAssetRoot sets the directory that relative sheet paths are resolved against.
func (rm *ResourceManager) SetAssetRoot(root string) {
	rm.assetRoot = root
}

// Variant returns the asset variant this manager loads.
func (rm *ResourceManager) Variant() string {
	return rm.variant
}

// Manifest returns the asset manifest.
func (rm *ResourceManager) Manifest() *config.AssetManifest {
	return rm.manifest
}

// Progress returns how many keys have been loaded and the total key count.
func (rm *ResourceManager) Progress() (loaded, total int) {
	return rm.loaded, rm.loaded + len(rm.pending)
}

// IsLoaded reports whether every manifest key has been processed.
func (rm *ResourceManager) IsLoaded() bool {
	return len(rm.pending) == 0
}

// LoadNext loads the next pending key and returns it.
// It returns false when nothing is left to load.
//
// Failures are soft: they are logged as warnings, and the key either gets
// procedural frames or no frames at all.
func (rm *ResourceManager) LoadNext() (string, bool) {
	if len(rm.pending) == 0 {
		return "", false
	}

	key := rm.pending[0]
	rm.pending = rm.pending[1:]
	rm.loaded++

	frames, err := rm.loadSheetFrames(key)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v", err)
		frames = rm.proceduralFrames(key)
		if len(frames) > 0 {
			log.Printf("[ResourceManager] Using %d procedural frames for %s", len(frames), key)
		}
	}
	rm.frames[key] = frames

	log.Printf("[ResourceManager] Loaded %s (%d frames) [%d/%d]", key, len(frames), rm.loaded, rm.loaded+len(rm.pending))
	return key, true
}

// LoadAll loads every pending key.
func (rm *ResourceManager) LoadAll() {
	for {
		if _, ok := rm.LoadNext(); !ok {
			return
		}
	}
}

// FrameCount returns the number of animation frames for key, 0 if none.
func (rm *ResourceManager) FrameCount(key string) int {
	return len(rm.frames[key])
}

// Frames returns the animation frames for key.
func (rm *ResourceManager) Frames(key string) []*ebiten.Image {
	return rm.frames[key]
}

// Frame returns frame i of key, or nil when out of range.
func (rm *ResourceManager) Frame(key string, i int) *ebiten.Image {
	frames := rm.frames[key]
	if i < 0 || i >= len(frames) {
		return nil
	}
	return frames[i]
}

// Sheet returns the parsed sprite sheet of key, nil for procedural keys.
func (rm *ResourceManager) Sheet(key string) *spritesheet.Sheet {
	return rm.sheets[key]
}

// loadSheetFrames parses the key's atlas description and cuts its default animation.
func (rm *ResourceManager) loadSheetFrames(key string) ([]*ebiten.Image, error) {
	path := rm.manifest.SheetPath(key, rm.variant)
	if path == "" {
		return nil, fmt.Errorf("no sprite sheet configured for %s", key)
	}
	if rm.assetRoot != "" && !filepath.IsAbs(path) {
		path = filepath.Join(rm.assetRoot, path)
	}

	sheet, err := spritesheet.ParseFile(path)
	if err != nil {
		return nil, err
	}

	atlas, err := rm.LoadImage(sheet.Image)
	if err != nil {
		return nil, err
	}

	anim := sheet.DefaultAnimation()
	if len(anim) == 0 {
		// 图集存在但没有动画：跳过该键，不使用程序化帧
		log.Printf("[ResourceManager] Warning: %s has no animations, %s will not spawn", path, key)
		rm.sheets[key] = sheet
		return nil, nil
	}
	frames := make([]*ebiten.Image, 0, len(anim))
	for _, f := range anim {
		if !f.Rect.In(atlas.Bounds()) {
			return nil, fmt.Errorf("frame %s of %s is outside the atlas %v", f.Name, key, atlas.Bounds())
		}
		frames = append(frames, cutFrame(atlas, f))
	}

	rm.sheets[key] = sheet
	return frames, nil
}

// cutFrame returns the frame's image, restoring rotation and trimmed borders.
func cutFrame(atlas *ebiten.Image, f spritesheet.Frame) *ebiten.Image {
	sub := atlas.SubImage(f.Rect).(*ebiten.Image)
	if !f.Rotated && f.Offset == (image.Point{}) && f.SourceSize == f.Rect.Size() {
		return sub
	}

	dst := ebiten.NewImage(f.SourceSize.X, f.SourceSize.Y)
	op := &ebiten.DrawImageOptions{}
	if f.Rotated {
		// 图集中顺时针旋转了 90°，逆时针转回
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, float64(f.Height()))
	}
	op.GeoM.Translate(float64(f.Offset.X), float64(f.Offset.Y))
	dst.DrawImage(sub, op)
	return dst
}

// proceduralFrames draws placeholder frames for key, nil when disabled.
func (rm *ResourceManager) proceduralFrames(key string) []*ebiten.Image {
	settings := rm.manifest.Procedural
	count := rm.manifest.ProceduralFrames(key)
	if settings == nil || count <= 0 {
		return nil
	}

	frames := make([]*ebiten.Image, count)
	if key == rm.manifest.Shockwave {
		for i := range frames {
			frames[i] = drawShockwaveFrame(settings.ShockwaveRadius, float64(i+1)/float64(count))
		}
		return frames
	}

	clr := rm.characterColor(key)
	for i := range frames {
		frames[i] = drawCharacterFrame(settings.CharacterRadius, clr, float64(i)/float64(count))
	}
	return frames
}

// characterColor picks the palette colour for a character key.
func (rm *ResourceManager) characterColor(key string) color.RGBA {
	fallback := color.RGBA{R: 240, G: 120, B: 160, A: 255}
	palette := rm.manifest.Procedural.Palette
	if len(palette) == 0 {
		return fallback
	}

	index := 0
	for i, c := range rm.manifest.Characters {
		if c == key {
			index = i
			break
		}
	}

	clr, err := ParseHexColor(palette[index%len(palette)])
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v", err)
		return fallback
	}
	return clr
}

// drawCharacterFrame 绘制一帧占位角色：弹跳的椭圆加两只眼睛
// progress 为 [0, 1) 的动画进度，画布锚点与角色锚点 (0.5, 0.7) 对齐
func drawCharacterFrame(radius float64, clr color.RGBA, progress float64) *ebiten.Image {
	size := int(math.Ceil(radius * 3))
	img := ebiten.NewImage(size, size)

	// 单位圆画一次，再缩放成椭圆
	d := int(math.Ceil(radius * 2))
	body := ebiten.NewImage(d, d)
	vector.DrawFilledCircle(body, float32(d)/2, float32(d)/2, float32(radius), clr, true)

	// 落地压扁，起跳拉长
	bounce := math.Sin(progress * 2 * math.Pi * 3)
	sx, sy := 1+0.12*bounce, 1-0.12*bounce
	cx := float64(size) * 0.5
	cy := float64(size)*0.7 - radius*sy

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(d)/2, -float64(d)/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(cx, cy)
	img.DrawImage(body, op)

	eyeY := float32(cy - radius*sy*0.2)
	eyeDX := float32(radius * sx * 0.35)
	eyeR := float32(radius * 0.12)
	ex := float32(cx)
	vector.DrawFilledCircle(img, ex-eyeDX, eyeY, eyeR, color.White, true)
	vector.DrawFilledCircle(img, ex+eyeDX, eyeY, eyeR, color.White, true)
	vector.DrawFilledCircle(img, ex-eyeDX, eyeY, eyeR*0.5, color.Black, true)
	vector.DrawFilledCircle(img, ex+eyeDX, eyeY, eyeR*0.5, color.Black, true)

	return img
}

// drawShockwaveFrame 绘制一帧冲击波：随进度扩张并淡出的圆环
// 画布锚点 (0.45, 0.25) 附近为圆心
func drawShockwaveFrame(radius float64, progress float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2.2))
	img := ebiten.NewImage(size*2, size)

	cx := float32(size) * 2 * 0.45
	cy := float32(size) * 0.25
	r := float32(radius * progress)
	alpha := uint8(255 * (1 - progress*0.85))
	width := float32(math.Max(2, radius*0.18*(1-progress)))

	ring := color.RGBA{R: alpha, G: alpha, B: alpha, A: alpha}
	vector.StrokeCircle(img, cx, cy, r, width, ring, true)
	return img
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be opened.
//   - Returns an error if the image format is not supported or the file is corrupted.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, nil if not loaded.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadSoundEffect loads a one-shot sound effect and caches it for future use.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and Sun AU (.au).
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio is disabled")
	}
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}
	defer file.Close()

	// Read the entire file into memory so the stream can seek without the file
	audioData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}
	reader := bytes.NewReader(audioData)

	var stream io.ReadSeeker
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".au":
		clip, err := pcm.DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU sound effect %s: %w", path, err)
		}
		stream = bytes.NewReader(clip.Stereo16(rm.audioContext.SampleRate()))
	case ".mp3":
		decodedStream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = decodedStream
	case ".ogg":
		decodedStream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = decodedStream
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .au)", ext)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// AudioContext returns the audio context, nil when audio is disabled.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}
