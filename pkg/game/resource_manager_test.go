package game

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/systems"
)

// createTestAtlas writes a horizontal strip atlas with n frames of size x size
// and its JSON description, and returns the JSON path.
func createTestAtlas(t *testing.T, dir, key string, n, size int) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, n*size, size))
	for x := 0; x < n*size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), B: 255, A: 255})
		}
	}
	pngName := key + "_desktop.png"
	file, err := os.Create(filepath.Join(dir, pngName))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	var frames, names []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s_%02d.png", key, i)
		frames = append(frames, fmt.Sprintf(`%q: {"frame": {"x": %d, "y": 0, "w": %d, "h": %d}}`, name, i*size, size, size))
		names = append(names, fmt.Sprintf("%q", name))
	}
	doc := fmt.Sprintf(`{"frames": {%s}, "animations": {"anim": [%s]}, "meta": {"image": %q}}`,
		strings.Join(frames, ","), strings.Join(names, ","), pngName)

	jsonPath := filepath.Join(dir, key+"_desktop.json")
	if err := os.WriteFile(jsonPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return jsonPath
}

func testManifest(procedural bool) *config.AssetManifest {
	m := &config.AssetManifest{
		Characters:       []string{"char_01", "char_02"},
		Shockwave:        "shockwave",
		SheetPattern:     "{variant}/{key}_{variant}.json",
		MobileBreakpoint: 800,
	}
	if procedural {
		m.Procedural = &config.ProceduralSettings{
			CharacterFrames: 6,
			ShockwaveFrames: 4,
			CharacterRadius: 10,
			ShockwaveRadius: 20,
			Palette:         []string{"#ff0000", "#00ff00"},
		}
	}
	return m
}

// TestLoadNext_SheetsAndProgress tests incremental loading from sprite sheets.
func TestLoadNext_SheetsAndProgress(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "desktop")
	createTestAtlas(t, dir, "char_01", 5, 8)
	createTestAtlas(t, dir, "char_02", 3, 8)
	createTestAtlas(t, dir, "shockwave", 2, 16)

	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	rm.SetAssetRoot(root)

	if loaded, total := rm.Progress(); loaded != 0 || total != 3 {
		t.Fatalf("expected progress 0/3, got %d/%d", loaded, total)
	}

	wantOrder := []string{"char_01", "char_02", "shockwave"}
	for i, want := range wantOrder {
		key, ok := rm.LoadNext()
		if !ok || key != want {
			t.Fatalf("step %d: expected %s, got %s (ok=%v)", i, want, key, ok)
		}
		if loaded, _ := rm.Progress(); loaded != i+1 {
			t.Errorf("expected %d loaded, got %d", i+1, loaded)
		}
	}

	if !rm.IsLoaded() {
		t.Error("expected all keys loaded")
	}
	if _, ok := rm.LoadNext(); ok {
		t.Error("LoadNext should report nothing left")
	}

	if n := rm.FrameCount("char_01"); n != 5 {
		t.Errorf("expected 5 frames for char_01, got %d", n)
	}
	if n := rm.FrameCount("shockwave"); n != 2 {
		t.Errorf("expected 2 frames for shockwave, got %d", n)
	}
	if frame := rm.Frame("shockwave", 1); frame == nil || frame.Bounds().Size() != image.Pt(16, 16) {
		t.Error("expected a 16x16 shockwave frame")
	}
	if rm.Frame("char_02", 3) != nil {
		t.Error("out of range frame should be nil")
	}
	if rm.Sheet("char_02") == nil {
		t.Error("expected parsed sheet for char_02")
	}
}

// TestLoadNext_ProceduralFallback tests the placeholder frames used when sheets are missing.
func TestLoadNext_ProceduralFallback(t *testing.T) {
	rm := NewResourceManager(nil, testManifest(true), config.VariantMobile)
	rm.SetAssetRoot(t.TempDir())
	rm.LoadAll()

	if n := rm.FrameCount("char_02"); n != 6 {
		t.Errorf("expected 6 procedural character frames, got %d", n)
	}
	if n := rm.FrameCount("shockwave"); n != 4 {
		t.Errorf("expected 4 procedural shockwave frames, got %d", n)
	}
	if rm.Sheet("char_01") != nil {
		t.Error("procedural keys should have no sheet")
	}
}

// TestLoadNext_MissingWithoutFallback tests that missing assets end up with zero frames.
func TestLoadNext_MissingWithoutFallback(t *testing.T) {
	root := t.TempDir()
	createTestAtlas(t, filepath.Join(root, "desktop"), "char_01", 2, 4)

	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	rm.SetAssetRoot(root)
	rm.LoadAll()

	if n := rm.FrameCount("char_01"); n != 2 {
		t.Errorf("expected 2 frames, got %d", n)
	}
	if n := rm.FrameCount("char_02"); n != 0 {
		t.Errorf("missing key should have 0 frames, got %d", n)
	}
	if n := rm.FrameCount("shockwave"); n != 0 {
		t.Errorf("missing key should have 0 frames, got %d", n)
	}
}

// TestLoadNext_EmptyAnimationsAreSkipped tests that a sheet without animations
// leaves its key without frames, even when procedural frames are configured.
func TestLoadNext_EmptyAnimationsAreSkipped(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "desktop")
	createTestAtlas(t, dir, "char_01", 3, 8)
	createTestAtlas(t, dir, "shockwave", 2, 8)
	jsonPath := createTestAtlas(t, dir, "char_02", 3, 8)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	start, end := strings.Index(doc, `"animations"`), strings.Index(doc, `"meta"`)
	doc = doc[:start] + `"animations": {}, ` + doc[end:]
	if err := os.WriteFile(jsonPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(nil, testManifest(true), config.VariantDesktop)
	rm.SetAssetRoot(root)
	rm.LoadAll()

	if n := rm.FrameCount("char_02"); n != 0 {
		t.Errorf("key without animations should have 0 frames, got %d", n)
	}
	if rm.Sheet("char_02") == nil {
		t.Error("the parsed sheet should still be recorded")
	}
	if n := rm.FrameCount("char_01"); n != 3 {
		t.Errorf("expected 3 frames for char_01, got %d", n)
	}

	pool := systems.NewSpritePool(rm)
	if _, _, ok := pool.Acquire("char_02", false); ok {
		t.Error("pool should refuse a key without animation frames")
	}
	if _, _, ok := pool.Acquire("char_01", false); !ok {
		t.Error("pool should serve a key with frames")
	}
}

// TestLoadNext_FrameOutsideAtlas tests that a sheet pointing outside its atlas is rejected.
func TestLoadNext_FrameOutsideAtlas(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "desktop")
	createTestAtlas(t, dir, "char_01", 2, 4)

	doc := `{"frames": {"a": {"frame": {"x": 6, "y": 0, "w": 4, "h": 4}}}, "meta": {"image": "char_01_desktop.png"}}`
	if err := os.WriteFile(filepath.Join(dir, "char_01_desktop.json"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	rm.SetAssetRoot(root)
	rm.LoadNext()

	if n := rm.FrameCount("char_01"); n != 0 {
		t.Errorf("invalid sheet should not produce frames, got %d", n)
	}
}

// TestLoadImage_Caching tests that images are decoded once and cached.
func TestLoadImage_Caching(t *testing.T) {
	root := t.TempDir()
	createTestAtlas(t, root, "char_01", 1, 4)
	path := filepath.Join(root, "char_01_desktop.png")

	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	first, err := rm.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	second, err := rm.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if first != second || rm.GetImage(path) != first {
		t.Error("expected cached image to be reused")
	}

	if _, err := rm.LoadImage(filepath.Join(root, "missing.png")); err == nil {
		t.Error("expected error for missing image")
	}

	bad := filepath.Join(root, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := rm.LoadImage(bad); err == nil {
		t.Error("expected error for invalid image")
	}
}

func TestLoadSoundEffect_AudioDisabled(t *testing.T) {
	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	if _, err := rm.LoadSoundEffect("pop.ogg"); err == nil {
		t.Error("expected error without an audio context")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#ff6f91", want: color.RGBA{R: 0xff, G: 0x6f, B: 0x91, A: 255}},
		{in: "2c73d2", want: color.RGBA{R: 0x2c, G: 0x73, B: 0xd2, A: 255}},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: expected %v, got %v (err %v)", tt.in, tt.want, got, err)
		}
	}
}
