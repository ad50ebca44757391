package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadAssetManifest(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{
			name: "valid",
			yamlContent: `
characters: [char_01, char_02]
shockwave: shockwave
sheetPattern: "assets/{variant}/{key}_{variant}.json"
mobileBreakpoint: 800
`,
		},
		{
			name:        "no characters",
			yamlContent: "shockwave: shockwave\n",
			errContains: "characters",
		},
		{
			name:        "no shockwave",
			yamlContent: "characters: [a]\n",
			errContains: "shockwave",
		},
		{
			name:        "duplicate character",
			yamlContent: "characters: [a, a]\nshockwave: s\n",
			errContains: "duplicate",
		},
		{
			name:        "shockwave collides with character",
			yamlContent: "characters: [a, s]\nshockwave: s\n",
			errContains: "must not be a character",
		},
		{
			name: "procedural without frames",
			yamlContent: `
characters: [a]
shockwave: s
procedural:
  characterFrames: 0
  shockwaveFrames: 4
  characterRadius: 10
  shockwaveRadius: 20
`,
			errContains: "frame counts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAssetManifest(writeManifest(t, tt.yamlContent))
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestAssetManifestHelpers(t *testing.T) {
	m := &AssetManifest{
		Characters:       []string{"char_01", "char_02"},
		Shockwave:        "shockwave",
		SheetPattern:     "assets/{variant}/{key}_{variant}.json",
		MobileBreakpoint: 800,
		Procedural: &ProceduralSettings{
			CharacterFrames: 30,
			ShockwaveFrames: 12,
			CharacterRadius: 20,
			ShockwaveRadius: 60,
		},
	}

	keys := m.Keys()
	if len(keys) != 3 || keys[2] != "shockwave" {
		t.Errorf("expected shockwave to load last, got %v", keys)
	}

	if got := m.SheetPath("char_01", VariantMobile); got != "assets/mobile/char_01_mobile.json" {
		t.Errorf("unexpected sheet path %q", got)
	}

	if v := m.Variant(640, false); v != VariantMobile {
		t.Errorf("expected mobile variant for narrow viewport, got %s", v)
	}
	if v := m.Variant(1920, false); v != VariantDesktop {
		t.Errorf("expected desktop variant, got %s", v)
	}
	if v := m.Variant(1920, true); v != VariantMobile {
		t.Errorf("forced mobile should win, got %s", v)
	}

	if n := m.ProceduralFrames("shockwave"); n != 12 {
		t.Errorf("expected 12 shockwave frames, got %d", n)
	}
	if n := m.ProceduralFrames("char_02"); n != 30 {
		t.Errorf("expected 30 character frames, got %d", n)
	}
	if n := m.ProceduralFrames("unknown"); n != 0 {
		t.Errorf("unknown key should have no frames, got %d", n)
	}

	m.SheetPattern = ""
	if got := m.SheetPath("char_01", VariantDesktop); got != "" {
		t.Errorf("expected empty path without pattern, got %q", got)
	}
}

func TestShippedAssetManifest(t *testing.T) {
	m, err := LoadAssetManifest("../../data/assets.yaml")
	if err != nil {
		t.Fatalf("shipped manifest should load: %v", err)
	}
	if len(m.Characters) != 10 {
		t.Errorf("expected 10 characters, got %d", len(m.Characters))
	}
	if m.Shockwave != "shockwave" {
		t.Errorf("expected shockwave key, got %q", m.Shockwave)
	}
}
