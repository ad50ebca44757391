package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AssetManifestPath 默认素材清单路径
const AssetManifestPath = "data/assets.yaml"

// 素材变体
const (
	VariantDesktop = "desktop"
	VariantMobile  = "mobile"
)

// AssetManifest 素材清单
//
// 结构:
//
//	characters: [char_01, char_02, ...]
//	shockwave: shockwave
//	sheetPattern: "assets/{variant}/{key}_{variant}.json"
//	mobileBreakpoint: 800
//	procedural:
//	  characterFrames: 36
//	  shockwaveFrames: 18
type AssetManifest struct {
	Characters       []string            `yaml:"characters"`       // 角色键列表
	Shockwave        string              `yaml:"shockwave"`        // 冲击波键
	SheetPattern     string              `yaml:"sheetPattern"`     // 图集 JSON 路径模板，空表示不使用图集
	MobileBreakpoint int                 `yaml:"mobileBreakpoint"` // 视口宽度低于此值时使用 mobile 变体
	Procedural       *ProceduralSettings `yaml:"procedural"`       // 图集缺失时的程序化帧，nil 表示不回退
	PopSound         string              `yaml:"popSound"`         // 生成音效文件（.ogg/.mp3），空表示使用合成音效
}

// ProceduralSettings 程序化帧参数
// 没有美术资源时用于生成占位动画
type ProceduralSettings struct {
	CharacterFrames int      `yaml:"characterFrames"`
	ShockwaveFrames int      `yaml:"shockwaveFrames"`
	CharacterRadius float64  `yaml:"characterRadius"`
	ShockwaveRadius float64  `yaml:"shockwaveRadius"`
	Palette         []string `yaml:"palette"` // 角色颜色（#RRGGBB），按角色序号循环使用
}

// LoadAssetManifest 从 YAML 文件加载素材清单
func LoadAssetManifest(filePath string) (*AssetManifest, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset manifest: %w", err)
	}

	var manifest AssetManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse asset manifest YAML: %w", err)
	}

	if err := validateAssetManifest(&manifest); err != nil {
		return nil, fmt.Errorf("invalid asset manifest: %w", err)
	}

	return &manifest, nil
}

// validateAssetManifest 验证清单的有效性
func validateAssetManifest(manifest *AssetManifest) error {
	if len(manifest.Characters) == 0 {
		return fmt.Errorf("characters cannot be empty")
	}
	if manifest.Shockwave == "" {
		return fmt.Errorf("shockwave key cannot be empty")
	}

	seen := make(map[string]bool, len(manifest.Characters)+1)
	for _, key := range manifest.Characters {
		if key == "" {
			return fmt.Errorf("character key cannot be empty")
		}
		if seen[key] {
			return fmt.Errorf("duplicate character key: %s", key)
		}
		seen[key] = true
	}
	if seen[manifest.Shockwave] {
		return fmt.Errorf("shockwave key %q must not be a character key", manifest.Shockwave)
	}

	if manifest.MobileBreakpoint < 0 {
		return fmt.Errorf("mobileBreakpoint must be >= 0, got %d", manifest.MobileBreakpoint)
	}

	if p := manifest.Procedural; p != nil {
		if p.CharacterFrames < 1 || p.ShockwaveFrames < 1 {
			return fmt.Errorf("procedural frame counts must be >= 1")
		}
		if p.CharacterRadius <= 0 || p.ShockwaveRadius <= 0 {
			return fmt.Errorf("procedural radii must be > 0")
		}
	}

	return nil
}

// Keys 返回全部素材键（角色在前，冲击波在最后），即加载顺序
func (m *AssetManifest) Keys() []string {
	keys := make([]string, 0, len(m.Characters)+1)
	keys = append(keys, m.Characters...)
	return append(keys, m.Shockwave)
}

// SheetPath 返回指定键和变体的图集路径，未配置模板时返回空字符串
func (m *AssetManifest) SheetPath(key, variant string) string {
	if m.SheetPattern == "" {
		return ""
	}
	path := strings.ReplaceAll(m.SheetPattern, "{key}", key)
	return strings.ReplaceAll(path, "{variant}", variant)
}

// Variant 根据视口宽度选择素材变体
func (m *AssetManifest) Variant(viewportWidth int, forceMobile bool) string {
	if forceMobile || viewportWidth < m.MobileBreakpoint {
		return VariantMobile
	}
	return VariantDesktop
}

// ProceduralFrames 返回程序化回退的帧数，未启用回退时返回 0
func (m *AssetManifest) ProceduralFrames(key string) int {
	if m.Procedural == nil {
		return 0
	}
	if key == m.Shockwave {
		return m.Procedural.ShockwaveFrames
	}
	if m.IsCharacter(key) {
		return m.Procedural.CharacterFrames
	}
	return 0
}

// IsCharacter 判断键是否属于角色列表
func (m *AssetManifest) IsCharacter(key string) bool {
	for _, c := range m.Characters {
		if c == key {
			return true
		}
	}
	return false
}
