// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/game"
	"github.com/decker502/pomburst/pkg/scenes"
	"github.com/decker502/pomburst/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 显示调试信息（F3 也可切换）
	Debug bool
	// Mute 启动时静音（M 键切换）
	Mute bool
	// ConfigPath 生成器配置路径，为空使用 config.SpawnerConfigPath
	ConfigPath string
	// ManifestPath 素材清单路径，为空使用 config.AssetManifestPath
	ManifestPath string
	// AssetRoot 素材根目录，图集路径相对于此目录
	AssetRoot string
	// WindowWidth 初始窗口宽度，用于选择素材变体，0 使用默认值
	WindowWidth int
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	tps          int
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.SpawnerConfigPath
	}
	spawnerConfig, err := config.LoadSpawnerConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("生成器配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载生成器配置: %s", configPath)

	manifestPath := cfg.ManifestPath
	if manifestPath == "" {
		manifestPath = config.AssetManifestPath
	}
	manifest, err := config.LoadAssetManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("素材清单加载失败: %w", err)
	}
	log.Printf("[Config] 加载素材清单: %s (%d 个角色)", manifestPath, len(manifest.Characters))

	ebiten.SetTPS(spawnerConfig.MaxTPS)

	windowWidth := cfg.WindowWidth
	if windowWidth <= 0 {
		windowWidth = config.DefaultWindowWidth
	}
	variant := manifest.Variant(windowWidth, utils.IsMobile())
	log.Printf("[App] Asset variant: %s", variant)

	// 初始化音频上下文
	audioContext := audio.NewContext(game.AudioSampleRate)

	resourceManager := game.NewResourceManager(audioContext, manifest, variant)
	resourceManager.SetAssetRoot(cfg.AssetRoot)

	popSound := manifest.PopSound
	if popSound != "" && cfg.AssetRoot != "" {
		popSound = filepath.Join(cfg.AssetRoot, popSound)
	}
	audioManager := game.NewAudioManager(resourceManager, popSound, len(manifest.Characters))
	audioManager.SetMuted(cfg.Mute)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.RegisterScene(scenes.SceneSpawner, func() game.Scene {
		width, height := sceneManager.Size()
		scene, err := scenes.NewSpawnerScene(scenes.SpawnerSceneOptions{
			Config:          spawnerConfig,
			ResourceManager: resourceManager,
			Audio:           audioManager,
			Width:           width,
			Height:          height,
			Mobile:          utils.IsMobile(),
			Debug:           cfg.Debug,
		})
		if err != nil {
			log.Printf("[App] 错误: %v", err)
			return nil
		}
		return scene
	})

	sceneManager.SwitchTo(scenes.NewLoadingScene(resourceManager, sceneManager, scenes.SceneSpawner))

	return &App{
		sceneManager: sceneManager,
		audioManager: audioManager,
		tps:          spawnerConfig.MaxTPS,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(a.tps))
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸与窗口一致，窗口尺寸变化即视口变化
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
