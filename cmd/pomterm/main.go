// pomterm 在终端中运行生成器
//
// 用法：
//
//	go run ./cmd/pomterm [--config data/spawner.yaml] [--manifest data/assets.yaml] [--log pomterm.log]
//
// 操作：
//
//	1         生成（按住连续生成）
//	鼠标左键  在指针位置生成（按住拖动连续生成）
//	m         静音开关
//	d         调试信息开关
//	q / Esc   退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/ecs"
	"github.com/decker502/pomburst/pkg/systems"
)

var (
	configFlag   = flag.String("config", config.SpawnerConfigPath, "Spawner config YAML")
	manifestFlag = flag.String("manifest", config.AssetManifestPath, "Asset manifest YAML (characters and palette)")
	logFlag      = flag.String("log", "", "Write logs to this file (terminal output is never used for logs)")
	muteFlag     = flag.Bool("mute", false, "Start muted")
	debugFlag    = flag.Bool("debug", false, "Show the status line")
)

const instructionsText = "Press 1 or click to spawn Poms"

// TermGame 终端前端
type TermGame struct {
	screen tcell.Screen
	sim    *systems.SimulationSystem
	glyphs *glyphSheet
	pops   *popPlayer

	cols, rows int

	key   *keyHold
	mouse mouseTracker
	debug bool
}

// NewTermGame 初始化终端、模拟和音效
func NewTermGame(cfg *config.SpawnerConfig, manifest *config.AssetManifest) (*TermGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	g := &TermGame{
		screen: screen,
		glyphs: newGlyphSheet(manifest),
		key:    newKeyHold(defaultReleaseGap),
		debug:  *debugFlag,
	}
	g.cols, g.rows = screen.Size()

	sim, err := systems.NewSimulationSystem(systems.SimulationOptions{
		Config:       cfg,
		Frames:       g.glyphs,
		Characters:   manifest.Characters,
		ShockwaveKey: manifest.Shockwave,
		Viewport:     g.viewport(),
	})
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	g.sim = sim

	g.pops = newPopPlayer(*muteFlag)
	sim.SetSpawnListener(func(ev systems.SpawnEvent) {
		if ev.Spawned > 0 {
			g.pops.Play(sim.CharacterIndex(ev.Plan.CharacterKey))
		}
	})

	return g, nil
}

func (g *TermGame) viewport() components.Viewport {
	return components.Viewport{
		Width:  float64(g.cols) * cellWidth,
		Height: float64(g.rows) * cellHeight,
	}
}

func (g *TermGame) push(ev components.InputEvent) {
	if !g.sim.Input().Push(ev) {
		log.Printf("[pomterm] Warning: input queue full, dropped %s", ev.Kind)
	}
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (g *TermGame) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '1':
				g.push(g.key.Press(now))
			case 'm':
				log.Printf("[pomterm] Muted: %v", g.pops.ToggleMute())
			case 'd':
				g.debug = !g.debug
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		for _, e := range g.mouse.Update(ev.Buttons()&tcell.Button1 != 0, cx, cy) {
			g.push(e)
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			if up, ok := g.key.Release(); ok {
				g.push(up)
			}
			for _, e := range g.mouse.Update(false, g.mouse.cx, g.mouse.cy) {
				g.push(e)
			}
		}

	case *tcell.EventResize:
		g.screen.Sync()
		g.cols, g.rows = g.screen.Size()
		g.sim.Resize(g.viewport())
		log.Printf("[pomterm] Resized to %dx%d cells", g.cols, g.rows)
	}

	return true
}

// tick 推进一步模拟
func (g *TermGame) tick(now time.Time) {
	if up, ok := g.key.Expire(now); ok {
		g.push(up)
	}
	g.sim.Step()
}

func (g *TermGame) draw() {
	g.screen.Clear()

	// 活动列表已按 ZIndex 排序：冲击波在前，近处角色在后
	g.sim.EachActive(func(_ ecs.EntityID, obj *components.SpriteObject) {
		x, y := g.sim.CameraTransform(obj.X, obj.Y)
		cx, cy := worldToCell(x, y)
		if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
			return
		}
		g.screen.SetContent(cx, cy, g.glyphs.Glyph(obj.Key, obj.CurrentFrame), nil, g.glyphs.Style(obj.Key))
	})

	state := g.sim.State()
	if !state.Input.HasInteracted {
		g.drawText((g.cols-len(instructionsText))/2, g.rows/2, instructionsText, tcell.StyleDefault.Dim(true))
	}

	if g.debug {
		status := fmt.Sprintf("tick %d  active %d  pooled %d  queued %d  dropped %d  key %v",
			state.Tick, g.sim.ActiveCount(), g.sim.Pool().Len(), g.sim.Input().Len(),
			g.sim.Input().Dropped(), g.key.Held())
		g.drawText(0, g.rows-1, status, tcell.StyleDefault.Reverse(true))
	}

	g.screen.Show()
}

func (g *TermGame) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *TermGame) run(tps int) {
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			g.tick(now)
			g.draw()
		}
	}
}

func (g *TermGame) cleanup() {
	g.pops.Close()
	g.screen.Fini()
}

// loadManifest 加载素材清单，失败时使用内置清单
func loadManifest(path string) *config.AssetManifest {
	manifest, err := config.LoadAssetManifest(path)
	if err != nil {
		log.Printf("[pomterm] Warning: %v, using built-in characters", err)
		return &config.AssetManifest{
			Characters: []string{"char_01", "char_02", "char_03", "char_04"},
			Shockwave:  "shockwave",
		}
	}
	return manifest
}

// loadConfig 加载模拟配置，文件不存在时使用默认值
func loadConfig(path string) (*config.SpawnerConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[pomterm] Warning: %s not found, using default config", path)
		return config.DefaultSpawnerConfig(), nil
	}
	return config.LoadSpawnerConfig(path)
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	game, err := NewTermGame(cfg, loadManifest(*manifestFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run(cfg.MaxTPS)
}
