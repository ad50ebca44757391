package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/ecs"
	"github.com/decker502/pomburst/pkg/game"
	"github.com/decker502/pomburst/pkg/systems"
	"github.com/decker502/pomburst/pkg/utils"
)

// 精灵锚点（相对帧尺寸）
const (
	characterAnchorX = 0.5
	characterAnchorY = 0.7
	shockwaveAnchorX = 0.45
	shockwaveAnchorY = 0.25
)

// screenBlend 滤色混合：result = src + dst × (1 − src)
var screenBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// SpawnerSceneOptions 创建 SpawnerScene 的参数
type SpawnerSceneOptions struct {
	Config          *config.SpawnerConfig
	ResourceManager *game.ResourceManager
	Audio           *game.AudioManager // 可为 nil
	Width, Height   int
	Mobile          bool // 决定提示文字
	Debug           bool // 显示调试信息
}

// SpawnerScene 主场景：采集输入、推进模拟、按绘制顺序渲染活动对象
type SpawnerScene struct {
	sim   *systems.SimulationSystem
	rm    *game.ResourceManager
	audio *game.AudioManager

	tracker *utils.InputTracker
	events  []components.InputEvent

	instructions *Instructions // 未启用时为 nil
	debug        bool

	lastDropped uint64
}

// NewSpawnerScene 创建主场景
func NewSpawnerScene(opts SpawnerSceneOptions) (*SpawnerScene, error) {
	manifest := opts.ResourceManager.Manifest()

	sim, err := systems.NewSimulationSystem(systems.SimulationOptions{
		Config:       opts.Config,
		Frames:       opts.ResourceManager,
		Characters:   manifest.Characters,
		ShockwaveKey: manifest.Shockwave,
		Viewport:     components.Viewport{Width: float64(opts.Width), Height: float64(opts.Height)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	s := &SpawnerScene{
		sim:     sim,
		rm:      opts.ResourceManager,
		audio:   opts.Audio,
		tracker: utils.NewInputTracker(),
		events:  make([]components.InputEvent, 0, 8),
		debug:   opts.Debug,
	}

	if opts.Config.ShowInstructions {
		text := InstructionsDesktop
		if opts.Mobile {
			text = InstructionsMobile
		}
		s.instructions = NewInstructions(text)
	}

	sim.SetSpawnListener(s.onSpawn)
	return s, nil
}

// onSpawn 生成回调：播放音效
func (s *SpawnerScene) onSpawn(ev systems.SpawnEvent) {
	if ev.Spawned == 0 {
		return
	}
	if s.audio != nil {
		s.audio.PlayPop(s.sim.CharacterIndex(ev.Plan.CharacterKey))
	}
}

// Simulation 返回模拟系统
func (s *SpawnerScene) Simulation() *systems.SimulationSystem {
	return s.sim
}

// Resize implements game.Resizable.
func (s *SpawnerScene) Resize(width, height int) {
	s.sim.Resize(components.Viewport{Width: float64(width), Height: float64(height)})
	log.Printf("[SpawnerScene] Viewport resized to %dx%d", width, height)
}

// Update 采集本帧输入并推进一个模拟帧
func (s *SpawnerScene) Update(deltaTime float64) {
	s.events = s.tracker.Update(utils.ReadRawInput(), s.events[:0])
	for _, ev := range s.events {
		s.sim.Input().Push(ev)
	}
	if dropped := s.sim.Input().Dropped(); dropped != s.lastDropped {
		log.Printf("[SpawnerScene] Warning: input queue full, %d events dropped so far", dropped)
		s.lastDropped = dropped
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.debug = !s.debug
	}
	if s.audio != nil && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.audio.SetMuted(!s.audio.IsMuted())
	}

	s.sim.Step()

	if s.instructions != nil {
		s.instructions.Update(s.sim.State().Input.HasInteracted)
	}
}

// Draw 按 ZIndex 顺序绘制活动对象，再绘制提示文字和调试信息
func (s *SpawnerScene) Draw(screen *ebiten.Image) {
	cam := s.sim.Camera()

	s.sim.EachActive(func(_ ecs.EntityID, obj *components.SpriteObject) {
		frame := s.rm.Frame(obj.Key, obj.CurrentFrame)
		if frame == nil {
			return
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM = spriteGeoM(obj, frame.Bounds().Dx(), frame.Bounds().Dy(), cam)
		op.Filter = ebiten.FilterLinear
		if obj.IsShockwave {
			op.Blend = screenBlend
		}
		screen.DrawImage(frame, op)
	})

	if s.instructions != nil {
		vp := s.sim.Viewport()
		s.instructions.Draw(screen, vp.Width/2, vp.Height/2)
	}

	if s.debug {
		s.drawDebug(screen)
	}
}

// spriteGeoM 计算对象帧的变换：锚点 → 缩放 → 世界坐标 → 镜头
func spriteGeoM(obj *components.SpriteObject, w, h int, cam components.CameraComponent) ebiten.GeoM {
	ax, ay := characterAnchorX, characterAnchorY
	if obj.IsShockwave {
		ax, ay = shockwaveAnchorX, shockwaveAnchorY
	}

	var g ebiten.GeoM
	g.Translate(-ax*float64(w), -ay*float64(h))
	g.Scale(obj.Scale, obj.Scale)
	g.Translate(obj.X, obj.Y)

	// 镜头：平移(-Pivot) → 旋转 → 平移(X, Y)
	g.Translate(-cam.PivotX, -cam.PivotY)
	if cam.Rotation != 0 {
		g.Rotate(cam.Rotation)
	}
	g.Translate(cam.X, cam.Y)
	return g
}
