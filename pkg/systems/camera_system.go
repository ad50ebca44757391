package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/pomburst/pkg/components"
	"github.com/decker502/pomburst/pkg/config"
)

// CameraSystem 管理全局镜头变换和生成时的震动效果
// 震动强度随计时器线性衰减：intensity = ShakeTimer / ShakeDuration
type CameraSystem struct {
	config *config.SpawnerConfig
	rng    *rand.Rand
	camera components.CameraComponent
}

// NewCameraSystem 创建镜头系统
func NewCameraSystem(cfg *config.SpawnerConfig, rng *rand.Rand) *CameraSystem {
	return &CameraSystem{
		config: cfg,
		rng:    rng,
	}
}

// Resize 视口尺寸变化时重新计算旋转中心
// 正在进行的震动会在下一次 Update 时基于新中心继续
func (cs *CameraSystem) Resize(viewport components.Viewport) {
	cx, cy := viewport.Width/2, viewport.Height/2
	cs.camera.PivotX, cs.camera.PivotY = cx, cy
	cs.camera.X, cs.camera.Y = cx, cy
}

// Update 推进一次震动
// 计时器为正时施加随机偏移和旋转并递减，否则镜头回到中心
func (cs *CameraSystem) Update(state *SimulationState) {
	cam := &cs.camera

	if state.ShakeTimer <= 0 || cs.config.ShakeDuration <= 0 {
		cam.X, cam.Y, cam.Rotation = cam.PivotX, cam.PivotY, 0
		return
	}

	intensity := float64(state.ShakeTimer) / float64(cs.config.ShakeDuration)
	cam.X = cam.PivotX + cs.signedRandom()*cs.config.ShakeMaxX*intensity
	cam.Y = cam.PivotY + cs.signedRandom()*cs.config.ShakeMaxY*intensity
	cam.Rotation = cs.signedRandom() * (cs.config.ShakeMaxRotDeg * math.Pi / 180) * intensity
	state.ShakeTimer--
}

// Camera 返回当前镜头状态
func (cs *CameraSystem) Camera() components.CameraComponent {
	return cs.camera
}

// Transform 将世界坐标变换为屏幕坐标
// 平移(-Pivot) → 旋转 → 平移(X, Y)
func (cs *CameraSystem) Transform(x, y float64) (float64, float64) {
	cam := cs.camera
	dx, dy := x-cam.PivotX, y-cam.PivotY
	if cam.Rotation != 0 {
		sin, cos := math.Sincos(cam.Rotation)
		dx, dy = dx*cos-dy*sin, dx*sin+dy*cos
	}
	return dx + cam.X, dy + cam.Y
}

// signedRandom 返回 [-1, 1) 的随机数
func (cs *CameraSystem) signedRandom() float64 {
	return cs.rng.Float64()*2 - 1
}
