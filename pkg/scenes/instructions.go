package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 提示文字
const (
	InstructionsDesktop = "Press 1 to spawn Poms"
	InstructionsMobile  = "Tap the screen to spawn Poms"
)

// instructionsFadeStep 首次交互后每帧降低的透明度
const instructionsFadeStep = 0.034

// debugGlyphWidth / debugGlyphHeight ebitenutil 调试字体的字符尺寸
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

// Instructions 屏幕中央的提示文字，首次交互后逐帧淡出
type Instructions struct {
	text  string
	alpha float64
	image *ebiten.Image // 预渲染的文字，绘制时按 alpha 缩放
}

// NewInstructions 创建提示文字
func NewInstructions(text string) *Instructions {
	return &Instructions{text: text, alpha: 1}
}

// Update 有过交互后淡出
func (in *Instructions) Update(hasInteracted bool) {
	if !hasInteracted || in.alpha <= 0 {
		return
	}
	in.alpha -= instructionsFadeStep
	if in.alpha <= 0 {
		in.alpha = 0
		if in.image != nil {
			in.image.Deallocate()
			in.image = nil
		}
	}
}

// Visible 返回文字是否仍需绘制
func (in *Instructions) Visible() bool {
	return in.alpha > 0
}

// Alpha 返回当前透明度
func (in *Instructions) Alpha() float64 {
	return in.alpha
}

// Text 返回提示内容
func (in *Instructions) Text() string {
	return in.text
}

// Draw 以 (cx, cy) 为中心绘制，文字放大两倍
func (in *Instructions) Draw(screen *ebiten.Image, cx, cy float64) {
	if !in.Visible() {
		return
	}
	if in.image == nil {
		in.image = ebiten.NewImage(len(in.text)*debugGlyphWidth, debugGlyphHeight)
		ebitenutil.DebugPrintAt(in.image, in.text, 0, 0)
	}
	drawCenteredText(screen, in.image, cx, cy, 2, in.alpha)
}

// drawCenteredText 以 (cx, cy) 为中心绘制预渲染的文字
func drawCenteredText(screen, img *ebiten.Image, cx, cy, scale, alpha float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}
