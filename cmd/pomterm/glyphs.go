package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/pomburst/pkg/config"
)

// 每个单元格对应的世界坐标尺寸（模拟按像素计算，终端按单元格绘制）
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

var (
	// 角色动画：从小到大弹出再缩回
	characterGlyphs = []rune{'·', 'o', 'O', '@', '@', 'O', 'o', 'O', '@', 'O', 'o', '·'}
	// 冲击波动画：扩散的圆环
	shockwaveGlyphs = []rune{'·', '∘', '○', '◯', '◌', ' '}
)

// glyphSheet 终端的帧来源：每个键对应一组字符帧和颜色
// 实现 systems.FrameSource
type glyphSheet struct {
	frames map[string][]rune
	styles map[string]tcell.Style
}

// newGlyphSheet 按素材清单创建字符帧表
// 角色颜色取清单中的程序化调色板，没有调色板时使用默认前景色
func newGlyphSheet(manifest *config.AssetManifest) *glyphSheet {
	g := &glyphSheet{
		frames: make(map[string][]rune, len(manifest.Characters)+1),
		styles: make(map[string]tcell.Style, len(manifest.Characters)+1),
	}

	var palette []string
	if manifest.Procedural != nil {
		palette = manifest.Procedural.Palette
	}

	for i, key := range manifest.Characters {
		g.frames[key] = characterGlyphs
		style := tcell.StyleDefault.Bold(true)
		if len(palette) > 0 {
			style = style.Foreground(tcell.GetColor(palette[i%len(palette)]))
		}
		g.styles[key] = style
	}

	g.frames[manifest.Shockwave] = shockwaveGlyphs
	g.styles[manifest.Shockwave] = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	return g
}

// FrameCount 返回键的帧数，未知键返回 0
func (g *glyphSheet) FrameCount(key string) int {
	return len(g.frames[key])
}

// Glyph 返回键的第 frame 帧，越界时返回空格
func (g *glyphSheet) Glyph(key string, frame int) rune {
	frames := g.frames[key]
	if frame < 0 || frame >= len(frames) {
		return ' '
	}
	return frames[frame]
}

// Style 返回键的绘制样式
func (g *glyphSheet) Style(key string) tcell.Style {
	if style, ok := g.styles[key]; ok {
		return style
	}
	return tcell.StyleDefault
}

// worldToCell 世界坐标转单元格坐标
func worldToCell(x, y float64) (int, int) {
	cx := x / cellWidth
	cy := y / cellHeight
	// 负坐标向下取整，避免 -0.5 落到第 0 格
	ix, iy := int(cx), int(cy)
	if cx < 0 && float64(ix) != cx {
		ix--
	}
	if cy < 0 && float64(iy) != cy {
		iy--
	}
	return ix, iy
}

// cellToWorld 单元格中心的世界坐标
func cellToWorld(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * cellWidth, (float64(cy) + 0.5) * cellHeight
}
