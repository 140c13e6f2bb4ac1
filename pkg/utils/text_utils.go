package utils

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace 返回内置的位图字体
// 不依赖外部字体文件；放大显示时通过 DrawOptions 的 GeoM 缩放
func DefaultFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// Align 文本水平对齐方式
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// DrawLabel 在 (x, y) 处绘制单行文本
//
// 参数:
//   - dst: 目标图片
//   - str: 文本
//   - face: 字体
//   - x, y: 锚点（y 为文本顶部）
//   - scale: 缩放倍数
//   - clr: 颜色
//   - align: 相对锚点的水平对齐
func DrawLabel(dst *ebiten.Image, str string, face text.Face, x, y, scale float64, clr color.Color, align Align) {
	if str == "" || face == nil {
		return
	}

	width := MeasureTextWidth(str, face) * scale
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

// DrawLabelWithShadow 先绘制偏移的阴影，再绘制文本
func DrawLabelWithShadow(dst *ebiten.Image, str string, face text.Face, x, y, scale float64, clr color.Color, align Align) {
	DrawLabel(dst, str, face, x+scale, y+scale, scale, color.RGBA{0, 0, 0, 160}, align)
	DrawLabel(dst, str, face, x, y, scale, clr, align)
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素，未缩放）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if MeasureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if MeasureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身超宽，按字符强制断行
		for MeasureTextWidth(word, font) > maxWidth {
			cut := 0
			for cut < len(word) {
				_, size := utf8.DecodeRuneInString(word[cut:])
				if MeasureTextWidth(word[:cut+size], font) > maxWidth {
					break
				}
				cut += size
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(word)
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// MeasureTextWidth 测量文本宽度（未缩放）
func MeasureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
