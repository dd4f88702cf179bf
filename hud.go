package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/goofballs/common"
)

var barBackground = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}

type hudRenderer struct {
	face text.Face
}

func newHUDRenderer() *hudRenderer {
	return &hudRenderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hudRenderer) text(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}

// bigText draws centred, scaled text; newlines start a new line.
func (h *hudRenderer) bigText(screen *ebiten.Image, s string, cx, y float64, clr color.Color) {
	const scale = 4
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.LineSpacing = 16
	text.Draw(screen, s, h.face, op)
}

// bar draws a horizontal fill bar; fraction is clamped to [0, 1].
func (h *hudRenderer) bar(screen *ebiten.Image, x, y, w, ht, fraction float64, fill color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(ht), barBackground, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w*common.Clamp01(fraction)), float32(ht), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(ht), 1, color.White, false)
}
