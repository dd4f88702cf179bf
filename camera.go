package main

import "github.com/milk9111/goofballs/common"

// Camera maps the arena floor to screen pixels, top-down. The player side
// (negative Z) is at the bottom of the screen.
type Camera struct {
	Scale   float64
	CenterX float64
	CenterY float64
}

// FitCamera scales an arena of the given half extents into a screen with a
// margin in pixels on every side.
func FitCamera(halfWidth, halfDepth float64, screenW, screenH, margin float64) Camera {
	cam := Camera{Scale: 1, CenterX: screenW / 2, CenterY: screenH / 2}
	if halfWidth <= 0 || halfDepth <= 0 {
		return cam
	}
	sx := (screenW/2 - margin) / halfWidth
	sy := (screenH/2 - margin) / halfDepth
	cam.Scale = sx
	if sy < sx {
		cam.Scale = sy
	}
	if cam.Scale <= 0 {
		cam.Scale = 1
	}
	return cam
}

func (c Camera) WorldToScreen(p common.Vec3) (float64, float64) {
	return c.CenterX + p.X*c.Scale, c.CenterY - p.Z*c.Scale
}

// Length converts a world distance to pixels.
func (c Camera) Length(d float64) float64 {
	return d * c.Scale
}
