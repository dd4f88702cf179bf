package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/arena"
	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs/component"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	arenaMargin = 48
	// hitFlashDuration is how long the screen tints red after the player is hit.
	hitFlashDuration = 0.15
)

var (
	backgroundColor = color.NRGBA{R: 0x1b, G: 0x1f, B: 0x1a, A: 0xff}
	floorColor      = color.NRGBA{R: 0x3d, G: 0x6b, B: 0x35, A: 0xff}
	wallColor       = color.NRGBA{R: 0x8a, G: 0x6d, B: 0x4b, A: 0xff}
	flashColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	deadColor       = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

type Game struct {
	rt    *arena.Runtime
	dt    float64
	log   zerolog.Logger
	debug bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	hud     *hudRenderer

	fade     float64
	hitFlash float64
	frames   int
}

func NewGame(debug bool) *Game {
	g := &Game{debug: debug, dt: 1.0 / 60, log: zerolog.Nop(), hud: newHUDRenderer()}
	g.pauseUI = NewPauseUI(g)
	return g
}

// Attach binds the runtime once it has been built with the game as fader.
func (g *Game) Attach(rt *arena.Runtime, dt float64, log zerolog.Logger) {
	g.rt = rt
	g.dt = dt
	g.log = log
}

// SetFade is called by the encounter during the victory timeline.
func (g *Game) SetFade(alpha float64) { g.fade = alpha }

func (g *Game) Resume() { g.paused = false }

func (g *Game) Restart() {
	g.paused = false
	g.rt.Arena.RequestRestart()
	g.log.Info().Msg("restart from pause menu")
}

func (g *Game) Quit() { g.quit = true }

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	in := sampleInput()
	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	a := g.rt.Arena
	a.SetInput(in.Move, in.Lunge)
	if g.debug && in.DebugDamage {
		a.DebugDamageObjective(component.TeamEnemy, arena.DebugObjectiveDamage)
	}
	if err := g.rt.Step(g.dt); err != nil {
		return err
	}

	if a.TakePlayerHit() {
		g.hitFlash = hitFlashDuration
	}
	if g.hitFlash > 0 {
		g.hitFlash -= g.dt
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.rt == nil {
		return
	}
	a := g.rt.Arena
	spec := a.Spec()
	cam := FitCamera(spec.HalfWidth, spec.HalfDepth, baseWidth, baseHeight, arenaMargin)

	x0, y0 := cam.WorldToScreen(common.Vec3{X: -spec.HalfWidth, Z: spec.HalfDepth})
	fw, fh := float32(cam.Length(2*spec.HalfWidth)), float32(cam.Length(2*spec.HalfDepth))
	vector.FillRect(screen, float32(x0), float32(y0), fw, fh, floorColor, false)
	vector.StrokeRect(screen, float32(x0), float32(y0), fw, fh, 4, wallColor, false)

	for _, o := range a.Objectives() {
		g.drawObjective(screen, cam, spec.TeamColor(o.Team), o)
	}
	for _, c := range a.Combatants() {
		g.drawCombatant(screen, cam, spec.TeamColor(c.Team), c)
	}

	g.drawHUD(screen, a)

	if g.hitFlash > 0 {
		alpha := uint8(90 * g.hitFlash / hitFlashDuration)
		vector.FillRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{R: 0xff, A: alpha}, false)
	}
	if g.fade > 0 {
		vector.FillRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{A: uint8(255 * common.Clamp01(g.fade))}, false)
	}
	if banner := a.HUD().Banner; banner != nil {
		c := banner.Color
		g.hud.bigText(screen, banner.Text, baseWidth/2, baseHeight/2-40, color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawObjective(screen *ebiten.Image, cam Camera, team color.Color, o arena.ObjectiveView) {
	x, y := cam.WorldToScreen(o.Position)
	r := float32(cam.Length(o.Radius))
	fill := team
	switch {
	case o.Destroyed:
		fill = deadColor
	case o.Flashing:
		fill = flashColor
	}
	vector.FillCircle(screen, float32(x), float32(y), r, fill, true)
	vector.StrokeCircle(screen, float32(x), float32(y), r, 3, wallColor, true)
	if o.MaxHP > 0 {
		g.hud.bar(screen, x-40, y-float64(r)-14, 80, 8, o.HP/o.MaxHP, team)
	}
}

func (g *Game) drawCombatant(screen *ebiten.Image, cam Camera, team color.Color, c arena.CombatantView) {
	x, y := cam.WorldToScreen(c.Position)
	r := float32(cam.Length(c.Radius))
	if r <= 0 {
		r = float32(cam.Length(0.5))
	}
	fill := team
	switch {
	case c.Dead:
		fill = deadColor
	case c.Flashing:
		fill = flashColor
	}
	vector.FillCircle(screen, float32(x), float32(y), r, fill, true)
	if c.Player {
		vector.StrokeCircle(screen, float32(x), float32(y), r+2, 2, color.White, true)
	}

	// Heading in yaw space: +Z is up on screen.
	body := common.Forward(c.BodyYaw)
	hx, hy := x+body.X*float64(r)*1.6, y-body.Z*float64(r)*1.6
	width := float32(2)
	if c.Lunging {
		width = 4
	}
	vector.StrokeLine(screen, float32(x), float32(y), float32(hx), float32(hy), width, color.White, true)

	if c.MaxHP > 0 && !c.Dead {
		g.hud.bar(screen, x-16, y-float64(r)-10, 32, 4, c.HP/c.MaxHP, team)
	}
	if g.debug && c.Player {
		g.hud.text(screen, fmt.Sprintf("%.0f/%.0f %s", c.HP, c.MaxHP, c.Weapon), x, y+float64(r)+4, color.White)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, a *arena.Arena) {
	hud := a.HUD()

	if cur, max, ok := a.ObjectiveHP(component.TeamPlayer); ok {
		g.hud.text(screen, "Your barbecue", 20, baseHeight-44, color.White)
		g.hud.bar(screen, 20, baseHeight-28, 200, 12, cur/max, a.Spec().TeamColor(component.TeamPlayer))
	}
	if cur, max, ok := a.ObjectiveHP(component.TeamEnemy); ok {
		g.hud.text(screen, "Enemy barbecue", 20, 12, color.White)
		g.hud.bar(screen, 20, 28, 200, 12, cur/max, a.Spec().TeamColor(component.TeamEnemy))
	}
	if remaining, fraction, ok := a.PlayerCooldown(); ok {
		label := "LUNGE READY"
		if remaining > 0 {
			label = fmt.Sprintf("LUNGE %.1fs", remaining)
		}
		g.hud.text(screen, label, baseWidth-220, baseHeight-44, color.White)
		g.hud.bar(screen, baseWidth-220, baseHeight-28, 200, 12, 1-fraction, color.NRGBA{R: 0xff, G: 0xc8, B: 0x3c, A: 0xff})
	}

	if hud.HasCountdown {
		g.hud.bigText(screen, fmt.Sprintf("%d", hud.Countdown), baseWidth/2, baseHeight/2-80, color.White)
	}
	if hud.Dialogue != nil {
		g.hud.text(screen, hud.Dialogue.Text, baseWidth/2-float64(len(hud.Dialogue.Text))*3.5, baseHeight-96, color.White)
	}

	if g.debug {
		stats := a.Stats()
		g.hud.text(screen, fmt.Sprintf("FPS %.0f  TPS %.0f  phase %s  scale %.2f  match %d  spawned %d/%d  lost %d/%d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), hud.Phase, hud.TimeScale, a.Matches(),
			stats.Player.Spawned, stats.Enemy.Spawned, stats.Player.Lost, stats.Enemy.Lost),
			baseWidth-620, 12, color.White)
		if m := g.rt.Metrics; m != nil {
			t := m.Totals()
			g.hud.text(screen, fmt.Sprintf("lunges %d  hits %d  deaths %d", t.Lunges, t.Hits, t.Deaths), baseWidth-620, 28, color.White)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
