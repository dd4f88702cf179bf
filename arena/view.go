package arena

import (
	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/ecs/system"
)

// CombatantView is a read-only copy of what a host draws for one fighter.
type CombatantView struct {
	Entity   ecs.Entity
	Name     string
	Team     component.Team
	Position common.Vec3
	Yaw      float64
	// BodyYaw is the wobbling skeleton heading.
	BodyYaw  float64
	Radius   float64
	HP       float64
	MaxHP    float64
	Dead     bool
	Player   bool
	Lunging  bool
	Flashing bool
	Cooldown float64
	Weapon   string
}

type ObjectiveView struct {
	Entity    ecs.Entity
	Name      string
	Team      component.Team
	Position  common.Vec3
	Radius    float64
	HP        float64
	MaxHP     float64
	Destroyed bool
	Flashing  bool
}

// HUDView is the overlay state: countdown, banner, dialogue and fade.
type HUDView struct {
	Phase        system.EncounterPhase
	Countdown    int
	HasCountdown bool
	Banner       *system.Banner
	Dialogue     *system.Dialogue
	Fade         float64
	TimeScale    float64
}

// Combatants lists every active fighter in entity order.
func (a *Arena) Combatants() []CombatantView {
	var out []CombatantView
	w := a.world
	ecs.ForEach2(w, component.CombatantComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Combatant, t *component.Transform) {
		if !c.Active {
			return
		}
		v := CombatantView{
			Entity:   e,
			Name:     c.Name,
			Team:     c.Team,
			Position: t.Position,
			Yaw:      t.Yaw,
			BodyYaw:  t.Yaw,
			Player:   ecs.Has(w, e, component.PlayerTagComponent.Kind()),
			Flashing: flashing(w, e),
		}
		if sk, ok := ecs.Get(w, e, component.SkeletonComponent.Kind()); ok {
			v.BodyYaw = sk.Yaw
		}
		if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			v.Radius = b.Radius
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			v.HP, v.MaxHP, v.Dead = h.Current, h.Max, h.Dead
		}
		if l, ok := ecs.Get(w, e, component.LungeComponent.Kind()); ok {
			v.Lunging = l.IsLunging()
			v.Cooldown = l.CooldownFraction()
		}
		if wp, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok && wp.Profile != nil {
			v.Weapon = wp.Profile.Name
		}
		out = append(out, v)
	})
	return out
}

func (a *Arena) Objectives() []ObjectiveView {
	var out []ObjectiveView
	w := a.world
	ecs.ForEach2(w, component.ObjectiveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.Objective, t *component.Transform) {
		v := ObjectiveView{
			Entity:    e,
			Name:      o.Name,
			Team:      o.Team,
			Position:  t.Position,
			HP:        o.Current,
			MaxHP:     o.Max,
			Destroyed: o.Destroyed,
			Flashing:  flashing(w, e),
		}
		if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			v.Radius = b.Radius
		}
		out = append(out, v)
	})
	return out
}

func (a *Arena) HUD() HUDView {
	return HUDView{
		Phase:        a.director.Phase(),
		Countdown:    a.hud.countdown,
		HasCountdown: a.hud.hasCountdown,
		Banner:       a.hud.banner,
		Dialogue:     a.hud.dialogue,
		Fade:         a.fade,
		TimeScale:    a.world.TimeScale(),
	}
}

// TakePlayerHit reports whether the player was damaged since the last call.
func (a *Arena) TakePlayerHit() bool {
	hit := a.hud.playerHit
	a.hud.playerHit = false
	return hit
}

func flashing(w *ecs.World, e ecs.Entity) bool {
	f, ok := ecs.Get(w, e, component.DamageFlashComponent.Kind())
	return ok && f.On
}
