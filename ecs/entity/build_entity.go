package entity

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Weapons    *prefabs.WeaponCatalog
	Log        zerolog.Logger
}

// BuildOption customises a single BuildEntity call.
type BuildOption func(*buildContext)

// WithWeapons resolves weapon components against a catalog.
func WithWeapons(c *prefabs.WeaponCatalog) BuildOption {
	return func(ctx *buildContext) { ctx.Weapons = c }
}

func WithLogger(log zerolog.Logger) BuildOption {
	return func(ctx *buildContext) { ctx.Log = log }
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"ai_tag":         addAITag,
	"player_control": addPlayerControl,
	"input":          addInput,
	"combatant":      addCombatant,
	"health":         addHealth,
	"weapon":         addWeapon,
	"lunge":          addLunge,
	"mover":          addMover,
	"physics_body":   addPhysicsBody,
	"skeleton":       addSkeleton,
	"ai":             addAI,
}

// componentBuildOrder lists components whose builders read earlier ones.
var componentBuildOrder = []string{
	"player_tag",
	"ai_tag",
	"player_control",
	"input",
	"combatant",
	"health",
	"lunge",
	"mover",
	"weapon",
	"physics_body",
	"skeleton",
	"ai",
}

// BuildEntity instantiates an archetype prefab. Every combatant also gets a
// Transform and a Motor; weapon stats are folded into the lunge and mover.
func BuildEntity(w *ecs.World, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	ctx := &buildContext{PrefabPath: prefabPath, Log: zerolog.Nop()}
	for _, opt := range opts {
		opt(ctx)
	}

	e := ecs.CreateEntity(w)
	if err := buildComponents(w, e, spec, ctx); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := finishCombatant(w, e, ctx); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}
	return e, nil
}

func buildComponents(w *ecs.World, e ecs.Entity, spec entityPrefabSpec, ctx *buildContext) error {
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			return err
		}
	}
	return nil
}

// finishCombatant adds the per-instance components every combatant needs and
// applies weapon-derived stats.
func finishCombatant(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			return err
		}
	}
	if !ecs.Has(w, e, component.CombatantComponent.Kind()) {
		return nil
	}
	if !ecs.Has(w, e, component.MotorComponent.Kind()) {
		if err := ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{}); err != nil {
			return err
		}
	}

	weapon, _ := ecs.Get(w, e, component.WeaponComponent.Kind())
	damage, speedMul, forceMul, armed := weapon.Stats()
	if !armed {
		ctx.Log.Warn().Str("prefab", ctx.PrefabPath).Msg("no weapon assigned, using unarmed defaults")
	}
	if l, ok := ecs.Get(w, e, component.LungeComponent.Kind()); ok {
		l.Damage = damage
		l.ForceMultiplier = forceMul
	}
	if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
		m.MoveSpeed *= speedMul
	}
	return nil
}

// Place moves a freshly built entity. Bodies are created by physics on the
// next step from the transform.
func Place(w *ecs.World, e ecs.Entity, pos common.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	t.Yaw = yaw
	if sk, ok := ecs.Get(w, e, component.SkeletonComponent.Kind()); ok {
		sk.Yaw = yaw
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addAITag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AITagComponent.Kind(), &component.AITag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type playerControlSpec = prefabs.PlayerControlComponentSpec

func addPlayerControl(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerControlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player_control spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerControlComponent.Kind(), &component.PlayerControl{
		LungeAccelFactor: spec.LungeAccelFactor,
	})
}

type combatantSpec = prefabs.CombatantComponentSpec

func addCombatant(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[combatantSpec](raw)
	if err != nil {
		return fmt.Errorf("decode combatant spec: %w", err)
	}
	team, err := component.ParseTeam(spec.Team)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CombatantComponent.Kind(), &component.Combatant{
		Name:   spec.Name,
		Team:   team,
		Active: true,
	})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		return fmt.Errorf("health max must be positive")
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.Max))
}

type weaponSpec = prefabs.WeaponComponentSpec

func addWeapon(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[weaponSpec](raw)
	if err != nil {
		return fmt.Errorf("decode weapon spec: %w", err)
	}
	profile, ok := ctx.Weapons.Get(spec.Name)
	if !ok {
		ctx.Log.Warn().Str("prefab", ctx.PrefabPath).Str("weapon", spec.Name).Msg("unknown weapon")
	}
	return ecs.Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{Profile: profile})
}

type lungeSpec = prefabs.LungeComponentSpec

func addLunge(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[lungeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lunge spec: %w", err)
	}
	return ecs.Add(w, e, component.LungeComponent.Kind(), &component.Lunge{
		BaseForce:       spec.BaseForce,
		ForceMultiplier: component.DefaultForceMultiplier,
		Duration:        spec.Duration,
		Cooldown:        spec.Cooldown,
		Damage:          component.DefaultWeaponDamage,
		Enabled:         true,
	})
}

type moverSpec = prefabs.MoverComponentSpec

func addMover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[moverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	decel := spec.Deceleration
	if decel <= 0 {
		decel = spec.MoveSpeed
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{
		MoveSpeed:    spec.MoveSpeed,
		MaxSpeed:     spec.MaxSpeed,
		Deceleration: decel,
		GravityForce: spec.GravityForce,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}

type skeletonSpec = prefabs.SkeletonComponentSpec

func addSkeleton(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[skeletonSpec](raw)
	if err != nil {
		return fmt.Errorf("decode skeleton spec: %w", err)
	}
	return ecs.Add(w, e, component.SkeletonComponent.Kind(), &component.Skeleton{
		TorqueGain:     spec.TorqueGain,
		AngularDamping: spec.AngularDamping,
	})
}

type aiSpec = prefabs.AIComponentSpec

func addAI(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[aiSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ai spec: %w", err)
	}
	return ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
		DetectionRange:  spec.DetectionRange,
		LungeRange:      spec.LungeRange,
		DefenseRadius:   spec.DefenseRadius,
		DefendObjective: spec.DefendObjective,
		TurnRate:        spec.TurnRate,
	})
}
