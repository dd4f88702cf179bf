package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an archetype prefab: a name and a bag of component
// specs keyed by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type CombatantComponentSpec struct {
	Name string `yaml:"name"`
	Team string `yaml:"team"`
}

type HealthComponentSpec struct {
	Max float64 `yaml:"max"`
}

type WeaponComponentSpec struct {
	Name string `yaml:"name"`
}

type LungeComponentSpec struct {
	BaseForce float64 `yaml:"base_force"`
	Duration  float64 `yaml:"duration"`
	Cooldown  float64 `yaml:"cooldown"`
}

type MoverComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Deceleration float64 `yaml:"deceleration"`
	GravityForce float64 `yaml:"gravity_force"`
}

type PhysicsBodyComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type SkeletonComponentSpec struct {
	TorqueGain     float64 `yaml:"torque_gain"`
	AngularDamping float64 `yaml:"angular_damping"`
}

type AIComponentSpec struct {
	DetectionRange  float64 `yaml:"detection_range"`
	LungeRange      float64 `yaml:"lunge_range"`
	DefenseRadius   float64 `yaml:"defense_radius"`
	DefendObjective bool    `yaml:"defend_objective"`
	TurnRate        float64 `yaml:"turn_rate"`
}

type PlayerControlComponentSpec struct {
	LungeAccelFactor float64 `yaml:"lunge_accel_factor"`
}
