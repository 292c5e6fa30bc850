package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads a YAML prefab into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsSpec configures the engine and the fixed-step driver.
type PhysicsSpec struct {
	Gravity     VectorSpec `yaml:"gravity"`
	MaxSpeed    float64    `yaml:"max_speed"`
	TicksPerSec int        `yaml:"ticks_per_second"`
	// WorldBounds overrides the bounds derived from the level.
	WorldBounds *RectSpec `yaml:"world_bounds"`
	Debug       DebugSpec `yaml:"debug"`
}

type DebugSpec struct {
	Enabled      bool       `yaml:"enabled"`
	BodyColor    *YAMLColor `yaml:"body_color"`
	SolidColor   *YAMLColor `yaml:"solid_color"`
	TriggerColor *YAMLColor `yaml:"trigger_color"`
	ContactColor *YAMLColor `yaml:"contact_color"`
	TileColor    *YAMLColor `yaml:"tile_color"`
}

func LoadPhysicsSpec() (*PhysicsSpec, error) {
	data, err := Load("physics.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load physics.yaml: %w", err)
	}
	var spec PhysicsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal physics.yaml: %w", err)
	}
	return &spec, nil
}

// BodySpec describes a simulated entity: where it starts, its collider and
// its body parameters.
type BodySpec struct {
	Name      string        `yaml:"name"`
	Tag       string        `yaml:"tag"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Body      BodyParams    `yaml:"body"`
	Player    *PlayerSpec   `yaml:"player"`
	Script    string        `yaml:"script"`
}

func LoadBodySpec(filename string) (*BodySpec, error) {
	spec, err := LoadSpec[BodySpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	return &spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// ColliderSpec uses Width/Height for "aabb" and Radius for "circle".
// Active defaults to true when omitted.
type ColliderSpec struct {
	Shape     string  `yaml:"shape"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Radius    float64 `yaml:"radius"`
	Alignment string  `yaml:"alignment"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	Trigger   bool    `yaml:"trigger"`
	Active    *bool   `yaml:"active"`
}

func (c ColliderSpec) IsActive() bool {
	return c.Active == nil || *c.Active
}

// BodyParams holds the PhysicsBody fields. Enabled defaults to true.
type BodyParams struct {
	Mass       float64    `yaml:"mass"`
	UseGravity bool       `yaml:"gravity"`
	Enabled    *bool      `yaml:"enabled"`
	Velocity   VectorSpec `yaml:"velocity"`
}

func (b BodyParams) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

type PlayerSpec struct {
	MoveSpeed  float64 `yaml:"move_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	ClimbSpeed float64 `yaml:"climb_speed"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed color, or fallback when c was not set.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
