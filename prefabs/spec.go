package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	PlayerSpecFile    = "player.yaml"
	BubbleSpecFile    = "bubble.yaml"
	SpriteSetSpecFile = "sprites.yaml"
)

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

// PlayerSpec describes the worm: its parts and its motion tuning.
type PlayerSpec struct {
	Name            string          `yaml:"name"`
	FollowFactor    float64         `yaml:"follow_factor"`
	MinGap          float64         `yaml:"min_gap"`
	MaxGap          float64         `yaml:"max_gap"`
	SpeedDecay      float64         `yaml:"speed_decay"`
	SpeedFloor      float64         `yaml:"speed_floor"`
	Impulse         float64         `yaml:"impulse"`
	ImpulseCap      float64         `yaml:"impulse_cap"`
	CollisionRadius float64         `yaml:"collision_radius"`
	Spawn           RectSpec        `yaml:"spawn"`
	Segments        []SegmentSpec   `yaml:"segments"`
	RenderLayer     RenderLayerSpec `yaml:"render_layer"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SegmentSpec struct {
	Sprite  string  `yaml:"sprite"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// BubbleSpec describes bubble spawning and shrinking.
type BubbleSpec struct {
	Name            string          `yaml:"name"`
	Sprite          string          `yaml:"sprite"`
	ShrinkDuration  float64         `yaml:"shrink_duration"`
	ShrinkTo        float64         `yaml:"shrink_to"`
	SpinMax         float64         `yaml:"spin_max"`
	SpawnDelayMin   float64         `yaml:"spawn_delay_min"`
	SpawnDelayMax   float64         `yaml:"spawn_delay_max"`
	Field           RectSpec        `yaml:"field"`
	PlacementScript string          `yaml:"placement_script"`
	RenderLayer     RenderLayerSpec `yaml:"render_layer"`
}

func LoadBubbleSpec() (*BubbleSpec, error) {
	spec, err := LoadSpec[BubbleSpec](BubbleSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// SpriteSetSpec lists the procedural circle sprites the renderer registers.
type SpriteSetSpec struct {
	Background *YAMLColor   `yaml:"background"`
	Sprites    []CircleSpec `yaml:"sprites"`
}

func LoadSpriteSetSpec() (*SpriteSetSpec, error) {
	spec, err := LoadSpec[SpriteSetSpec](SpriteSetSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CircleSpec struct {
	Name   string     `yaml:"name"`
	Radius float64    `yaml:"radius"`
	Fill   *YAMLColor `yaml:"fill"`
	Stroke *YAMLColor `yaml:"stroke"`
}

type RectSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

// YAMLColor accepts a CSS colour name ("lightskyblue") or hex ("#rrggbb",
// "#rrggbbaa").
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
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
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	g, err := parse(2)
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	b, err := parse(4)
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	a := uint8(0xff)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
