package prefabs

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/shard"
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

// LoadShardsConfig reads shards.yaml over the built-in defaults, so the file
// only needs the numbers it changes.
func LoadShardsConfig() (shard.Config, error) {
	cfg := shard.DefaultConfig()
	data, err := Load("shards.yaml")
	if err != nil {
		return cfg, fmt.Errorf("prefabs: load shards.yaml: %w", err)
	}
	if err := DecodeShardsConfig(data, &cfg); err != nil {
		return shard.DefaultConfig(), err
	}
	return cfg, nil
}

// DecodeShardsConfig unmarshals data onto cfg and validates the result.
func DecodeShardsConfig(data []byte, cfg *shard.Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("prefabs: unmarshal shards.yaml: %w", err)
	}
	if err := validateShards(*cfg); err != nil {
		return fmt.Errorf("prefabs: shards.yaml: %w", err)
	}
	return nil
}

func validateShards(cfg shard.Config) error {
	if cfg.MultiClickWindow <= 0 {
		return fmt.Errorf("multi_click_window must be positive")
	}
	if cfg.DoubleClickDelay < 0 || cfg.DoubleClickDelay > cfg.MultiClickWindow {
		return fmt.Errorf("double_click_delay must be within the click window")
	}
	t := cfg.ChargeThresholds
	if t[0] <= 0 || t[1] <= t[0] || t[2] <= t[1] {
		return fmt.Errorf("charge_thresholds must be positive and ascending, got %v", t)
	}
	for id, d := range cfg.Cooldowns {
		if d < 0 {
			return fmt.Errorf("cooldown %s is negative", id)
		}
	}
	if cfg.Ultimate.Max <= 0 {
		return fmt.Errorf("ultimate.max must be positive")
	}
	if cfg.Whisper.MaxRedirects < 0 {
		return fmt.Errorf("whisper.max_redirects is negative")
	}
	if cfg.Storm.MaxChainArcs < 0 {
		return fmt.Errorf("storm.max_chain_arcs is negative")
	}
	for w := range cfg.Buffs.Kills {
		if !w.Valid() {
			return fmt.Errorf("buffs.kills: %w: %q", shard.ErrUnknownWeapon, w)
		}
	}
	return nil
}

type PlayerSpec struct {
	Name              string       `yaml:"name"`
	Health            int          `yaml:"health"`
	MoveSpeed         float64      `yaml:"move_speed"`
	JumpSpeed         float64      `yaml:"jump_speed"`
	ClimbSpeed        float64      `yaml:"climb_speed"`
	SpecialMoveFactor float64      `yaml:"special_move_factor"`
	CoyoteFrames      int          `yaml:"coyote_frames"`
	JumpBufferFrames  int          `yaml:"jump_buffer_frames"`
	Collider          ColliderSpec `yaml:"collider"`
	// Weapons are equipped in order at spawn.
	Weapons []string `yaml:"weapons"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Movement returns the player's movement tuning.
func (s PlayerSpec) Movement() component.Player {
	return component.Player{
		MoveSpeed:         s.MoveSpeed,
		JumpSpeed:         s.JumpSpeed,
		ClimbSpeed:        s.ClimbSpeed,
		SpecialMoveFactor: s.SpecialMoveFactor,
		CoyoteFrames:      s.CoyoteFrames,
		JumpBufferFrames:  s.JumpBufferFrames,
	}
}

// Loadout parses the starting weapons.
func (s PlayerSpec) Loadout() ([]shard.WeaponID, error) {
	out := make([]shard.WeaponID, 0, len(s.Weapons))
	for _, name := range s.Weapons {
		id, err := shard.ParseWeapon(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: player.yaml weapons: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

type DummySpec struct {
	Name        string       `yaml:"name"`
	Script      string       `yaml:"script"`
	Health      int          `yaml:"health"`
	MoveSpeed   float64      `yaml:"move_speed"`
	JumpSpeed   float64      `yaml:"jump_speed"`
	FollowRange float64      `yaml:"follow_range"`
	AttackRange float64      `yaml:"attack_range"`
	Attack      AttackSpec   `yaml:"attack"`
	CorpseTime  float64      `yaml:"corpse_time"`
	Respawn     bool         `yaml:"respawn"`
	Collider    ColliderSpec `yaml:"collider"`
}

type AttackSpec struct {
	Damage   int     `yaml:"damage"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Lifetime float64 `yaml:"lifetime"`
	Cooldown float64 `yaml:"cooldown"`
}

func LoadDummySpec(filename string) (*DummySpec, error) {
	if filename == "" {
		filename = "dummy.yaml"
	}
	spec, err := LoadSpec[DummySpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ArenaSpec struct {
	Name       string      `yaml:"name"`
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Background *YAMLColor  `yaml:"background"`
	Terrain    []RectSpec  `yaml:"terrain"`
	Ladders    []RectSpec  `yaml:"ladders"`
	Player     PointSpec   `yaml:"player"`
	Dummies    []SpawnSpec `yaml:"dummies"`
}

type RectSpec struct {
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

// BB returns the rect as a bounding box; Y grows downward.
func (r RectSpec) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

type SpawnSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Prefab string  `yaml:"prefab"`
}

// LoadArenaSpec loads an arena; an empty name loads arena.yaml.
func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	if filename == "" {
		filename = "arena.yaml"
	}
	if filepath.Ext(filename) == "" {
		filename += ".yaml"
	}
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: size must be positive", filename)
	}
	return &spec, nil
}

// LadderComponents converts the arena's ladder rects.
func (a ArenaSpec) LadderComponents() []component.Ladder {
	out := make([]component.Ladder, 0, len(a.Ladders))
	for _, r := range a.Ladders {
		out = append(out, component.Ladder{Bounds: r.BB()})
	}
	return out
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
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

// Or returns the colour, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
