package shard

// Config holds every tuning number of the combat core. Durations are in
// seconds, distances in pixels.
type Config struct {
	MultiClickWindow float64    `yaml:"multi_click_window"`
	DoubleClickDelay float64    `yaml:"double_click_delay"`
	ChargeThresholds [3]float64 `yaml:"charge_thresholds"`

	Cooldowns map[AbilityID]float64 `yaml:"cooldowns"`
	Ultimate  UltimateConfig        `yaml:"ultimate"`

	Valor   ValorConfig   `yaml:"valor"`
	Whisper WhisperConfig `yaml:"whisper"`
	Storm   StormConfig   `yaml:"storm"`
	Buffs   BuffConfig    `yaml:"buffs"`
}

type UltimateConfig struct {
	Max      float64               `yaml:"max"`
	Gains    map[AbilityID]float64 `yaml:"gains"`
	KillGain float64               `yaml:"kill_gain"`
}

type ValorConfig struct {
	SwingDamage   int     `yaml:"swing_damage"`
	SwingReach    float64 `yaml:"swing_reach"`
	SwingWidth    float64 `yaml:"swing_width"`
	SwingHeight   float64 `yaml:"swing_height"`
	SwingLifetime float64 `yaml:"swing_lifetime"`

	FollowThroughDamage   int     `yaml:"follow_through_damage"`
	FollowThroughDuration float64 `yaml:"follow_through_duration"`

	FlipDamage      int     `yaml:"flip_damage"`
	FlipRadius      float64 `yaml:"flip_radius"`
	FlipDuration    float64 `yaml:"flip_duration"`
	FlipHitInterval float64 `yaml:"flip_hit_interval"`
	FlipSpins       float64 `yaml:"flip_spins"`
	FlipSteps       int     `yaml:"flip_steps"`

	WaveDamage   int     `yaml:"wave_damage"`
	WaveSpeed    float64 `yaml:"wave_speed"`
	WaveWidth    float64 `yaml:"wave_width"`
	WaveHeight   float64 `yaml:"wave_height"`
	WaveLifetime float64 `yaml:"wave_lifetime"`
	WaveSpacing  float64 `yaml:"wave_spacing"`
}

type WhisperConfig struct {
	StabDamage   int     `yaml:"stab_damage"`
	StabReach    float64 `yaml:"stab_reach"`
	StabWidth    float64 `yaml:"stab_width"`
	StabHeight   float64 `yaml:"stab_height"`
	StabLifetime float64 `yaml:"stab_lifetime"`

	FlurryHits     int     `yaml:"flurry_hits"`
	FlurryInterval float64 `yaml:"flurry_interval"`
	FlurryDamage   int     `yaml:"flurry_damage"`

	FanCount    int     `yaml:"fan_count"`
	FanSpread   float64 `yaml:"fan_spread"`
	FanDuration float64 `yaml:"fan_duration"`

	DaggerDamage   int     `yaml:"dagger_damage"`
	DaggerSpeed    float64 `yaml:"dagger_speed"`
	DaggerRadius   float64 `yaml:"dagger_radius"`
	DaggerLifetime float64 `yaml:"dagger_lifetime"`
	StuckLifetime  float64 `yaml:"stuck_lifetime"`

	MaxRedirects            int     `yaml:"max_redirects"`
	DetectionRange          float64 `yaml:"detection_range"`
	StrikeDistance          float64 `yaml:"strike_distance"`
	StrikeDamage            int     `yaml:"strike_damage"`
	HomingSpeed             float64 `yaml:"homing_speed"`
	MaxHomingTime           float64 `yaml:"max_homing_time"`
	RedirectCooldownPenalty float64 `yaml:"redirect_cooldown_penalty"`
}

type StormConfig struct {
	BoltDamage   int     `yaml:"bolt_damage"`
	BoltRange    float64 `yaml:"bolt_range"`
	BoltRadius   float64 `yaml:"bolt_radius"`
	BoltLifetime float64 `yaml:"bolt_lifetime"`

	SurgeTargets  int     `yaml:"surge_targets"`
	SurgeDamage   int     `yaml:"surge_damage"`
	SurgeDuration float64 `yaml:"surge_duration"`

	TempestDamage   int     `yaml:"tempest_damage"`
	TempestRadius   float64 `yaml:"tempest_radius"`
	TempestInterval float64 `yaml:"tempest_interval"`
	TempestLifetime float64 `yaml:"tempest_lifetime"`
	TempestCastTime float64 `yaml:"tempest_cast_time"`

	ArcDamage             int     `yaml:"arc_damage"`
	ArcRange              float64 `yaml:"arc_range"`
	ChainRange            float64 `yaml:"chain_range"`
	MaxChainArcs          int     `yaml:"max_chain_arcs"`
	ChainDelay            float64 `yaml:"chain_delay"`
	ChainDamageMultiplier float64 `yaml:"chain_damage_multiplier"`
	ChainBuffArcs         int     `yaml:"chain_buff_arcs"`
}

// Stat names a stat an external buff system can modify.
type Stat string

const (
	StatAttack      Stat = "attack"
	StatDamage      Stat = "damage"
	StatMoveSpeed   Stat = "move_speed"
	StatAttackSpeed Stat = "attack_speed"
	StatHaste       Stat = "haste"
)

type StatBuff struct {
	Stat     Stat    `yaml:"stat"`
	Percent  float64 `yaml:"percent"`
	Duration float64 `yaml:"duration"`
}

type ShieldBuff struct {
	Percent  float64 `yaml:"percent"`
	Duration float64 `yaml:"duration"`
}

// KillBuff is a stacking buff granted per kill. Each stack lasts Duration
// from its own acquisition.
type KillBuff struct {
	Stat      Stat    `yaml:"stat"`
	Percent   float64 `yaml:"percent"`
	MaxStacks int     `yaml:"max_stacks"`
	Duration  float64 `yaml:"duration"`
}

type BuffConfig struct {
	FlipShield ShieldBuff            `yaml:"flip_shield"`
	WaveMax    StatBuff              `yaml:"wave_max"`
	ChainHaste StatBuff              `yaml:"chain_haste"`
	Kills      map[WeaponID]KillBuff `yaml:"kills"`
}

// DefaultConfig returns the built-in tuning. Every call returns fresh maps.
func DefaultConfig() Config {
	return Config{
		MultiClickWindow: 0.8,
		DoubleClickDelay: 0.15,
		ChargeThresholds: [3]float64{0.5, 0.8, 1.2},
		Cooldowns: map[AbilityID]float64{
			AbilitySword:       0.35,
			AbilityWave:        1.5,
			AbilityFlip:        3,
			AbilityDaggerMelee: 0.2,
			AbilityDaggerThrow: 0.6,
			AbilityFlurry:      2,
			AbilityFan:         2.5,
			AbilityBolt:        0.5,
			AbilitySurge:       2.5,
			AbilityTempest:     6,
			AbilityArc:         2,
		},
		Ultimate: UltimateConfig{
			Max: 100,
			Gains: map[AbilityID]float64{
				AbilitySword:       2,
				AbilityWave:        5,
				AbilityFlip:        6,
				AbilityDaggerMelee: 1,
				AbilityDaggerThrow: 2,
				AbilityFlurry:      5,
				AbilityFan:         5,
				AbilityRedirect:    3,
				AbilityBolt:        2,
				AbilitySurge:       5,
				AbilityTempest:     8,
				AbilityArc:         4,
			},
			KillGain: 5,
		},
		Valor: ValorConfig{
			SwingDamage:           12,
			SwingReach:            36,
			SwingWidth:            48,
			SwingHeight:           40,
			SwingLifetime:         0.15,
			FollowThroughDamage:   16,
			FollowThroughDuration: 0.35,
			FlipDamage:            20,
			FlipRadius:            50,
			FlipDuration:          0.6,
			FlipHitInterval:       0.2,
			FlipSpins:             1,
			FlipSteps:             12,
			WaveDamage:            10,
			WaveSpeed:             520,
			WaveWidth:             24,
			WaveHeight:            48,
			WaveLifetime:          0.8,
			WaveSpacing:           28,
		},
		Whisper: WhisperConfig{
			StabDamage:              6,
			StabReach:               28,
			StabWidth:               32,
			StabHeight:              16,
			StabLifetime:            0.1,
			FlurryHits:              5,
			FlurryInterval:          0.08,
			FlurryDamage:            5,
			FanCount:                5,
			FanSpread:               40,
			FanDuration:             0.25,
			DaggerDamage:            8,
			DaggerSpeed:             700,
			DaggerRadius:            6,
			DaggerLifetime:          2,
			StuckLifetime:           3,
			MaxRedirects:            3,
			DetectionRange:          320,
			StrikeDistance:          14,
			StrikeDamage:            10,
			HomingSpeed:             900,
			MaxHomingTime:           1,
			RedirectCooldownPenalty: 0.3,
		},
		Storm: StormConfig{
			BoltDamage:            14,
			BoltRange:             360,
			BoltRadius:            18,
			BoltLifetime:          0.2,
			SurgeTargets:          3,
			SurgeDamage:           10,
			SurgeDuration:         0.35,
			TempestDamage:         4,
			TempestRadius:         110,
			TempestInterval:       0.25,
			TempestLifetime:       3,
			TempestCastTime:       0.5,
			ArcDamage:             18,
			ArcRange:              300,
			ChainRange:            220,
			MaxChainArcs:          3,
			ChainDelay:            0.1,
			ChainDamageMultiplier: 0.6,
			ChainBuffArcs:         2,
		},
		Buffs: BuffConfig{
			FlipShield: ShieldBuff{Percent: 25, Duration: 3},
			WaveMax:    StatBuff{Stat: StatAttack, Percent: 15, Duration: 5},
			ChainHaste: StatBuff{Stat: StatHaste, Percent: 10, Duration: 4},
			Kills: map[WeaponID]KillBuff{
				WeaponValor:   {Stat: StatDamage, Percent: 5, MaxStacks: 5, Duration: 8},
				WeaponWhisper: {Stat: StatMoveSpeed, Percent: 4, MaxStacks: 5, Duration: 8},
				WeaponStorm:   {Stat: StatAttackSpeed, Percent: 5, MaxStacks: 5, Duration: 8},
			},
		},
	}
}
