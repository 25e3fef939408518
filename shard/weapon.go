package shard

import "strings"

// WeaponID identifies an equippable shard.
type WeaponID string

const (
	WeaponNone    WeaponID = ""
	WeaponValor   WeaponID = "valor"
	WeaponWhisper WeaponID = "whisper"
	WeaponStorm   WeaponID = "storm"
)

// Weapons lists every equippable shard in pickup order.
var Weapons = []WeaponID{WeaponValor, WeaponWhisper, WeaponStorm}

// Name returns the display name of the weapon.
func (w WeaponID) Name() string {
	switch w {
	case WeaponValor:
		return "Valor"
	case WeaponWhisper:
		return "Whisper"
	case WeaponStorm:
		return "Storm"
	default:
		return "None"
	}
}

func (w WeaponID) Valid() bool {
	switch w {
	case WeaponValor, WeaponWhisper, WeaponStorm:
		return true
	}
	return false
}

// ParseWeapon accepts a weapon id or display name, case-insensitively.
func ParseWeapon(s string) (WeaponID, error) {
	w := WeaponID(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return WeaponNone, ErrUnknownWeapon
	}
	return w, nil
}

// AbilityID identifies an ability for cooldown and ultimate bookkeeping.
type AbilityID string

const (
	AbilitySword       AbilityID = "sword"
	AbilityWave        AbilityID = "wave"
	AbilityFlip        AbilityID = "flip"
	AbilityDaggerMelee AbilityID = "dagger_melee"
	AbilityDaggerThrow AbilityID = "dagger_throw"
	AbilityFlurry      AbilityID = "flurry"
	AbilityFan         AbilityID = "fan"
	AbilityRedirect    AbilityID = "redirect"
	AbilityBolt        AbilityID = "bolt"
	AbilitySurge       AbilityID = "surge"
	AbilityTempest     AbilityID = "tempest"
	AbilityArc         AbilityID = "arc"
	AbilityChain       AbilityID = "chain"
)

// Gesture is the classified input that produced a fire.
type Gesture int

const (
	GestureSingle Gesture = iota
	GestureDouble
	GestureTriple
	GestureHold
	GestureCharge
	GestureSecondary
)

func (g Gesture) String() string {
	switch g {
	case GestureSingle:
		return "single"
	case GestureDouble:
		return "double"
	case GestureTriple:
		return "triple"
	case GestureHold:
		return "hold"
	case GestureCharge:
		return "charge"
	case GestureSecondary:
		return "secondary"
	}
	return "unknown"
}

// FireEvent describes one successful ability fire.
type FireEvent struct {
	Weapon  WeaponID
	Ability AbilityID
	Gesture Gesture
	// Level is the charge level for charged fires, otherwise 0.
	Level int
	// Units is how many effects or projectiles the fire produced.
	Units int
	Time  float64
}
