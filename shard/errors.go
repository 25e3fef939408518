package shard

import "errors"

var (
	// ErrNoEmptySlot is returned by Equip when both slots are taken. Callers
	// are expected to offer a swap instead.
	ErrNoEmptySlot = errors.New("shard: no empty slot")
	// ErrNoValidTarget means an ability that needs a target found none.
	ErrNoValidTarget = errors.New("shard: no valid target")
	// ErrCooldownActive means the ability is still cooling down.
	ErrCooldownActive = errors.New("shard: cooldown active")
	// ErrMaxRedirectsReached is returned for redirect requests on an expired
	// projectile.
	ErrMaxRedirectsReached = errors.New("shard: max redirects reached")
	// ErrOwnerDestroyed means the owner or the spawned object vanished.
	ErrOwnerDestroyed = errors.New("shard: owner destroyed")

	ErrDuplicateWeapon = errors.New("shard: weapon already equipped")
	ErrInvalidSlot     = errors.New("shard: invalid slot")
	ErrUnknownWeapon   = errors.New("shard: unknown weapon")
	ErrAlreadyHoming   = errors.New("shard: projectile already homing")
	ErrProjectileStuck = errors.New("shard: projectile stuck")
)
