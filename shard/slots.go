package shard

// SlotCount is the number of weapon slots.
const SlotCount = 2

// Slots holds the equipped weapons. A weapon appears in at most one slot.
type Slots struct {
	weapons [SlotCount]WeaponID
	active  int
}

// Equip puts id into the first empty slot and returns its index. If the
// active slot was empty the new weapon becomes active.
func (s *Slots) Equip(id WeaponID) (int, error) {
	if s == nil {
		return -1, ErrInvalidSlot
	}
	if !id.Valid() {
		return -1, ErrUnknownWeapon
	}
	if i, ok := s.Index(id); ok {
		return i, ErrDuplicateWeapon
	}
	for i, w := range s.weapons {
		if w != WeaponNone {
			continue
		}
		s.weapons[i] = id
		if s.weapons[s.active] == WeaponNone {
			s.active = i
		}
		return i, nil
	}
	return -1, ErrNoEmptySlot
}

// Swap replaces the weapon in slot with id and returns the weapon it
// replaced.
func (s *Slots) Swap(id WeaponID, slot int) (WeaponID, error) {
	if s == nil || slot < 0 || slot >= SlotCount {
		return WeaponNone, ErrInvalidSlot
	}
	if !id.Valid() {
		return WeaponNone, ErrUnknownWeapon
	}
	if i, ok := s.Index(id); ok {
		if i == slot {
			return id, nil
		}
		return WeaponNone, ErrDuplicateWeapon
	}
	prev := s.weapons[slot]
	s.weapons[slot] = id
	return prev, nil
}

// SetActive selects the active slot.
func (s *Slots) SetActive(slot int) error {
	if s == nil || slot < 0 || slot >= SlotCount {
		return ErrInvalidSlot
	}
	s.active = slot
	return nil
}

// Index returns the slot holding id.
func (s *Slots) Index(id WeaponID) (int, bool) {
	if s == nil || id == WeaponNone {
		return -1, false
	}
	for i, w := range s.weapons {
		if w == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Slots) At(slot int) WeaponID {
	if s == nil || slot < 0 || slot >= SlotCount {
		return WeaponNone
	}
	return s.weapons[slot]
}

func (s *Slots) Active() WeaponID {
	if s == nil {
		return WeaponNone
	}
	return s.weapons[s.active]
}

func (s *Slots) ActiveIndex() int {
	if s == nil {
		return 0
	}
	return s.active
}

// Full reports whether no slot is empty.
func (s *Slots) Full() bool {
	if s == nil {
		return false
	}
	for _, w := range s.weapons {
		if w == WeaponNone {
			return false
		}
	}
	return true
}
