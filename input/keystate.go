package input

// KeyState tracks which keycodes are held and which modifier slots are active
// while the console is in medium-raw mode.
type KeyState struct {
	down      [NRKeys]bool
	shiftDown [NRShift]uint8
	shift     uint16
	downNum   uint16
}

// Reset clears all key and modifier state.
func (k *KeyState) Reset() {
	*k = KeyState{}
}

// Press records a down or up event for code. changed reports whether the
// key's down state flipped; repeat is a down event for a key already down.
func (k *KeyState) Press(code uint16, down bool) (changed, repeat bool) {
	if int(code) >= NRKeys {
		return false, false
	}
	was := k.down[code]
	changed = down != was
	repeat = down && was
	if changed {
		if down {
			k.downNum++
		} else {
			k.downNum--
		}
	}
	k.down[code] = down
	return changed, repeat
}

// Shift updates the press counter of modifier slot and recomputes the
// aggregate bitmask. CAPSSHIFT shares the SHIFT slot.
func (k *KeyState) Shift(slot uint8, down bool) {
	if slot >= NRShift {
		return
	}
	if slot == KGCapsShift {
		slot = KGShift
	}
	if down {
		k.shiftDown[slot]++
	} else if k.shiftDown[slot] > 0 {
		k.shiftDown[slot]--
	}
	if k.shiftDown[slot] > 0 {
		k.shift |= 1 << slot
	} else {
		k.shift &^= 1 << slot
	}
}

// ShiftState returns the modifier bitmask, which is also the keymap table index.
func (k *KeyState) ShiftState() uint16 { return k.shift }

// DownCount returns the number of keys currently held.
func (k *KeyState) DownCount() int { return int(k.downNum) }

// IsDown reports whether code is held.
func (k *KeyState) IsDown(code uint16) bool {
	return int(code) < NRKeys && k.down[code]
}

// Held returns the held keycodes in ascending order.
func (k *KeyState) Held() []uint16 {
	if k.downNum == 0 {
		return nil
	}
	held := make([]uint16, 0, k.downNum)
	for code, d := range k.down {
		if !d {
			continue
		}
		held = append(held, uint16(code))
		if len(held) == int(k.downNum) {
			break
		}
	}
	return held
}

// ReleaseCode encodes a medium-raw release event for code. Codes below 128
// fit in one byte; larger codes use the escape form.
func ReleaseCode(code uint16) []byte {
	if code < 0x80 {
		return []byte{byte(code) | 0x80}
	}
	return []byte{0x80, 0x80 | byte(code>>7&0x7f), 0x80 | byte(code&0x7f)}
}
