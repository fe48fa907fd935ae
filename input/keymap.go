package input

import "fmt"

// KeyType is the kernel key type stored in the high byte of a keymap value
// (linux/keyboard.h KT_*).
type KeyType uint8

const (
	KTLatin KeyType = iota
	KTFn
	KTSpec
	KTPad
	KTDead
	KTCons
	KTCur
	KTShift
	KTMeta
	KTASCII
	KTLock
	KTLetter
	KTSLock
	KTDead2
	KTBrl
)

var keyTypeNames = [...]string{
	KTLatin:  "latin",
	KTFn:     "fn",
	KTSpec:   "spec",
	KTPad:    "pad",
	KTDead:   "dead",
	KTCons:   "cons",
	KTCur:    "cur",
	KTShift:  "shift",
	KTMeta:   "meta",
	KTASCII:  "ascii",
	KTLock:   "lock",
	KTLetter: "letter",
	KTSLock:  "slock",
	KTDead2:  "dead2",
	KTBrl:    "brl",
}

func (t KeyType) String() string {
	if int(t) < len(keyTypeNames) {
		return keyTypeNames[t]
	}
	return fmt.Sprintf("kt(%d)", uint8(t))
}

// KeyValue is a decoded kernel keymap entry.
type KeyValue struct {
	Type  KeyType
	Value uint8
}

// DecodeKeyValue splits a raw kb_value into its type and value.
func DecodeKeyValue(v uint16) KeyValue {
	return KeyValue{Type: KeyType(v >> 8), Value: uint8(v)}
}

// Raw encodes kv back into kb_value form.
func (kv KeyValue) Raw() uint16 {
	return uint16(kv.Type)<<8 | uint16(kv.Value)
}

func (kv KeyValue) String() string {
	return fmt.Sprintf("%s:%#02x", kv.Type, kv.Value)
}
