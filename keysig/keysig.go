// Package keysig maps the seven diatonic buttons of the instrument to pitch
// offsets under a key signature and a circular frame shift.
package keysig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIndex = errors.New("invalid index")
	ErrUnknownKey   = errors.New("unknown key signature")
)

// Button is a diatonic button in hardware order.
type Button uint8

const (
	ButtonB Button = iota
	ButtonE
	ButtonA
	ButtonD
	ButtonG
	ButtonC
	ButtonF
)

const NumButtons = 7

// MaxShift is the largest frame shift. A shift of n moves the n lowest scale
// degrees (C first) one octave up.
const MaxShift = 6

// offsets from C, hardware order
var baseOffsets = [NumButtons]int{11, 4, 9, 2, 7, 0, 5}

// scale position with C=0 ... B=6, hardware order
var musicalIndex = [NumButtons]uint8{6, 2, 5, 1, 4, 0, 3}

var buttonNames = [NumButtons]string{"B", "E", "A", "D", "G", "C", "F"}

// CircleOfFifths is the key-free root lookup indexed by fundamental. It holds
// the same values as the button offsets in C.
var CircleOfFifths = [NumButtons]uint8{11, 4, 9, 2, 7, 0, 5}

// RootPitch returns the key-free offset of a fundamental index.
func RootPitch(index uint8) (int, error) {
	if int(index) >= len(CircleOfFifths) {
		return 0, fmt.Errorf("%w: root %d", ErrInvalidIndex, index)
	}
	return int(CircleOfFifths[index]), nil
}

func (b Button) Valid() bool { return b < NumButtons }

// MusicalIndex is the button's position in the C major scale.
func (b Button) MusicalIndex() uint8 {
	if !b.Valid() {
		return 0
	}
	return musicalIndex[b]
}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("button(%d)", uint8(b))
	}
	return buttonNames[b]
}

func ParseButton(s string) (Button, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range buttonNames {
		if n == name {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("%w: button %q", ErrInvalidIndex, s)
}

// Key is a key signature. The first six carry 0-5 sharps, the last six
// carry 1-6 flats.
type Key uint8

const (
	C Key = iota
	G
	D
	A
	E
	B
	F
	BFlat
	EFlat
	AFlat
	DFlat
	GFlat
)

const NumKeys = 12

var accidentalCounts = [NumKeys]int{0, 1, 2, 3, 4, 5, 1, 2, 3, 4, 5, 6}

var keyNames = [NumKeys]string{"C", "G", "D", "A", "E", "B", "F", "Bb", "Eb", "Ab", "Db", "Gb"}

// Row n-1 lists the buttons raised (or lowered) in a key with n accidentals.
var sharpButtons = [6][]Button{
	{ButtonF},
	{ButtonF, ButtonC},
	{ButtonF, ButtonC, ButtonG},
	{ButtonF, ButtonC, ButtonG, ButtonD},
	{ButtonF, ButtonC, ButtonG, ButtonD, ButtonA},
	{ButtonF, ButtonC, ButtonG, ButtonD, ButtonA, ButtonE},
}

var flatButtons = [6][]Button{
	{ButtonB},
	{ButtonB, ButtonE},
	{ButtonB, ButtonE, ButtonA},
	{ButtonB, ButtonE, ButtonA, ButtonD},
	{ButtonB, ButtonE, ButtonA, ButtonD, ButtonG},
	{ButtonB, ButtonE, ButtonA, ButtonD, ButtonG, ButtonC},
}

func (k Key) Valid() bool { return k < NumKeys }

// IsFlat reports whether k belongs to the flat family.
func (k Key) IsFlat() bool { return k >= F && k.Valid() }

// Accidentals returns the number of sharps or flats in k.
func (k Key) Accidentals() int {
	if !k.Valid() {
		return 0
	}
	return accidentalCounts[k]
}

// AffectedButtons returns the buttons k alters, in the order accidentals are
// added to the signature.
func (k Key) AffectedButtons() []Button {
	n := k.Accidentals()
	if n == 0 {
		return nil
	}
	row := sharpButtons[n-1]
	if k.IsFlat() {
		row = flatButtons[n-1]
	}
	res := make([]Button, len(row))
	copy(res, row)
	return res
}

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("key(%d)", uint8(k))
	}
	return keyNames[k]
}

// ParseKey accepts names such as "G", "bb", "B♭" or "Eb".
func ParseKey(s string) (Key, error) {
	name := strings.TrimSpace(s)
	name = strings.ReplaceAll(name, "♭", "b")
	if name == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	name = strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

func Keys() []Key {
	res := make([]Key, NumKeys)
	for i := range res {
		res[i] = Key(i)
	}
	return res
}

// ButtonPitch returns the offset from C of button under key with the given
// frame shift. The result is not wrapped into an octave: buttons below the
// shift come out 12 higher and flattened C goes negative.
func ButtonPitch(key Key, shift uint8, button Button) (int, error) {
	if !button.Valid() {
		return 0, fmt.Errorf("%w: button %d", ErrInvalidIndex, button)
	}
	if !key.Valid() {
		return 0, fmt.Errorf("%w: key %d", ErrInvalidIndex, key)
	}
	if shift > MaxShift {
		return 0, fmt.Errorf("%w: shift %d", ErrInvalidIndex, shift)
	}

	note := baseOffsets[button]
	if musicalIndex[button] < shift {
		note += 12
	}

	step := 1
	if key.IsFlat() {
		step = -1
	}
	for _, b := range key.AffectedButtons() {
		if b == button {
			note += step
		}
	}
	return note, nil
}
