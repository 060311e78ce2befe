package config

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/keysig"
	"github.com/jsphweid/chordharp/voicing"
)

// Unset marks a slot the controller did not send.
const Unset int16 = -1

// Slot positions in a controller frame. Pattern values start at
// SlotPattern and run until the first unset slot.
const (
	SlotChord = iota
	SlotFundamental
	SlotSlashRoot
	SlotSlashTrigger
	SlotSlashed
	SlotSharp
	SlotFlatModifier
	SlotKey
	SlotShift
	SlotChromatic
	SlotPattern
)

var slotNames = [...]string{
	SlotChord:        "chord",
	SlotFundamental:  "fundamental",
	SlotSlashRoot:    "slash_root",
	SlotSlashTrigger: "slash_trigger",
	SlotSlashed:      "slashed",
	SlotSharp:        "sharp",
	SlotFlatModifier: "flat_modifier",
	SlotKey:          "key",
	SlotShift:        "shift",
	SlotChromatic:    "chromatic",
}

// Frame is one decoded controller state.
type Frame struct {
	ChordType chord.Type
	Chromatic bool
	Params    voicing.Params
}

func SlotName(slot int) string {
	if slot >= SlotPattern {
		return fmt.Sprintf("pattern[%d]", slot-SlotPattern)
	}
	return slotNames[slot]
}

func invalid(slot int, v int16, rule string) error {
	return fault.New(
		fmt.Sprintf("slot %d (%s) = %d: %s", slot, SlotName(slot), v, rule),
		ftag.With(ftag.InvalidArgument),
	)
}

// get returns the slot value, or def when the slot is missing or unset.
func get(values []int16, slot int, def int16) int16 {
	if slot >= len(values) || values[slot] == Unset {
		return def
	}
	return values[slot]
}

func ranged(values []int16, slot int, def, limit int16) (uint8, error) {
	v := get(values, slot, def)
	if v < 0 || v > limit {
		return 0, invalid(slot, v, fmt.Sprintf("must be within 0..%d", limit))
	}
	return uint8(v), nil
}

func flag(values []int16, slot int) (bool, error) {
	v, err := ranged(values, slot, 0, 1)
	return v == 1, err
}

// Decode range-checks a slot array and builds the resolver parameters from
// it. Missing scalar slots default to zero.
func Decode(values []int16) (Frame, error) {
	var f Frame
	var err error
	fields := []struct {
		slot  int
		limit int16
		dst   *uint8
	}{
		{SlotFundamental, keysig.NumButtons - 1, &f.Params.Fundamental},
		{SlotSlashRoot, keysig.NumButtons - 1, &f.Params.SlashRoot},
		{SlotSlashTrigger, chord.Size - 1, &f.Params.SlashTrigger},
		{SlotShift, keysig.MaxShift, &f.Params.Shift},
	}
	for _, fld := range fields {
		if *fld.dst, err = ranged(values, fld.slot, 0, fld.limit); err != nil {
			return Frame{}, err
		}
	}

	typ, err := ranged(values, SlotChord, 0, int16(len(chord.Types())-1))
	if err != nil {
		return Frame{}, err
	}
	f.ChordType = chord.Type(typ)
	if f.Params.Chord, err = f.ChordType.Definition(); err != nil {
		return Frame{}, fault.Wrap(err, ftag.With(ftag.InvalidArgument))
	}

	key, err := ranged(values, SlotKey, 0, keysig.NumKeys-1)
	if err != nil {
		return Frame{}, err
	}
	f.Params.Key = keysig.Key(key)

	flags := []struct {
		slot int
		dst  *bool
	}{
		{SlotSlashed, &f.Params.Slashed},
		{SlotSharp, &f.Params.Sharp},
		{SlotFlatModifier, &f.Params.FlatModifier},
		{SlotChromatic, &f.Chromatic},
	}
	for _, fl := range flags {
		if *fl.dst, err = flag(values, fl.slot); err != nil {
			return Frame{}, err
		}
	}

	for slot := SlotPattern; slot < len(values) && values[slot] != Unset; slot++ {
		v := values[slot]
		if v < 0 || v > 255 {
			return Frame{}, invalid(slot, v, "must be within 0..255")
		}
		if _, _, err := voicing.Decode(uint8(v)); err != nil {
			return Frame{}, fault.Wrap(err,
				fmsg.With(fmt.Sprintf("slot %d (%s)", slot, SlotName(slot))),
				ftag.With(ftag.InvalidArgument),
			)
		}
		f.Params.Pattern = append(f.Params.Pattern, uint8(v))
	}
	return f, nil
}

// Encode is the inverse of Decode, producing a line the controller would
// send for f.
func Encode(f Frame) string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	p := f.Params
	line := fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d,%d,%d,%d",
		f.ChordType, p.Fundamental, p.SlashRoot, p.SlashTrigger,
		b(p.Slashed), b(p.Sharp), b(p.FlatModifier), p.Key, p.Shift, b(f.Chromatic))
	for _, level := range p.Pattern {
		line += fmt.Sprintf(",%d", level)
	}
	return line
}
