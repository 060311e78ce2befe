package voicing

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/keysig"
)

var (
	ErrInvalidVoicingPattern = errors.New("invalid voicing pattern")
	ErrInvalidIndex          = keysig.ErrInvalidIndex
)

// ChromaticOffset is added to the string index when the harp plays
// chromatically.
const ChromaticOffset = 24

// Modifiers are the per-chord buttons held alongside the fundamental.
type Modifiers struct {
	Slashed bool
	// SlashRoot is the button sounded instead of the fundamental on the
	// voices whose degree equals SlashTrigger.
	SlashRoot    uint8
	SlashTrigger uint8
	Sharp        bool
	// FlatModifier turns the sharp into a flat. It does nothing on its own.
	FlatModifier bool
}

// accidental is the semitone adjustment contributed by the sharp and flat
// buttons.
func (m Modifiers) accidental() int {
	if !m.Sharp {
		return 0
	}
	if m.FlatModifier {
		return -1
	}
	return 1
}

type Params struct {
	Chord       chord.Definition
	Pattern     []uint8
	Key         keysig.Key
	Shift       uint8
	Fundamental uint8
	Modifiers
}

// Decode splits a pattern value into octave (tens) and chord degree (units).
func Decode(level uint8) (octave, degree int, err error) {
	octave = int(level / 10)
	degree = int(level % 10)
	if degree >= chord.Size {
		return 0, 0, fmt.Errorf("%w: level %d has degree %d", ErrInvalidVoicingPattern, level, degree)
	}
	return octave, degree, nil
}

// ResolvePitch computes the note for voice index. A slashed voice sounds the
// slash root alone; every other voice sounds the fundamental plus the chord
// offset for its degree. The result wraps modulo 256.
func ResolvePitch(index int, p Params) (uint8, error) {
	if index < 0 || index >= len(p.Pattern) {
		return 0, fmt.Errorf("%w: voice %d of %d", ErrInvalidIndex, index, len(p.Pattern))
	}
	octave, degree, err := Decode(p.Pattern[index])
	if err != nil {
		return 0, err
	}

	var note int
	if p.Slashed && degree == int(p.SlashTrigger) {
		root, err := keysig.ButtonPitch(p.Key, p.Shift, keysig.Button(p.SlashRoot))
		if err != nil {
			return 0, fmt.Errorf("slash root: %w", err)
		}
		note = 12*octave + root + p.accidental()
	} else {
		root, err := keysig.ButtonPitch(p.Key, p.Shift, keysig.Button(p.Fundamental))
		if err != nil {
			return 0, fmt.Errorf("fundamental: %w", err)
		}
		offset, err := p.Chord.Offset(degree)
		if err != nil {
			return 0, err
		}
		note = 12*octave + root + p.accidental() + offset
	}
	return uint8(note), nil
}

// ResolveSimple is ResolvePitch in the key of C with no frame shift.
func ResolveSimple(index int, p Params) (uint8, error) {
	p.Key = keysig.C
	p.Shift = 0
	return ResolvePitch(index, p)
}

// ResolveHarpPitch resolves one harp string. In chromatic mode the chord,
// key and pattern are ignored and strings map linearly to pitch.
func ResolveHarpPitch(index int, p Params, chromatic bool) (uint8, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: string %d", ErrInvalidIndex, index)
	}
	if chromatic {
		return uint8(index + ChromaticOffset), nil
	}
	return ResolvePitch(index, p)
}

// ResolveChord resolves every voice of the pattern.
func ResolveChord(p Params) ([]uint8, error) {
	res := make([]uint8, len(p.Pattern))
	for i := range p.Pattern {
		pitch, err := ResolvePitch(i, p)
		if err != nil {
			return nil, err
		}
		res[i] = pitch
	}
	return res, nil
}

// ResolveHarp resolves strings 0..count-1. Outside chromatic mode the
// pattern must cover every string.
func ResolveHarp(p Params, chromatic bool, count int) ([]uint8, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d strings", ErrInvalidIndex, count)
	}
	res := make([]uint8, count)
	for i := range res {
		pitch, err := ResolveHarpPitch(i, p, chromatic)
		if err != nil {
			return nil, err
		}
		res[i] = pitch
	}
	return res, nil
}
