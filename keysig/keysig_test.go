package keysig

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allButtons = []Button{ButtonB, ButtonE, ButtonA, ButtonD, ButtonG, ButtonC, ButtonF}

func TestKeyOfCWithoutShiftIsCircleOfFifths(t *testing.T) {
	for _, b := range allButtons {
		got, err := ButtonPitch(C, 0, b)
		require.NoError(t, err)

		root, err := RootPitch(uint8(b))
		require.NoError(t, err)
		assert.Equal(t, root, got, b.String())
	}
}

func TestShiftPromotesLowerScaleDegrees(t *testing.T) {
	// shift 3 lifts C, D and E, leaves F, G, A and B alone
	want := map[Button]int{
		ButtonC: 12,
		ButtonD: 14,
		ButtonE: 16,
		ButtonF: 5,
		ButtonG: 7,
		ButtonA: 9,
		ButtonB: 11,
	}
	for b, w := range want {
		got, err := ButtonPitch(C, 3, b)
		require.NoError(t, err)
		assert.Equal(t, w, got, b.String())
	}
}

func TestShiftOnlyEverAddsOneOctave(t *testing.T) {
	for _, b := range allButtons {
		base, _ := ButtonPitch(C, 0, b)
		for shift := uint8(0); shift <= MaxShift; shift++ {
			got, err := ButtonPitch(C, shift, b)
			require.NoError(t, err)
			if b.MusicalIndex() < shift {
				assert.Equal(t, base+12, got)
			} else {
				assert.Equal(t, base, got)
			}
		}
	}
}

func TestSharpKeys(t *testing.T) {
	cases := []struct {
		key    Key
		button Button
		want   int
	}{
		{G, ButtonF, 6},
		{G, ButtonC, 0},
		{D, ButtonC, 1},
		{A, ButtonG, 8},
		{E, ButtonD, 3},
		{B, ButtonA, 10},
		{B, ButtonE, 4},
		{B, ButtonB, 11},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v %v", c.key, c.button), func(t *testing.T) {
			got, err := ButtonPitch(c.key, 0, c.button)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFlatKeys(t *testing.T) {
	cases := []struct {
		key    Key
		button Button
		want   int
	}{
		{F, ButtonB, 10},
		{F, ButtonE, 4},
		{BFlat, ButtonE, 3},
		{EFlat, ButtonA, 8},
		{AFlat, ButtonD, 1},
		{DFlat, ButtonG, 6},
		{GFlat, ButtonC, -1},
		{GFlat, ButtonF, 5},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v %v", c.key, c.button), func(t *testing.T) {
			got, err := ButtonPitch(c.key, 0, c.button)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestShiftAndAccidentalCombine(t *testing.T) {
	// Cb lifted an octave
	got, err := ButtonPitch(GFlat, 1, ButtonC)
	require.NoError(t, err)
	assert.Equal(t, 11, got)

	// F# lifted an octave
	got, err = ButtonPitch(G, 4, ButtonF)
	require.NoError(t, err)
	assert.Equal(t, 18, got)
}

func TestAccidentalCountMatchesAffectedButtons(t *testing.T) {
	for _, k := range Keys() {
		assert.Len(t, k.AffectedButtons(), k.Accidentals(), k.String())
	}
	assert.Empty(t, C.AffectedButtons())
}

func TestAccidentalsGrowByOneButtonPerKey(t *testing.T) {
	families := [][]Key{
		{C, G, D, A, E, B},
		{C, F, BFlat, EFlat, AFlat, DFlat, GFlat},
	}
	for _, family := range families {
		for i := 1; i < len(family); i++ {
			prev, next := family[i-1], family[i]
			assert.Equal(t, prev.Accidentals()+1, next.Accidentals())

			affected := next.AffectedButtons()
			assert.Subset(t, affected, prev.AffectedButtons(), "%v -> %v", prev, next)
			assert.Len(t, affected, len(prev.AffectedButtons())+1)
		}
	}
}

func TestKeyFamilies(t *testing.T) {
	for _, k := range []Key{C, G, D, A, E, B} {
		assert.False(t, k.IsFlat(), k.String())
	}
	for _, k := range []Key{F, BFlat, EFlat, AFlat, DFlat, GFlat} {
		assert.True(t, k.IsFlat(), k.String())
	}
}

func TestButtonPitchRejectsOutOfRange(t *testing.T) {
	_, err := ButtonPitch(C, 0, Button(7))
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	_, err = ButtonPitch(Key(12), 0, ButtonC)
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	_, err = ButtonPitch(C, 7, ButtonC)
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	_, err = RootPitch(7)
	assert.True(t, errors.Is(err, ErrInvalidIndex))
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{
		"C":   C,
		"g":   G,
		"Bb":  BFlat,
		"bb":  BFlat,
		"B♭":  BFlat,
		" Gb": GFlat,
		"EB":  EFlat,
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "H", "C#", "Fb"} {
		_, err := ParseKey(bad)
		assert.True(t, errors.Is(err, ErrUnknownKey), bad)
	}
}

func TestParseButton(t *testing.T) {
	for _, b := range allButtons {
		got, err := ParseButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := ParseButton("X")
	assert.Error(t, err)
}
