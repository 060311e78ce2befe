package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/keysig"
	"github.com/jsphweid/chordharp/voicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserializeSimple(t *testing.T) {
	data := make([]int16, 10)
	n := Deserialize("0,1,50,50,512,512,512,0,0,0", data)

	assert.Equal(t, 10, n)
	assert.Equal(t, []int16{0, 1, 50, 50, 512, 512, 512, 0, 0, 0}, data)
}

func TestDeserializeNegativeValues(t *testing.T) {
	data := make([]int16, 5)
	Deserialize("-10,0,100,-50,25", data)
	assert.Equal(t, []int16{-10, 0, 100, -50, 25}, data)
}

func TestDeserializePartialKeepsDefaults(t *testing.T) {
	data := NewFrame(10)
	n := Deserialize("10,20,30", data)

	assert.Equal(t, 3, n)
	assert.Equal(t, []int16{10, 20, 30}, data[:3])
	for _, v := range data[3:] {
		assert.Equal(t, Unset, v)
	}
}

func TestDeserializeEmpty(t *testing.T) {
	data := NewFrame(5)
	assert.Equal(t, 0, Deserialize("", data))
	assert.Equal(t, Unset, data[0])
}

func TestDeserializeDropsExcess(t *testing.T) {
	data := make([]int16, 3)
	n := Deserialize("1,2,3,4,5,6,7,8,9", data)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int16{1, 2, 3}, data)
}

func TestDeserializeLooseFields(t *testing.T) {
	data := NewFrame(6)
	n := Deserialize(" 7,,x,12abc,+4, -3\r", data)

	// empty field skipped, garbage reads as zero
	assert.Equal(t, 5, n)
	assert.Equal(t, []int16{7, 0, 12, 4, -3, Unset}, data)
}

func TestDeserializeWrapsToInt16(t *testing.T) {
	data := make([]int16, 1)
	Deserialize("70000", data)
	assert.Equal(t, int16(70000-65536), data[0])
}

func TestDeserializeTruncatesLongLines(t *testing.T) {
	line := strings.Repeat("1,", MaxLineLength/2) + "9,9,9"
	data := NewFrame(1024)
	n := Deserialize(line, data)
	assert.Equal(t, MaxLineLength/2+1, n)
	assert.Equal(t, int16(9), data[n-1])
}

func TestDecodeFrame(t *testing.T) {
	values := NewFrame(16)
	Deserialize("4,1,0,0,0,1,0,1,2,0,20,22,24,30", values)

	f, err := Decode(values)
	require.NoError(t, err)

	seventh, _ := chord.Seventh.Definition()
	assert := assert.New(t)
	assert.Equal(chord.Seventh, f.ChordType)
	assert.Equal(seventh, f.Params.Chord)
	assert.Equal(uint8(1), f.Params.Fundamental)
	assert.True(f.Params.Sharp)
	assert.False(f.Params.Slashed)
	assert.Equal(keysig.G, f.Params.Key)
	assert.Equal(uint8(2), f.Params.Shift)
	assert.False(f.Chromatic)
	assert.Equal([]uint8{20, 22, 24, 30}, f.Params.Pattern)
}

func TestDecodeDefaultsMissingSlots(t *testing.T) {
	f, err := Decode(NewFrame(4))
	require.NoError(t, err)

	major, _ := chord.Major.Definition()
	assert.Equal(t, chord.Major, f.ChordType)
	assert.Equal(t, major, f.Params.Chord)
	assert.Empty(t, f.Params.Pattern)
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"chord":       "10",
		"fundamental": "0,7",
		"slash root":  "0,0,-5",
		"trigger":     "0,0,0,7",
		"flag":        "0,0,0,0,2",
		"key":         "0,0,0,0,0,0,0,12",
		"shift":       "0,0,0,0,0,0,0,0,7",
		"pattern":     "0,0,0,0,0,0,0,0,0,0,20,300",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			values := NewFrame(16)
			Deserialize(line, values)
			_, err := Decode(values)
			require.Error(t, err)
			assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
		})
	}
}

func TestDecodeRejectsBadDegree(t *testing.T) {
	values := NewFrame(16)
	Deserialize("0,0,0,0,0,0,0,0,0,0,20,28", values)
	_, err := Decode(values)
	assert.True(t, errors.Is(err, voicing.ErrInvalidVoicingPattern))
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
}

func TestEncodeMatchesDecode(t *testing.T) {
	line := "2,3,4,1,1,1,1,9,5,1,10,21,32,46"
	values := NewFrame(32)
	Deserialize(line, values)
	f, err := Decode(values)
	require.NoError(t, err)
	assert.Equal(t, line, Encode(f))
}

func TestScan(t *testing.T) {
	input := "1,1,0,0,0,0,0,0,0,0,20,22\n\n  \n0,2,0,0,0,0,0,0,0,0,24\n"

	var frames [][]int16
	err := Scan(strings.NewReader(input), 12, func(values []int16) error {
		frames = append(frames, values)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, int16(22), frames[0][11])
	assert.Equal(t, Unset, frames[1][11])
}

func TestScanTruncatesOverlongLines(t *testing.T) {
	noisy := "1,2" + strings.Repeat(",", 70000) + "9\n"
	input := noisy + "3,4\n"

	var frames [][]int16
	err := Scan(strings.NewReader(input), 4, func(values []int16) error {
		frames = append(frames, values)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, []int16{1, 2, Unset, Unset}, frames[0])
	assert.Equal(t, []int16{3, 4, Unset, Unset}, frames[1])
}

func TestScanStopsOnCallbackError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Scan(strings.NewReader("1\n2\n3\n"), 4, func([]int16) error {
		calls++
		return boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 1, calls)
}

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadPreset(t *testing.T) {
	path := writePreset(t, `
chord: min7
key: Bb
shift: 3
fundamental: D
pattern: [10, 21, 32, 43]
harp_pattern: [0, 1, 2, 3, 10, 11, 12, 13]
strings: 8
slashed: true
slash_root: "6"
slash_trigger: 0
sharp: true
`)
	inst, err := LoadPreset(path)
	require.NoError(t, err)

	minor7, _ := chord.MinorSeventh.Definition()
	p := inst.Frame.Params
	assert := assert.New(t)
	assert.Equal(chord.MinorSeventh, inst.Frame.ChordType)
	assert.Equal(minor7, p.Chord)
	assert.Equal(keysig.BFlat, p.Key)
	assert.Equal(uint8(3), p.Shift)
	assert.Equal(uint8(keysig.ButtonD), p.Fundamental)
	assert.Equal([]uint8{10, 21, 32, 43}, p.Pattern)
	assert.True(p.Slashed)
	assert.Equal(uint8(6), p.SlashRoot)
	assert.True(p.Sharp)
	assert.False(p.FlatModifier)
	assert.Equal(8, inst.Strings)
	assert.Equal([]uint8{0, 1, 2, 3, 10, 11, 12, 13}, inst.HarpParams().Pattern)
}

func TestLoadPresetKeepsDefaults(t *testing.T) {
	inst, err := LoadPreset(writePreset(t, "key: D\n"))
	require.NoError(t, err)

	assert.Equal(t, chord.Major, inst.Frame.ChordType)
	assert.Equal(t, []uint8{20, 22, 24, 30}, inst.Frame.Params.Pattern)
	assert.Equal(t, DefaultStrings, inst.Strings)
	assert.Equal(t, inst.Frame.Params.Pattern, inst.HarpParams().Pattern)
}

func TestLoadPresetRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"chord":         "chord: sus2\n",
		"key":           "key: H\n",
		"shift":         "shift: 7\n",
		"fundamental":   "fundamental: \"9\"\n",
		"slash trigger": "slash_trigger: 7\n",
		"pattern":       "pattern: [20, 29]\n",
		"harp pattern":  "harp_pattern: [8]\n",
		"strings":       "strings: 0\n",
		"yaml":          "pattern: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPreset(writePreset(t, content))
			require.Error(t, err)
			assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
		})
	}
}

func TestLoadPresetMissingFile(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
