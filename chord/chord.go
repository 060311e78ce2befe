package chord

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Size is the number of degrees in every chord definition. The first four
// are the chord tones (fundamental, third, fifth, seventh or octave) and the
// rest are decorations (second, fourth, sixth).
const Size = 7

var (
	ErrUnknownChord  = errors.New("unknown chord type")
	ErrInvalidDegree = errors.New("invalid chord degree")
)

// Definition holds semitone offsets from the chord root, one per degree.
type Definition [Size]int8

// Offset returns the semitone offset for a degree.
func (d Definition) Offset(degree int) (int, error) {
	if degree < 0 || degree >= Size {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}
	return int(d[degree]), nil
}

type Type uint8

const (
	Major Type = iota
	Minor
	MajorSixth
	MinorSixth
	Seventh
	MajorSeventh
	MinorSeventh
	Augmented
	Diminished
	FullDiminished
)

var definitions = [...]Definition{
	Major:          {0, 4, 7, 12, 2, 5, 9},
	Minor:          {0, 3, 7, 12, 1, 5, 8},
	MajorSixth:     {0, 4, 7, 9, 2, 5, 12},
	MinorSixth:     {0, 3, 7, 9, 1, 5, 12},
	Seventh:        {0, 4, 10, 7, 2, 5, 9},
	MajorSeventh:   {0, 4, 11, 7, 2, 5, 9},
	MinorSeventh:   {0, 3, 10, 7, 1, 5, 8},
	Augmented:      {0, 4, 8, 12, 2, 5, 9},
	Diminished:     {0, 3, 6, 12, 2, 5, 9},
	FullDiminished: {0, 3, 6, 9, 2, 5, 12},
}

var names = [...]string{
	Major:          "major",
	Minor:          "minor",
	MajorSixth:     "maj6",
	MinorSixth:     "min6",
	Seventh:        "7",
	MajorSeventh:   "maj7",
	MinorSeventh:   "min7",
	Augmented:      "aug",
	Diminished:     "dim",
	FullDiminished: "dim7",
}

var aliases = map[string]Type{
	"maj":            Major,
	"m":              Minor,
	"min":            Minor,
	"6":              MajorSixth,
	"major6":         MajorSixth,
	"m6":             MinorSixth,
	"minor6":         MinorSixth,
	"seventh":        Seventh,
	"dom7":           Seventh,
	"major7":         MajorSeventh,
	"m7":             MinorSeventh,
	"minor7":         MinorSeventh,
	"augmented":      Augmented,
	"+":              Augmented,
	"diminished":     Diminished,
	"fulldiminished": FullDiminished,
}

// Definition returns the offsets for t. The returned array is a copy.
func (t Type) Definition() (Definition, error) {
	if int(t) >= len(definitions) {
		return Definition{}, fmt.Errorf("%w: %d", ErrUnknownChord, t)
	}
	return definitions[t], nil
}

func (t Type) String() string {
	if int(t) >= len(names) {
		return fmt.Sprintf("chord(%d)", uint8(t))
	}
	return names[t]
}

// ParseType accepts the canonical names returned by String as well as the
// usual shorthands ("m", "maj7", "dim7", ...). Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	for i, n := range names {
		if n == key {
			return Type(i), nil
		}
	}
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChord, s)
}

// Types lists every chord type in table order.
func Types() []Type {
	res := make([]Type, len(definitions))
	for i := range definitions {
		res[i] = Type(i)
	}
	return res
}

// CreateChordKey renders pitches as a sorted, dash separated key such as
// "28-32-35". The input slice is left untouched.
func CreateChordKey(pitches []uint8) string {
	sorted := make([]uint8, len(pitches))
	copy(sorted, pitches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var b strings.Builder
	for i, p := range sorted {
		fmt.Fprintf(&b, "%v", p)
		if i < len(sorted)-1 {
			b.WriteString("-")
		}
	}
	return b.String()
}
