package config

import (
	"fmt"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/keysig"
	"github.com/jsphweid/chordharp/voicing"
	"gopkg.in/yaml.v3"
)

// DefaultStrings is the number of strings on the harp surface.
const DefaultStrings = 12

// Preset is the YAML schema for instrument presets. Unset fields leave the
// frame they are applied to untouched.
type Preset struct {
	Chord        string  `yaml:"chord"`
	Key          string  `yaml:"key"`
	Shift        *uint8  `yaml:"shift"`
	Fundamental  *string `yaml:"fundamental"`
	Pattern      []uint8 `yaml:"pattern"`
	HarpPattern  []uint8 `yaml:"harp_pattern"`
	Strings      *int    `yaml:"strings"`
	Chromatic    *bool   `yaml:"chromatic"`
	Slashed      *bool   `yaml:"slashed"`
	SlashRoot    *string `yaml:"slash_root"`
	SlashTrigger *uint8  `yaml:"slash_trigger"`
	Sharp        *bool   `yaml:"sharp"`
	FlatModifier *bool   `yaml:"flat_modifier"`
}

// Instrument is a frame together with the harp settings a preset carries.
type Instrument struct {
	Frame       Frame
	HarpPattern []uint8
	Strings     int
}

func NewInstrument() *Instrument {
	def, _ := chord.Major.Definition()
	return &Instrument{
		Frame: Frame{
			ChordType: chord.Major,
			Params: voicing.Params{
				Chord:   def,
				Pattern: []uint8{20, 22, 24, 30},
			},
		},
		Strings: DefaultStrings,
	}
}

// LoadPreset reads a preset file and applies it on top of NewInstrument.
func LoadPreset(path string) (*Instrument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("reading preset"))
	}

	var p Preset
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fault.Wrap(err, fmsg.With("parsing preset "+path), ftag.With(ftag.InvalidArgument))
	}

	inst := NewInstrument()
	if err := ApplyPreset(inst, &p); err != nil {
		return nil, fault.Wrap(err, fmsg.With("applying preset "+path))
	}
	return inst, nil
}

// button accepts either a button name ("F") or its hardware index ("6").
func button(s string) (uint8, error) {
	if b, err := keysig.ParseButton(s); err == nil {
		return uint8(b), nil
	}
	var idx int
	if _, err := fmt.Sscanf(s, "%d", &idx); err != nil || idx < 0 || idx >= keysig.NumButtons {
		return 0, fmt.Errorf("%w: button %q", keysig.ErrInvalidIndex, s)
	}
	return uint8(idx), nil
}

func checkPattern(name string, pattern []uint8) error {
	for i, level := range pattern {
		if _, _, err := voicing.Decode(level); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	return nil
}

// ApplyPreset applies a parsed preset onto an existing instrument.
func ApplyPreset(dst *Instrument, p *Preset) error {
	if dst == nil {
		return fmt.Errorf("nil destination instrument")
	}
	if p == nil {
		return nil
	}
	tag := ftag.With(ftag.InvalidArgument)
	params := &dst.Frame.Params

	if p.Chord != "" {
		typ, err := chord.ParseType(p.Chord)
		if err != nil {
			return fault.Wrap(err, tag)
		}
		def, err := typ.Definition()
		if err != nil {
			return fault.Wrap(err, tag)
		}
		dst.Frame.ChordType = typ
		params.Chord = def
	}
	if p.Key != "" {
		key, err := keysig.ParseKey(p.Key)
		if err != nil {
			return fault.Wrap(err, tag)
		}
		params.Key = key
	}
	if p.Shift != nil {
		if *p.Shift > keysig.MaxShift {
			return fault.New(fmt.Sprintf("shift must be within 0..%d", keysig.MaxShift), tag)
		}
		params.Shift = *p.Shift
	}
	if p.Fundamental != nil {
		b, err := button(*p.Fundamental)
		if err != nil {
			return fault.Wrap(err, fmsg.With("fundamental"), tag)
		}
		params.Fundamental = b
	}
	if p.SlashRoot != nil {
		b, err := button(*p.SlashRoot)
		if err != nil {
			return fault.Wrap(err, fmsg.With("slash_root"), tag)
		}
		params.SlashRoot = b
	}
	if p.SlashTrigger != nil {
		if *p.SlashTrigger >= chord.Size {
			return fault.New(fmt.Sprintf("slash_trigger must be within 0..%d", chord.Size-1), tag)
		}
		params.SlashTrigger = *p.SlashTrigger
	}
	if len(p.Pattern) > 0 {
		if err := checkPattern("pattern", p.Pattern); err != nil {
			return fault.Wrap(err, tag)
		}
		params.Pattern = append([]uint8(nil), p.Pattern...)
	}
	if len(p.HarpPattern) > 0 {
		if err := checkPattern("harp_pattern", p.HarpPattern); err != nil {
			return fault.Wrap(err, tag)
		}
		dst.HarpPattern = append([]uint8(nil), p.HarpPattern...)
	}
	if p.Strings != nil {
		if *p.Strings <= 0 {
			return fault.New("strings must be > 0", tag)
		}
		dst.Strings = *p.Strings
	}

	setFlag := func(target *bool, v *bool) {
		if v != nil {
			*target = *v
		}
	}
	setFlag(&dst.Frame.Chromatic, p.Chromatic)
	setFlag(&params.Slashed, p.Slashed)
	setFlag(&params.Sharp, p.Sharp)
	setFlag(&params.FlatModifier, p.FlatModifier)
	return nil
}

// HarpParams returns the frame parameters with the harp pattern swapped in
// when the preset defines one.
func (inst *Instrument) HarpParams() voicing.Params {
	p := inst.Frame.Params
	if len(inst.HarpPattern) > 0 {
		p.Pattern = inst.HarpPattern
	}
	return p
}
