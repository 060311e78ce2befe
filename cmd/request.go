package cmd

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/chordharp/config"
	"github.com/jsphweid/chordharp/model"
	"github.com/jsphweid/chordharp/util"
)

func invalidArgument(format string, args ...any) error {
	return fault.New(fmt.Sprintf(format, args...), ftag.With(ftag.InvalidArgument))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// presetFromRequest maps a request onto the preset schema so both go
// through the same validation.
func presetFromRequest(req model.ResolveRequest) (*config.Preset, error) {
	if req.Shift < 0 || req.Shift > 255 {
		return nil, invalidArgument("shift %d out of range", req.Shift)
	}
	if req.SlashTrigger < 0 || req.SlashTrigger > 255 {
		return nil, invalidArgument("slash_trigger %d out of range", req.SlashTrigger)
	}
	if req.Pattern != nil && len(req.Pattern) == 0 {
		return nil, invalidArgument("pattern must not be empty")
	}
	if i, ok := util.InRange(req.Pattern, 0, 255); !ok {
		return nil, invalidArgument("pattern[%d] = %d out of range", i, req.Pattern[i])
	}

	shift := uint8(req.Shift)
	trigger := uint8(req.SlashTrigger)
	p := &config.Preset{
		Chord:        req.Chord,
		Key:          req.Key,
		Shift:        &shift,
		Fundamental:  optionalString(req.Fundamental),
		Pattern:      util.Convert[uint8](req.Pattern),
		Slashed:      &req.Slashed,
		SlashRoot:    optionalString(req.SlashRoot),
		SlashTrigger: &trigger,
		Sharp:        &req.Sharp,
		FlatModifier: &req.FlatModifier,
		Chromatic:    &req.Chromatic,
	}
	if req.Strings != 0 {
		p.Strings = &req.Strings
	}
	return p, nil
}

func instrumentFromRequest(req model.ResolveRequest) (*config.Instrument, mode, error) {
	p, err := presetFromRequest(req)
	if err != nil {
		return nil, mode{}, err
	}
	inst := config.NewInstrument()
	if err := config.ApplyPreset(inst, p); err != nil {
		return nil, mode{}, err
	}
	m := mode{harp: req.Harp || req.Chromatic, chromatic: req.Chromatic, simple: req.Simple}
	return inst, m, nil
}
