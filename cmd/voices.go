package cmd

import (
	"strings"

	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/config"
	"github.com/jsphweid/chordharp/model"
	"github.com/jsphweid/chordharp/util"
	"github.com/jsphweid/chordharp/voicing"
)

// mode selects which surface of the instrument is resolved.
type mode struct {
	harp      bool
	chromatic bool
	simple    bool
}

// resolveVoices resolves every voice of inst. On the harp, strings past the
// end of the pattern are not sounded unless the harp is chromatic.
func resolveVoices(inst *config.Instrument, m mode) (*model.ResolveResponse, error) {
	p := inst.Frame.Params
	count := len(p.Pattern)
	chromatic := false
	if m.harp {
		p = inst.HarpParams()
		chromatic = m.chromatic || inst.Frame.Chromatic
		count = inst.Strings
		if !chromatic {
			count = util.Min(count, len(p.Pattern))
		}
	}

	res := &model.ResolveResponse{
		Chord: inst.Frame.ChordType.String(),
		Key:   p.Key.String(),
	}
	pitches := make([]uint8, 0, count)
	for i := 0; i < count; i++ {
		var pitch uint8
		var err error
		switch {
		case m.harp && (chromatic || !m.simple):
			pitch, err = voicing.ResolveHarpPitch(i, p, chromatic)
		case m.simple:
			pitch, err = voicing.ResolveSimple(i, p)
		default:
			pitch, err = voicing.ResolvePitch(i, p)
		}
		if err != nil {
			return nil, err
		}

		v := model.Voice{Index: i, Pitch: int(pitch), Name: voicing.NoteName(pitch)}
		if !chromatic {
			level := int(p.Pattern[i])
			v.Level = &level
		}
		res.Voices = append(res.Voices, v)
		pitches = append(pitches, pitch)
	}
	if m.simple {
		res.Key = "C"
	}
	res.Pitches = util.Convert[int](pitches)
	res.ChordKey = chord.CreateChordKey(pitches)
	return res, nil
}

func formatPitches(pitches []uint8) string {
	return strings.Join(util.Map(pitches, voicing.NoteName), " ")
}
