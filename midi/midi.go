package midi

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Options controls how a voicing is laid out in time.
type Options struct {
	Channel  uint8
	Velocity uint8
	// Strum delays each voice by this many ticks after the previous one.
	Strum uint32
	// Length is how long the last voice rings, in ticks.
	Length uint32
	BPM    float64
}

func DefaultOptions() Options {
	return Options{
		Channel:  0,
		Velocity: 100,
		Strum:    0,
		Length:   960,
		BPM:      120,
	}
}

// NoteOn is a note start read back from a file, in absolute ticks.
type NoteOn struct {
	Tick     uint64
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// Chord builds a single-track SMF sounding pitches in order. Pitches above
// 127 cannot be encoded and are returned as skipped.
func Chord(pitches []uint8, opts Options) (*smf.SMF, []uint8, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var tr smf.Track
	if opts.BPM > 0 {
		tr.Add(0, smf.MetaTempo(opts.BPM))
	}

	var playable, skipped []uint8
	for _, p := range pitches {
		if p > 127 {
			skipped = append(skipped, p)
			continue
		}
		playable = append(playable, p)
	}

	for i, p := range playable {
		var delta uint32
		if i > 0 {
			delta = opts.Strum
		}
		tr.Add(delta, midi.NoteOn(opts.Channel, p, opts.Velocity))
	}
	for i, p := range playable {
		var delta uint32
		if i == 0 {
			delta = opts.Length
		}
		tr.Add(delta, midi.NoteOff(opts.Channel, p))
	}
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return nil, skipped, err
	}
	return s, skipped, nil
}

// WriteChordFile writes pitches as a Standard MIDI File.
func WriteChordFile(path string, pitches []uint8, opts Options) ([]uint8, error) {
	s, skipped, err := Chord(pitches, opts)
	if err != nil {
		return skipped, err
	}
	if err := s.WriteFile(path); err != nil {
		return skipped, fmt.Errorf("writing midi file %s: %w", path, err)
	}
	return skipped, nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = &blank
			e = fmt.Errorf("parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// NoteOns lists every note start in s ordered by tick, then key.
func NoteOns(s *smf.SMF) []NoteOn {
	var res []NoteOn
	for _, events := range s.Tracks {
		var absTicks uint64
		for _, event := range events {
			absTicks += uint64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				res = append(res, NoteOn{Tick: absTicks, Channel: channel, Key: key, Velocity: velocity})
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Tick != res[j].Tick {
			return res[i].Tick < res[j].Tick
		}
		return res[i].Key < res[j].Key
	})
	return res
}
