package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordharp/config"
	"github.com/jsphweid/chordharp/constants"
	"github.com/jsphweid/chordharp/midi"
	"github.com/jsphweid/chordharp/model"
	"github.com/jsphweid/chordharp/util"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	preset       string
	csv          string
	chord        string
	key          string
	shift        uint8
	fundamental  string
	pattern      []int
	slashed      bool
	slashRoot    string
	slashTrigger uint8
	sharp        bool
	flat         bool
	harp         bool
	chromatic    bool
	strings      int
	simple       bool
	smf          string
	smfAuto      bool
	strum        uint32
}

var resolveOpts resolveOptions

func init() {
	addResolveFlags(resolveCmd, &resolveOpts)
	rootCmd.AddCommand(resolveCmd)
}

func addResolveFlags(cmd *cobra.Command, o *resolveOptions) {
	f := cmd.Flags()
	f.StringVar(&o.preset, "preset", "", "YAML preset to start from")
	f.StringVar(&o.csv, "csv", "", "controller frame line, replaces the preset frame")
	f.StringVar(&o.chord, "chord", "", "chord type (major, m, 7, maj7, dim7, ...)")
	f.StringVar(&o.key, "key", "", "key signature (C, G, ..., Bb, Gb)")
	f.Uint8Var(&o.shift, "shift", 0, "frame shift 0-6")
	f.StringVar(&o.fundamental, "fundamental", "", "fundamental button, name or index")
	f.IntSliceVar(&o.pattern, "pattern", nil, "voicing pattern, octave*10+degree per voice")
	f.BoolVar(&o.slashed, "slashed", false, "slash chord")
	f.StringVar(&o.slashRoot, "slash-root", "", "slash bass button, name or index")
	f.Uint8Var(&o.slashTrigger, "slash-trigger", 0, "degree replaced by the slash bass")
	f.BoolVar(&o.sharp, "sharp", false, "sharp button")
	f.BoolVar(&o.flat, "flat", false, "flat modifier, turns the sharp into a flat")
	f.BoolVar(&o.harp, "harp", false, "resolve harp strings instead of keyboard voices")
	f.BoolVar(&o.chromatic, "chromatic", false, "chromatic harp")
	f.IntVar(&o.strings, "strings", 0, "number of harp strings")
	f.BoolVar(&o.simple, "simple", false, "ignore key and shift")
	f.StringVar(&o.smf, "smf", "", "write the result to this MIDI file")
	f.BoolVar(&o.smfAuto, "smf-auto", false, "write the result to a new MIDI file in the output dir")
	f.Uint32Var(&o.strum, "strum", 0, "ticks between voices in the MIDI file")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolves the pitches of one instrument state",
	Long: `Resolves the pitches of one instrument state. The state starts from the
default instrument, then --preset, then --csv, then individual flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, resolveOpts)
	},
}

func runResolve(cmd *cobra.Command, o resolveOptions) error {
	inst, err := buildInstrument(cmd, o)
	if err != nil {
		return err
	}
	m := mode{
		harp:      o.harp || o.chromatic,
		chromatic: o.chromatic,
		simple:    o.simple,
	}
	res, err := resolveVoices(inst, m)
	if err != nil {
		return err
	}
	printResolved(cmd.OutOrStdout(), res)

	path := o.smf
	if path == "" && o.smfAuto {
		dir := constants.GetOutputDir()
		if err := util.EnsureDir(dir); err != nil {
			return err
		}
		path = filepath.Join(dir, uuid.New().String()+".mid")
	}
	if path != "" {
		return exportVoices(path, res, o.strum)
	}
	return nil
}

func buildInstrument(cmd *cobra.Command, o resolveOptions) (*config.Instrument, error) {
	inst := config.NewInstrument()
	if o.preset != "" {
		loaded, err := config.LoadPreset(o.preset)
		if err != nil {
			return nil, err
		}
		inst = loaded
	}
	if o.csv != "" {
		values := config.NewFrame(constants.FrameSlots)
		config.Deserialize(o.csv, values)
		frame, err := config.Decode(values)
		if err != nil {
			return nil, err
		}
		inst.Frame = frame
	}

	changed := cmd.Flags().Changed
	var p config.Preset
	if changed("chord") {
		p.Chord = o.chord
	}
	if changed("key") {
		p.Key = o.key
	}
	if changed("shift") {
		p.Shift = &o.shift
	}
	if changed("fundamental") {
		p.Fundamental = &o.fundamental
	}
	if changed("pattern") {
		if i, ok := util.InRange(o.pattern, 0, 255); !ok {
			return nil, invalidArgument("pattern[%d] = %d out of range", i, o.pattern[i])
		}
		p.Pattern = util.Convert[uint8](o.pattern)
		p.HarpPattern = p.Pattern
	}
	if changed("slashed") {
		p.Slashed = &o.slashed
	}
	if changed("slash-root") {
		p.SlashRoot = &o.slashRoot
	}
	if changed("slash-trigger") {
		p.SlashTrigger = &o.slashTrigger
	}
	if changed("sharp") {
		p.Sharp = &o.sharp
	}
	if changed("flat") {
		p.FlatModifier = &o.flat
	}
	if changed("strings") {
		p.Strings = &o.strings
	}
	if err := config.ApplyPreset(inst, &p); err != nil {
		return nil, err
	}
	logger.Debug("resolve: instrument", "frame", config.Encode(inst.Frame), "strings", inst.Strings)
	return inst, nil
}

func printResolved(w io.Writer, res *model.ResolveResponse) {
	fmt.Fprintf(w, "%s in %s\n", res.Chord, res.Key)
	for _, v := range res.Voices {
		level := "-"
		if v.Level != nil {
			level = fmt.Sprintf("%02d", *v.Level)
		}
		fmt.Fprintf(w, "%3d  %s  %3d  %s\n", v.Index, level, v.Pitch, v.Name)
	}
	fmt.Fprintf(w, "key: %s\n", res.ChordKey)
}

func exportVoices(path string, res *model.ResolveResponse, strum uint32) error {
	opts := midi.DefaultOptions()
	opts.Strum = strum
	skipped, err := midi.WriteChordFile(path, util.Convert[uint8](res.Pitches), opts)
	if err != nil {
		return err
	}
	for _, p := range skipped {
		logger.Warn("resolve: pitch outside MIDI range not exported", "pitch", p)
	}
	logger.Info("resolve: wrote midi file", "path", path, "notes", len(res.Pitches)-len(skipped))
	return nil
}
