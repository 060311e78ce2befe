package cmd

import (
	"fmt"

	"github.com/jsphweid/chordharp/midi"
	"github.com/jsphweid/chordharp/voicing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects an exported MIDI file",
	Long:  `Prints the note starts of a MIDI file written by resolve --smf.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		for _, n := range midi.NoteOns(s) {
			fmt.Fprintf(cmd.OutOrStdout(), "tick %6d  ch %2d  %3d %-4s vel %d\n",
				n.Tick, n.Channel, n.Key, voicing.NoteName(n.Key), n.Velocity)
		}
		return nil
	},
}
