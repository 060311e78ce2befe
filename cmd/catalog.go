package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordharp/chord"
	"github.com/jsphweid/chordharp/keysig"
	"github.com/jsphweid/chordharp/model"
	"github.com/jsphweid/chordharp/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chordsCmd)
	rootCmd.AddCommand(keysCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Lists chord types",
	Long:  `Lists chord types with their semitone offsets per degree.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range chordCatalog() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %v\n", c.Name, c.Offsets)
		}
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Lists key signatures",
	Long:  `Lists key signatures with the buttons they alter.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range keyCatalog() {
			sign := "#"
			if k.Flat {
				sign = "b"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-3s %d%s %s\n", k.Name, k.Accidentals, sign, strings.Join(k.Buttons, " "))
		}
	},
}

func chordCatalog() []model.ChordInfo {
	var res []model.ChordInfo
	for _, typ := range chord.Types() {
		def, err := typ.Definition()
		if err != nil {
			continue
		}
		res = append(res, model.ChordInfo{
			Name:    typ.String(),
			Offsets: util.Convert[int](def[:]),
		})
	}
	return res
}

func keyCatalog() []model.KeyInfo {
	var res []model.KeyInfo
	for _, k := range keysig.Keys() {
		res = append(res, model.KeyInfo{
			Name:        k.String(),
			Flat:        k.IsFlat(),
			Accidentals: k.Accidentals(),
			Buttons:     util.Map(k.AffectedButtons(), keysig.Button.String),
		})
	}
	return res
}
