package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/chordharp/config"
	"github.com/jsphweid/chordharp/constants"
	"github.com/jsphweid/chordharp/voicing"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var (
	listenPort  string
	listenBaud  int
	listenList  bool
	listenInput string
)

func init() {
	f := listenCmd.Flags()
	f.StringVar(&listenPort, "port", constants.GetSerialPort(), "serial port of the controller")
	f.IntVar(&listenBaud, "baud", constants.GetBaudRate(), "serial baud rate")
	f.BoolVar(&listenList, "list", false, "list serial ports and exit")
	f.StringVar(&listenInput, "input", "", "read frames from a file instead (- for stdin)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Resolves controller frames read from a serial port",
	Long: `Reads comma separated controller frames, one per line, and prints the
pitches each frame resolves to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listenList {
			ports, err := serial.GetPortsList()
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmt.Fprintln(out, p)
			}
			return nil
		}

		switch listenInput {
		case "":
		case "-":
			return listenFrames(os.Stdin, out)
		default:
			f, err := os.Open(listenInput)
			if err != nil {
				return err
			}
			defer f.Close()
			return listenFrames(f, out)
		}

		if listenPort == "" {
			return invalidArgument("no serial port given, use --port or CHORDHARP_SERIAL")
		}
		port, err := serial.Open(listenPort, &serial.Mode{BaudRate: listenBaud})
		if err != nil {
			return fmt.Errorf("could not open %s: %w", listenPort, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			port.Close()
		}()

		logger.Info("listen: reading frames", "port", listenPort, "baud", listenBaud)
		err = listenFrames(port, out)
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

// listenFrames resolves every frame in r and writes one line per frame to w.
// Frames that fail to decode or resolve are logged and skipped.
func listenFrames(r io.Reader, w io.Writer) error {
	return config.Scan(r, constants.FrameSlots, func(values []int16) error {
		frame, err := config.Decode(values)
		if err != nil {
			logger.Warn("listen: dropping frame", "err", err)
			return nil
		}

		var pitches []uint8
		if frame.Chromatic {
			pitches, err = voicing.ResolveHarp(frame.Params, true, config.DefaultStrings)
		} else {
			pitches, err = voicing.ResolveChord(frame.Params)
		}
		if err != nil {
			logger.Warn("listen: could not resolve frame", "frame", config.Encode(frame), "err", err)
			return nil
		}

		logger.Debug("listen: frame",
			"chord", frame.ChordType.String(),
			"key", frame.Params.Key.String(),
			"shift", frame.Params.Shift,
			"pitches", pitches,
		)
		_, err = fmt.Fprintf(w, "%v\t%s\n", pitches, formatPitches(pitches))
		return err
	})
}
