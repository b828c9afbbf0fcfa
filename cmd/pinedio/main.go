// Command pinedio exercises an SX126x-based USB LoRa dongle from the
// command line: query chip status, switch packet type, peek registers and
// emit a test carrier.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jgroman/sx126x"
)

var (
	device   string
	speed    int
	customCS int
	resetPin int
	reject   bool
	trace    bool
)

var rootCmd = &cobra.Command{
	Use:   "pinedio",
	Short: "SX126x radio utility",
	Long: `Pinedio - a utility for SX126x sub-GHz transceivers behind a
USB-to-SPI bridge exposed as a Linux spidev device.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&device, "device", "d", "", "spidev path (default /dev/spidev0.0)")
	rootCmd.PersistentFlags().IntVar(&speed, "speed", 0, "SPI speed in Hz")
	rootCmd.PersistentFlags().IntVar(&customCS, "cs", 0, "GPIO number for custom chip select")
	rootCmd.PersistentFlags().IntVar(&resetPin, "reset-pin", 0, "GPIO number driving NRESET")
	rootCmd.PersistentFlags().BoolVar(&reject, "reject", false, "reject commands that violate mode preconditions")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "log every frame exchanged")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(packetTypeCmd)
	rootCmd.AddCommand(readRegCmd)
	rootCmd.AddCommand(syncWordCmd)
	rootCmd.AddCommand(txCwCmd)
}

func openRadio() (*sx126x.Radio, error) {
	var opts []sx126x.Option
	if reject {
		opts = append(opts, sx126x.WithModePolicy(sx126x.ModeReject))
	}
	if trace {
		opts = append(opts, sx126x.WithTrace(func(op sx126x.Opcode, frame, response []byte, err error) {
			if err != nil {
				log.Printf("%v: > % X ! %v", op, frame, err)
				return
			}
			log.Printf("%v: > % X < % X", op, frame, response)
		}))
	}
	cfg := sx126x.SpiConfig{Device: device, Speed: speed, CustomCS: customCS, ResetPin: resetPin}
	return sx126x.Open(cfg, opts...)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read chip status and device errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Close()
		st, err := r.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("mode: %v\n", st.Mode)
		fmt.Printf("command status: %v\n", st.Command)
		devErrs, err := r.GetDeviceErrors()
		if err != nil {
			return err
		}
		fmt.Printf("device errors: %v\n", devErrs)
		return nil
	},
}

var packetTypeCmd = &cobra.Command{
	Use:   "packet-type [gfsk|lora]",
	Short: "Get or set the packet type",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Close()
		if len(args) == 1 {
			var pt sx126x.PacketType
			switch args[0] {
			case "gfsk":
				pt = sx126x.PacketTypeGfsk
			case "lora":
				pt = sx126x.PacketTypeLoRa
			default:
				return fmt.Errorf("unknown packet type %q", args[0])
			}
			if err := r.SetStandby(sx126x.StandbyRC); err != nil {
				return err
			}
			if err := r.SetPacketType(pt); err != nil {
				return err
			}
		}
		pt, err := r.GetPacketType()
		if err != nil {
			return err
		}
		fmt.Printf("packet type: %v\n", pt)
		return nil
	},
}

var readRegCmd = &cobra.Command{
	Use:   "read-reg <addr> [length]",
	Short: "Read chip registers",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return err
		}
		length := 1
		if len(args) == 2 {
			if length, err = strconv.Atoi(args[1]); err != nil {
				return err
			}
		}
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Close()
		b, err := r.ReadRegister(uint16(addr), length)
		if err != nil {
			return err
		}
		fmt.Printf("0x%04X: % X\n", addr, b)
		return nil
	},
}

var syncWordCmd = &cobra.Command{
	Use:   "sync-word [public|private]",
	Short: "Get or set the LoRa sync word",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Close()
		if len(args) == 1 {
			var w uint16
			switch args[0] {
			case "public":
				w = sx126x.LoRaSyncWordPublic
			case "private":
				w = sx126x.LoRaSyncWordPrivate
			default:
				return fmt.Errorf("unknown sync word %q", args[0])
			}
			if err := r.SetLoRaSyncWord(w); err != nil {
				return err
			}
		}
		w, err := r.LoRaSyncWord()
		if err != nil {
			return err
		}
		fmt.Printf("sync word: 0x%04X\n", w)
		return nil
	},
}

var txCwFreq uint32

var txCwCmd = &cobra.Command{
	Use:   "tx-cw",
	Short: "Emit a continuous carrier (test mode)",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Close()
		if err := r.SetStandby(sx126x.StandbyRC); err != nil {
			return err
		}
		if err := r.SetFrequency(txCwFreq); err != nil {
			return err
		}
		if err := r.SetTxContinuousWave(); err != nil {
			return err
		}
		fmt.Printf("transmitting carrier at %d Hz, press enter to stop\n", txCwFreq)
		fmt.Scanln()
		return r.SetStandby(sx126x.StandbyRC)
	},
}

func init() {
	txCwCmd.Flags().Uint32Var(&txCwFreq, "freq", 868000000, "carrier frequency in Hz")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
