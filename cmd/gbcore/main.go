// Command gbcore loads a Game Boy ROM image and runs it against the core
// in this module, either headless (saving the last completed frame as a
// PNG) or under the bubbletea step debugger.
//
// Shape adapted from the teacher's main.go (ROM-flag + PNG frame dump);
// the cobra command tree is grounded on oisee-z80-optimizer's cmd/z80opt.
package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gbcore/internal/cartridge"
	"gbcore/internal/debugger"
	"gbcore/internal/emulator"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gbcore",
		Short: "A Game Boy (DMG) core: CPU, bus, PPU, and cartridge family",
	}

	var romPath string
	var framesFlag int
	var outPath string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a ROM headlessly and save the last completed frame as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if romPath == "" {
				return fmt.Errorf("--rom is required")
			}
			e, err := loadEmulator(romPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := e.RunFrames(ctx, framesFlag); err != nil {
				return fmt.Errorf("run failed: %w", err)
			}
			return saveFrame(e, outPath)
		},
	}
	runCmd.Flags().StringVar(&romPath, "rom", "", "Path to ROM file (required)")
	runCmd.Flags().IntVar(&framesFlag, "frames", 60, "Number of frames to run before saving")
	runCmd.Flags().StringVar(&outPath, "out", "frame.png", "Output PNG path")

	infoCmd := &cobra.Command{
		Use:   "info [rom]",
		Short: "Parse and print a ROM's cartridge header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := cartridge.Parse(rom)
			if err != nil {
				return err
			}
			fmt.Printf("Title:        %s\n", h.Title)
			fmt.Printf("Cartridge:    %s\n", h.Kind)
			fmt.Printf("ROM banks:    %d (%d KiB)\n", h.ROMBanks, h.ROMBanks*16)
			fmt.Printf("RAM size:     %d bytes\n", h.RAMSize)
			fmt.Printf("Has battery:  %v\n", h.HasBattery)
			fmt.Printf("Has RTC:      %v\n", h.HasRTC)
			fmt.Printf("Checksum OK:  %v\n", h.ChecksumOK)
			return nil
		},
	}

	var debugRomPath string
	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Run a ROM under the interactive step debugger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugRomPath == "" {
				return fmt.Errorf("--rom is required")
			}
			e, err := loadEmulator(debugRomPath)
			if err != nil {
				return err
			}
			return debugger.Run(e)
		},
	}
	debugCmd.Flags().StringVar(&debugRomPath, "rom", "", "Path to ROM file (required)")

	rootCmd.AddCommand(runCmd, infoCmd, debugCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEmulator(romPath string) (*emulator.Emulator, error) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, err
	}
	cart, err := cartridge.New(rom, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid cartridge: %w", err)
	}
	e := emulator.New()
	e.LoadCartridge(cart)
	return e, nil
}

func saveFrame(e *emulator.Emulator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, e.Bus.PPU.Frame()); err != nil {
		return err
	}
	fmt.Printf("Saved frame to %s\n", path)
	return nil
}
