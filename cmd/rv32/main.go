package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MaryamEghbal/riscv/asm"
	"github.com/MaryamEghbal/riscv/config"
	"github.com/MaryamEghbal/riscv/vm"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "rv32",
		Short: "RV32I/M/F assembler and simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			logFile, err := openVerboseLog()
			if err != nil {
				return fmt.Errorf("opening verbose log: %w", err)
			}
			fmt.Fprintf(logFile, "[%s] %s %v\n", time.Now().Format(time.RFC3339), cmd.Name(), args)
			return logFile.Close()
		},
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "append a timestamped line to the log directory for each invocation")

	root.AddCommand(newAssembleCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newSymbolsCmd())
	return root
}

// openVerboseLog opens (creating if needed) an append-only log file under
// config.GetLogPath(), the destination --verbose writes invocation records to.
func openVerboseLog() (*os.File, error) {
	path := filepath.Join(config.GetLogPath(), "rv32.log")
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G302 -- log file, not a secret
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func newAssembleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "assemble <source.s>",
		Short: "Assemble a source file into a flat RV32 binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			source, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied source path
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			opts := asm.Options{
				AllowFloat:  cfg.Assembler.AllowFloat,
				BaseAddress: cfg.Assembler.BaseAddress,
			}
			image, _, err := asm.AssembleWithOptions(string(source), opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = swapExt(args[0], ".bin")
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, image, 0600); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(image), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output binary path (default: <source>.bin)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var maxSteps uint64

	cmd := &cobra.Command{
		Use:   "run <source.s>",
		Short: "Assemble and run a source file, printing final register state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			source, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied source path
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			opts := asm.Options{
				AllowFloat:  cfg.Assembler.AllowFloat,
				BaseAddress: cfg.Assembler.BaseAddress,
			}
			image, _, err := asm.AssembleWithOptions(string(source), opts)
			if err != nil {
				return err
			}

			sim := vm.NewSimulator(cfg.Simulator.MemorySize)
			if err := sim.Load(image); err != nil {
				return err
			}

			if maxSteps == 0 {
				maxSteps = cfg.Simulator.MaxCycles
			}
			var steps uint64
			for steps < maxSteps {
				result, err := sim.Step()
				if err != nil {
					return err
				}
				steps++
				if result == vm.Halt {
					break
				}
			}

			snap := sim.Snapshot(0, 0)
			fmt.Printf("halted after %d steps, pc=0x%08x\n", steps, snap.PC)
			for i := 0; i < 32; i++ {
				fmt.Printf("x%-2d = 0x%08x", i, snap.X[i])
				if i%4 == 3 {
					fmt.Println()
				} else {
					fmt.Print("  ")
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "maximum steps to execute (default: config max_cycles)")
	return cmd
}

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <source.s>",
		Short: "Assemble a source file and print its resolved symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			source, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied source path
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			opts := asm.Options{
				AllowFloat:  cfg.Assembler.AllowFloat,
				BaseAddress: cfg.Assembler.BaseAddress,
			}
			_, symtab, err := asm.AssembleWithOptions(string(source), opts)
			if err != nil {
				return err
			}

			for _, sym := range symtab.Symbols() {
				fmt.Printf("%-20s 0x%08x\n", sym.Name, sym.Address)
			}
			return nil
		},
	}
	return cmd
}

func swapExt(path, newExt string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + newExt
}
