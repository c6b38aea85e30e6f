package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"timepick/internal/logger"
	"timepick/picker"
)

var (
	minutesFlag    int
	secondsFlag    int
	colorFlag      string
	configFileFlag string
	logFileFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "timepick",
	Short: "Pick a minutes/seconds duration with two scroll wheels",
	Long: `Pick a duration by scrolling two endless wheels of 0-59.

Scroll with the arrow keys, j/k or the mouse wheel. A wheel snaps to the
nearest value once it stops moving. Press enter to print the selection.

Passing both --minutes and --seconds shows a fixed, non-scrolling display.

Examples:
  timepick
  timepick --seconds 30
  timepick -m 2 -s 30 --color "#FF5733"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPicker,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initConfig(cmd)
		return printConfig(cmd.OutOrStdout(), config.Get())
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&minutesFlag, "minutes", "m", 0, "Start (or with --seconds, fix) the minutes wheel")
	flags.IntVarP(&secondsFlag, "seconds", "s", 0, "Start (or with --minutes, fix) the seconds wheel")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&colorFlag, "color", "c", defaultColor, "Set the accent color (ANSI code or hex)")
	persistent.StringVar(&configFileFlag, "config", "", "Config file (default $XDG_CONFIG_HOME/timepick/config.yaml)")
	persistent.StringVar(&logFileFlag, "log-file", "", "Append selection logs to this file")

	rootCmd.AddCommand(configCmd)
}

// selectionLogger reports every change of the picked time.
func selectionLogger(l logger.Logger) func(minutes, seconds int) {
	return func(minutes, seconds int) {
		l.Info("Selected time: %d %d", minutes, seconds)
	}
}

// buildOptions combines config with the --minutes/--seconds flags.
func buildOptions(cmd *cobra.Command, cfg Config, l logger.Logger) []picker.Option {
	opts := pickerOptions(cfg)

	minutesSet := cmd.Flags().Changed("minutes")
	secondsSet := cmd.Flags().Changed("seconds")
	switch {
	case minutesSet && secondsSet:
		opts = append(opts, picker.WithFixed(minutesFlag, secondsFlag))
	case minutesSet:
		opts = append(opts, picker.WithMinutes(minutesFlag))
	case secondsSet:
		opts = append(opts, picker.WithSeconds(secondsFlag))
	}

	return append(opts, picker.WithOnChange(selectionLogger(l)))
}

func runPicker(cmd *cobra.Command, args []string) error {
	initConfig(cmd)
	cfg := config.Get()
	l := logger.NewEnvLogger("[timepick]")

	p, err := picker.New(buildOptions(cmd, cfg, l)...)
	if err != nil {
		return err
	}
	l.Debug("picker ready, static=%v", p.Static())

	out := cmd.OutOrStdout()

	// Not a terminal: render once and exit
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		renderOnce(out, p)
		return nil
	}

	// The UI owns the terminal, so logs go to a file or nowhere
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "timepick")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	final, err := tea.NewProgram(
		newModel(p, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	if m, ok := final.(model); ok {
		if minutes, seconds, ok := m.selection(); ok {
			fmt.Fprintln(out, formatSelection(minutes, seconds))
		}
	}
	return nil
}

// renderOnce lays the picker out and prints a single frame of it.
func renderOnce(w io.Writer, p picker.Model) {
	p, _ = p.Update(p.Init()())
	fmt.Fprintln(w, p.View())
}

func printConfig(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
