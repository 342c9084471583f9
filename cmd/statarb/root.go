package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gostatarb/internal/config"
	"github.com/sartorproj/gostatarb/internal/logger"
	"github.com/sartorproj/gostatarb/timeseries"
)

// app is the state shared by all subcommands once the root has loaded
// configuration and logging.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

type ioFlags struct {
	input     string
	output    string
	columns   []string
	transform string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	root := &cobra.Command{
		Use:           "statarb",
		Short:         "Statistical arbitrage signals for spread and residual series",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}

			l, err := logger.New(cfg.Log.Logger())
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, l
			l.Debug().Str("config", configPath).Msg("configuration loaded")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log == nil {
				return nil
			}
			return a.log.Close()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(newZScoreCmd(a), newSScoreCmd(a), newDiagnoseCmd(a))
	return root
}

func addIOFlags(cmd *cobra.Command, f *ioFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input CSV panel, one column per series")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "series columns to use (default: all)")
	cmd.Flags().StringVar(&f.transform, "transform", "", "input transform: none, log, logreturns, diff")
	_ = cmd.MarkFlagRequired("input")
}

// loadPanel reads the input CSV and applies the configured transform.
func (a *app) loadPanel(cmd *cobra.Command, f *ioFlags) (*timeseries.Panel, error) {
	in := a.cfg.Input
	if cmd.Flags().Changed("columns") {
		in.Columns = f.columns
	}
	if cmd.Flags().Changed("transform") {
		in.Transform = f.transform
	}

	p, err := timeseries.LoadPanelCSV(f.input, in.CSVOptions())
	if err != nil {
		return nil, err
	}

	switch in.Transform {
	case "", "none":
	case "log":
		p, err = p.Transform((*timeseries.Series).Log)
	case "logreturns":
		p, err = p.Transform((*timeseries.Series).LogReturns)
	case "diff":
		p, err = p.Transform((*timeseries.Series).Diff)
	default:
		return nil, fmt.Errorf("unknown transform %q", in.Transform)
	}
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", in.Transform, err)
	}

	rows, cols := p.Dims()
	a.log.Info().
		Str("input", f.input).
		Str("transform", in.Transform).
		Int("rows", rows).
		Int("columns", cols).
		Msg("panel loaded")
	return p, nil
}

// openOutput returns the writer for results and a function that closes it.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func (a *app) writePanel(cmd *cobra.Command, path string, p *timeseries.Panel) error {
	w, closeFn, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := timeseries.WritePanelCSV(w, p, a.cfg.Output.Precision); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
