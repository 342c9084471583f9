package main

import (
	"github.com/spf13/cobra"

	"github.com/sartorproj/gostatarb/signals"
)

func newZScoreCmd(a *app) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "zscore",
		Short: "Standardize every column by its mean and standard deviation",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPanel(cmd, &f)
			if err != nil {
				return err
			}
			out, err := p.WithData(signals.ZScore(p.Data))
			if err != nil {
				return err
			}
			return a.writePanel(cmd, f.output, out)
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}
