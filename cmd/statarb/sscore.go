package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gostatarb/signals"
)

func newSScoreCmd(a *app) *cobra.Command {
	var (
		f              ioFlags
		workers        int
		periodsPerYear float64
	)
	cmd := &cobra.Command{
		Use:   "sscore",
		Short: "Ornstein-Uhlenbeck s-score of every column",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPanel(cmd, &f)
			if err != nil {
				return err
			}

			est := a.cfg.Signals.Estimation()
			if cmd.Flags().Changed("workers") {
				est.Workers = workers
			}
			if cmd.Flags().Changed("periods-per-year") {
				est.PeriodsPerYear = periodsPerYear
			}

			s, err := signals.SScoreParallel(cmd.Context(), p.Data, est)
			if err != nil {
				return err
			}

			rows, cols := s.Dims()
			for j := 0; j < cols; j++ {
				bad := 0
				for i := 0; i < rows; i++ {
					if v := s.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
						bad++
					}
				}
				if bad > 0 {
					a.log.Warn().Str("column", p.Names[j]).Int("non_finite", bad).Msg("column is not mean reverting")
				}
			}

			out, err := p.WithData(s)
			if err != nil {
				return err
			}
			return a.writePanel(cmd, f.output, out)
		},
	}
	addIOFlags(cmd, &f)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "columns estimated concurrently (default: config or GOMAXPROCS)")
	cmd.Flags().Float64Var(&periodsPerYear, "periods-per-year", signals.TradingDaysPerYear, "observations per year used to annualize kappa")
	return cmd
}
