package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gostatarb/signals"
	"github.com/sartorproj/gostatarb/stats"
	"github.com/sartorproj/gostatarb/timeseries"
)

// diagnosis summarises one column. Non-finite values encode as JSON null.
type diagnosis struct {
	Column        string   `json:"column"`
	N             int      `json:"n"`
	Mean          *float64 `json:"mean"`
	Std           *float64 `json:"std"`
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	ACF1          *float64 `json:"acf1"`
	Slope         *float64 `json:"slope"`
	Intercept     *float64 `json:"intercept"`
	Kappa         *float64 `json:"kappa"`
	EqMean        *float64 `json:"eq_mean"`
	EqStd         *float64 `json:"eq_std"`
	HalfLife      *float64 `json:"half_life"`
	Solver        string   `json:"solver"`
	MeanReverting bool     `json:"mean_reverting"`
	ADFStatistic  *float64 `json:"adf_statistic"`
	ADFPValue     *float64 `json:"adf_pvalue"`
	ADFLags       int      `json:"adf_lags"`
	Stationary    bool     `json:"stationary"`
}

func newDiagnoseCmd(a *app) *cobra.Command {
	var (
		f      ioFlags
		format string
		maxLag int
	)
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Report OU parameters, ADF and autocorrelation for every column",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q", format)
			}

			p, err := a.loadPanel(cmd, &f)
			if err != nil {
				return err
			}
			rows := diagnosePanel(p, a.cfg.Signals.Estimation(), maxLag)

			w, closeFn, err := openOutput(cmd, f.output)
			if err != nil {
				return err
			}
			if format == "json" {
				err = writeDiagnosesJSON(w, rows)
			} else {
				err = writeDiagnosesTable(w, rows)
			}
			if err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	addIOFlags(cmd, &f)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "report format: table or json")
	cmd.Flags().IntVar(&maxLag, "max-lag", 0, "ADF lag order (default: (n-1)^(1/3))")
	return cmd
}

func diagnosePanel(p *timeseries.Panel, est *signals.Config, maxLag int) []diagnosis {
	_, cols := p.Dims()
	out := make([]diagnosis, cols)
	for j := 0; j < cols; j++ {
		out[j] = diagnose(p.Column(j), est, maxLag)
	}
	return out
}

func diagnose(s *timeseries.Series, est *signals.Config, maxLag int) diagnosis {
	sum := stats.Describe(s.Values)
	ou := signals.EstimateOU(s.Values, est)

	d := diagnosis{
		Column:        s.Name,
		N:             sum.N,
		Mean:          finite(sum.Mean),
		Std:           finite(sum.Std),
		Min:           finite(sum.Min),
		Max:           finite(sum.Max),
		Slope:         finite(ou.Slope),
		Intercept:     finite(ou.Intercept),
		Kappa:         finite(ou.Kappa),
		EqMean:        finite(ou.Mean),
		EqStd:         finite(ou.VarEq),
		HalfLife:      finite(ou.HalfLife),
		Solver:        ou.Method.String(),
		MeanReverting: ou.MeanReverting(),
	}
	if acf := stats.ACF(s.Values, 1); len(acf) > 1 {
		d.ACF1 = finite(acf[1])
	}
	if adf := stats.ADF(s.Values, maxLag); adf != nil {
		d.ADFStatistic = finite(adf.Statistic)
		d.ADFPValue = finite(adf.PValue)
		d.ADFLags = adf.Lags
		d.Stationary = adf.IsStationary
	}
	return d
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeDiagnosesJSON(w io.Writer, rows []diagnosis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeDiagnosesTable(w io.Writer, rows []diagnosis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tN\tMEAN\tSTD\tACF1\tB\tKAPPA\tEQ_MEAN\tEQ_STD\tHALF_LIFE\tADF\tP\tSOLVER\tOU")
	for _, d := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			d.Column, d.N,
			cell(d.Mean), cell(d.Std), cell(d.ACF1),
			cell(d.Slope), cell(d.Kappa), cell(d.EqMean), cell(d.EqStd), cell(d.HalfLife),
			cell(d.ADFStatistic), cell(d.ADFPValue),
			d.Solver, d.MeanReverting)
	}
	return tw.Flush()
}

func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
