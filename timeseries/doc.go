// Package timeseries provides the series and panel types the signal
// estimators read from and write to.
//
// A Series is one column of observations. A Panel is a set of aligned
// series stored as a T x N gonum matrix, rows being time steps and columns
// assets or spreads, which is the shape the signals package consumes.
//
// # Loading a Panel
//
// Load a wide CSV (a date column followed by one column per series):
//
//	panel, err := timeseries.LoadPanelCSV("spreads.csv", nil)
//
//	// Keep only some columns
//	opts := timeseries.DefaultCSVOptions()
//	opts.Columns = []string{"XLE_XOM", "GLD_GDX"}
//	panel, err = timeseries.LoadPanelCSV("spreads.csv", opts)
//
// Missing cells ("", "NA", "NaN", "null") load as NaN.
//
// # Transformations
//
//	logPrices, _ := panel.Transform((*timeseries.Series).Log)
//	returns, _ := panel.Transform((*timeseries.Series).LogReturns)
//
// # Writing Results
//
// Wrap a result matrix with the input labels and save it:
//
//	out, _ := panel.WithData(scores)
//	err := timeseries.SavePanelCSV("scores.csv", out, 6)
package timeseries
