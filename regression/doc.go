// Package regression provides ordinary least squares on gonum matrices.
//
// The solver works through the normal equations, beta = (X'X)^-1 X'y, and
// switches to the Moore-Penrose pseudo-inverse of X'X when X'X is singular
// or too ill-conditioned to invert. The switch is reported through Method
// instead of an error, so a fit always produces a parameter vector.
//
// # Building a Design Matrix
//
// Append an intercept column to a single regressor:
//
//	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	design := regression.AddConstant(x) // 4x2, second column all ones
//
// # Solving
//
//	beta, method := regression.Solve(design, y)
//	if method == regression.MethodPseudoInverse {
//	    // X'X was singular, beta is the minimum-norm solution
//	}
//
// Fit additionally returns residuals and coefficient standard errors:
//
//	res := regression.Fit(design, y)
//	tStat := res.Coef(0) / res.StdErrors[0]
package regression
