package regression

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PinvRcond is the relative cutoff below which singular values are treated
// as zero by PseudoInverse, matching numpy's default.
const PinvRcond = 1e-15

// Method identifies how X'X was inverted.
type Method int

const (
	// MethodInverse means X'X was inverted exactly via LU.
	MethodInverse Method = iota
	// MethodPseudoInverse means X'X was singular and the Moore-Penrose
	// pseudo-inverse was used instead.
	MethodPseudoInverse
)

func (m Method) String() string {
	switch m {
	case MethodInverse:
		return "inverse"
	case MethodPseudoInverse:
		return "pinv"
	default:
		return "unknown"
	}
}

// AddConstant returns a copy of the single-column matrix x with a column of
// ones appended on the right. x must be K x 1.
func AddConstant(x mat.Matrix) *mat.Dense {
	k, _ := x.Dims()
	out := mat.NewDense(k, 2, nil)
	for i := 0; i < k; i++ {
		out.Set(i, 0, x.At(i, 0))
		out.Set(i, 1, 1)
	}
	return out
}

// Solve estimates beta = (X'X)^-1 X'y. When X'X cannot be inverted the
// pseudo-inverse of X'X is used and MethodPseudoInverse is returned.
// x is M x k and y is M x 1; beta is k x 1.
func Solve(x, y mat.Matrix) (*mat.Dense, Method) {
	inv, method := invertGram(x)
	return project(inv, x, y), method
}

// SolveInverse estimates beta through the exact inverse of X'X. It returns
// the mat.Condition error reported by gonum when X'X is singular or
// ill-conditioned.
func SolveInverse(x, y mat.Matrix) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(gram(x)); err != nil {
		return nil, err
	}
	return project(&inv, x, y), nil
}

// SolvePseudoInverse estimates beta through pinv(X'X). It is defined for
// every input shape, including rank-deficient designs.
func SolvePseudoInverse(x, y mat.Matrix) *mat.Dense {
	return project(PseudoInverse(gram(x)), x, y)
}

// PseudoInverse returns the Moore-Penrose pseudo-inverse of a computed from
// a thin SVD. Singular values at or below PinvRcond times the largest one
// are dropped. If the SVD does not converge the result is filled with NaN.
func PseudoInverse(a mat.Matrix) *mat.Dense {
	r, c := a.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		out := mat.NewDense(c, r, nil)
		for i := 0; i < c; i++ {
			for j := 0; j < r; j++ {
				out.Set(i, j, math.NaN())
			}
		}
		return out
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := 0.0
	if len(values) > 0 {
		cutoff = PinvRcond * values[0] // values are sorted descending
	}

	// V * diag(1/s) computed in place, then multiplied by U'.
	vr, vc := v.Dims()
	for j := 0; j < vc; j++ {
		scale := 0.0
		if values[j] > cutoff {
			scale = 1 / values[j]
		}
		for i := 0; i < vr; i++ {
			v.Set(i, j, v.At(i, j)*scale)
		}
	}

	var out mat.Dense
	out.Mul(&v, u.T())
	return &out
}

// Result holds a fitted regression.
type Result struct {
	Beta      *mat.Dense // k x 1 coefficients, in design column order
	Residuals []float64  // y - X*beta
	StdErrors []float64  // nil when there are no residual degrees of freedom
	SSE       float64
	Method    Method
}

// Coef returns the i-th coefficient.
func (r *Result) Coef(i int) float64 {
	return r.Beta.At(i, 0)
}

// Fit performs OLS and reports residuals and coefficient standard errors.
func Fit(x, y mat.Matrix) *Result {
	inv, method := invertGram(x)
	beta := project(inv, x, y)

	n, k := x.Dims()
	var fitted mat.Dense
	fitted.Mul(x, beta)

	residuals := make([]float64, n)
	sse := 0.0
	for i := 0; i < n; i++ {
		residuals[i] = y.At(i, 0) - fitted.At(i, 0)
		sse += residuals[i] * residuals[i]
	}

	res := &Result{
		Beta:      beta,
		Residuals: residuals,
		SSE:       sse,
		Method:    method,
	}
	if n <= k {
		return res
	}

	s2 := sse / float64(n-k)
	res.StdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		res.StdErrors[i] = math.Sqrt(s2 * inv.At(i, i))
	}
	return res
}

// gram returns X'X.
func gram(x mat.Matrix) *mat.Dense {
	var g mat.Dense
	g.Mul(x.T(), x)
	return &g
}

// invertGram inverts X'X, falling back to the pseudo-inverse only on a
// gonum singularity report.
func invertGram(x mat.Matrix) (*mat.Dense, Method) {
	g := gram(x)

	var inv mat.Dense
	err := inv.Inverse(g)
	if err == nil {
		return &inv, MethodInverse
	}

	var cond mat.Condition
	if !errors.As(err, &cond) {
		panic(err)
	}
	return PseudoInverse(g), MethodPseudoInverse
}

// project computes inv * X' * y.
func project(inv *mat.Dense, x, y mat.Matrix) *mat.Dense {
	var xty mat.Dense
	xty.Mul(x.T(), y)

	var beta mat.Dense
	beta.Mul(inv, &xty)
	return &beta
}
