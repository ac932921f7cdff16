// Package circlefit estimates a circle center from boundary points clicked
// around the femoral head.
package circlefit

import (
	"errors"
	"fmt"
	"math"

	"xray-angles/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// MinPoints is the minimum number of boundary points required for a fit.
const MinPoints = 3

var (
	// ErrTooFewPoints is returned when fewer than MinPoints are supplied.
	ErrTooFewPoints = errors.New("circle fit requires at least 3 points")

	// ErrCollinearPoints is returned when all points lie on a single line,
	// which leaves the circle center unconstrained.
	ErrCollinearPoints = errors.New("circle fit points are collinear")
)

// collinearEps bounds the normalized triangle area below which a point set
// is treated as collinear.
const collinearEps = 1e-9

// Result holds the estimated circle parameters. Only the center is used for
// landmark placement; the radius is reported for diagnostics.
type Result struct {
	Center geometry.Point2D
	Radius float64
}

// Fit estimates the circle best matching the given boundary points using the
// algebraic (Kasa) least-squares formulation: each point contributes a row
// [2x 2y 1] with right-hand side x^2+y^2, and the overdetermined system is
// solved by QR decomposition.
func Fit(points []geometry.Point2D) (Result, error) {
	n := len(points)
	if n < MinPoints {
		return Result{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	if collinear(points) {
		return Result{}, ErrCollinearPoints
	}

	A := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)

	for i, p := range points {
		A.Set(i, 0, 2*p.X)
		A.Set(i, 1, 2*p.Y)
		A.Set(i, 2, 1)
		b.SetVec(i, p.X*p.X+p.Y*p.Y)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return Result{}, fmt.Errorf("circle fit solve: %w", err)
	}

	cx := params.AtVec(0)
	cy := params.AtVec(1)
	c := params.AtVec(2)

	// c = r^2 - cx^2 - cy^2; guard against tiny negative values from rounding.
	r2 := c + cx*cx + cy*cy
	if r2 < 0 {
		r2 = 0
	}

	return Result{
		Center: geometry.Point2D{X: cx, Y: cy},
		Radius: math.Sqrt(r2),
	}, nil
}

// collinear reports whether every point lies on a single line. The reference
// direction runs from the centroid to the farthest point, so a duplicated
// click cannot pick a degenerate direction. Cross products are normalized by
// the span of the set so the test is scale-independent.
func collinear(points []geometry.Point2D) bool {
	c := geometry.Centroid(points)

	var dir geometry.Point2D
	var span float64
	for _, p := range points {
		if d := c.Distance(p); d > span {
			span = d
			dir = p.Sub(c)
		}
	}
	if span == 0 {
		// All points coincide.
		return true
	}

	for _, p := range points {
		d := p.Sub(c)
		cross := dir.X*d.Y - dir.Y*d.X
		if math.Abs(cross)/(span*span) > collinearEps {
			return false
		}
	}
	return true
}
