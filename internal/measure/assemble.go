package measure

import (
	"errors"
	"fmt"

	"xray-angles/internal/landmark"
	"xray-angles/pkg/geometry"
)

// ErrIncompleteLandmarks is returned when measurement is requested before
// all eight landmarks have been placed.
var ErrIncompleteLandmarks = errors.New("landmark set is incomplete")

// Result holds the four clinical angles, in degrees.
type Result struct {
	HKA  float64 `json:"hka"`
	JLCA float64 `json:"jlca"`
	LDFA float64 `json:"ldfa"`
	MPTA float64 `json:"mpta"`
}

// Compute derives the four clinical angles from a completed landmark set.
// The point pairings are fixed clinical definitions:
//
//	HKA  — femoral mechanical axis (hip center to femoral condyles center)
//	       against tibial mechanical axis (ankle center to femoral condyles center)
//	JLCA — femoral condyle line against tibial plateau line
//	LDFA — femoral mechanical axis against femoral condyle line
//	MPTA — tibial mechanical axis (ankle to tibia center) against tibial plateau line
func Compute(set *landmark.Set) (Result, error) {
	if !set.Complete() {
		return Result{}, fmt.Errorf("%w: %d of %d placed", ErrIncompleteLandmarks, set.Placed(), landmark.Count)
	}

	get := func(n landmark.Name) geometry.Point2D {
		p, _ := set.Get(n)
		return p
	}
	hc := get(landmark.HipCenter)
	fc := get(landmark.FemoralCondylesCenter)
	mc := get(landmark.MedialCondyle)
	lc := get(landmark.LateralCondyle)
	mtp := get(landmark.MedialTibialPlateau)
	ltp := get(landmark.LateralTibialPlateau)
	tc := get(landmark.TibiaCenter)
	ac := get(landmark.AnkleCenter)

	var res Result
	var err error

	// The two mechanical axes meet at the femoral condyles center and point
	// away from each other, so a straight leg measures 180 between them.
	// HKA is reported as the deviation from straight.
	hkaRaw, err := AngleBetween(hc, fc, ac, fc)
	if err != nil {
		return Result{}, fmt.Errorf("HKA: %w", err)
	}
	res.HKA = 180 - hkaRaw
	if res.JLCA, err = AngleBetween(mc, lc, mtp, ltp); err != nil {
		return Result{}, fmt.Errorf("JLCA: %w", err)
	}
	if res.LDFA, err = AngleBetween(hc, fc, mc, lc); err != nil {
		return Result{}, fmt.Errorf("LDFA: %w", err)
	}
	if res.MPTA, err = AngleBetween(ac, tc, mtp, ltp); err != nil {
		return Result{}, fmt.Errorf("MPTA: %w", err)
	}

	return res, nil
}
