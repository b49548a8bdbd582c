package fitter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"reacfit/pkg/rate"
)

// basis returns the REACLIB basis function of slot j evaluated at t9: 1 for
// a0, the five fractional powers of t9 for a1..a5 and ln(t9) for a6.
func basis(j int, t9 float64) float64 {
	switch j {
	case 0:
		return 1
	case 6:
		return math.Log(t9)
	default:
		return math.Pow(t9, float64(2*j-5)/3)
	}
}

// SeedNonResonant installs a linear least-squares warm start for a
// resonance-free rate. The log of a single-set rate is linear in a0..a6, so
// the free slots of the non-resonant set can be solved for directly from
// ln(rate) before any nonlinear iteration. Data points must have positive
// rates; models with resonance sets are rejected because their summed rate is
// no longer log-linear.
func SeedNonResonant(r *rate.Rate, data *Dataset) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("seed %s: %w", r.Name(), err)
	}
	if r.NumResonances() != 0 {
		return fmt.Errorf("seed %s: model has %d resonance sets", r.Name(), r.NumResonances())
	}

	var free []int
	for j := 0; j <= 6; j++ {
		if !r.Fixed(j) {
			free = append(free, j)
		}
	}
	if len(free) == 0 {
		return fmt.Errorf("seed %s: no free parameters", r.Name())
	}
	if data.Len() < len(free) {
		return fmt.Errorf("seed %s: %d points for %d free parameters", r.Name(), data.Len(), len(free))
	}

	a := mat.NewDense(data.Len(), len(free), nil)
	b := mat.NewVecDense(data.Len(), nil)
	for i, t9 := range data.T9 {
		y := data.Rate[i]
		if y <= 0 {
			return fmt.Errorf("seed %s: non-positive rate %v at T9=%v", r.Name(), y, t9)
		}

		rhs := math.Log(y)
		for j := 0; j <= 6; j++ {
			if r.Fixed(j) {
				rhs -= r.Parameter(j) * basis(j, t9)
			}
		}
		b.SetVec(i, rhs)

		for k, j := range free {
			a.Set(i, k, basis(j, t9))
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return fmt.Errorf("seed %s: %w", r.Name(), err)
	}

	for k, j := range free {
		r.SetParameter(j, x.AtVec(k))
	}
	return nil
}
