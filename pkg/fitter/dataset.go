package fitter

import "fmt"

// Dataset holds measured reaction rates over temperature. Sigma carries the
// 1-sigma uncertainty of each point; a nil Sigma means unit weights.
type Dataset struct {
	T9    []float64
	Rate  []float64
	Sigma []float64
}

// Len returns the number of data points.
func (d *Dataset) Len() int { return len(d.T9) }

// Validate checks the column lengths agree and the set is nonempty.
func (d *Dataset) Validate() error {
	if len(d.T9) == 0 {
		return fmt.Errorf("dataset: no points")
	}
	if len(d.Rate) != len(d.T9) {
		return fmt.Errorf("dataset: %d temperatures but %d rates", len(d.T9), len(d.Rate))
	}
	if d.Sigma != nil && len(d.Sigma) != len(d.T9) {
		return fmt.Errorf("dataset: %d temperatures but %d sigmas", len(d.T9), len(d.Sigma))
	}
	return nil
}

// FromFunc samples f over the given temperatures. relSigma > 0 assigns each
// point a relative uncertainty relSigma*rate; relSigma <= 0 leaves Sigma nil.
func FromFunc(t9s []float64, f func(t9 float64) float64, relSigma float64) *Dataset {
	d := &Dataset{
		T9:   make([]float64, len(t9s)),
		Rate: make([]float64, len(t9s)),
	}
	copy(d.T9, t9s)
	for i, t9 := range t9s {
		d.Rate[i] = f(t9)
	}

	if relSigma > 0 {
		d.Sigma = make([]float64, len(t9s))
		for i, y := range d.Rate {
			d.Sigma[i] = relSigma * y
		}
	}
	return d
}
