package rate

import "reacfit/internal/consts"

// Param is a single fit parameter together with its fixed/free status. Fixed
// parameters keep their value during a fit; free parameters belong to the
// optimizer.
type Param struct {
	Value float64
	Fixed bool
}

// index maps (set, slot) to the position in the flat parameter buffer. Set 0
// is the non-resonant set, sets 1..numResonances are narrow resonances; slots
// run a0..a6.
func index(set, slot int) int {
	return consts.SetSize*set + slot
}

// NumParameters returns the length of the parameter buffer,
// 7*(numResonances+1).
func (r *Rate) NumParameters() int {
	return len(r.params)
}

// Parameter returns the current value of parameter i.
func (r *Rate) Parameter(i int) float64 {
	return r.params[i].Value
}

// SetParameter overwrites the value of parameter i without touching its
// fixed/free status.
func (r *Rate) SetParameter(i int, v float64) {
	r.params[i].Value = v
}

// FixParameter sets parameter i to v and marks it fixed.
func (r *Rate) FixParameter(i int, v float64) {
	r.params[i] = Param{Value: v, Fixed: true}
}

// ReleaseParameter marks parameter i free so a fit may vary it.
func (r *Rate) ReleaseParameter(i int) {
	r.params[i].Fixed = false
}

// Fixed reports whether parameter i is held fixed.
func (r *Rate) Fixed(i int) bool {
	return r.params[i].Fixed
}

// Values returns a copy of the current parameter values in buffer order. The
// copy is safe to hand to an external fitting engine as its working vector.
func (r *Rate) Values() []float64 {
	vals := make([]float64, len(r.params))
	for i, p := range r.params {
		vals[i] = p.Value
	}
	return vals
}
