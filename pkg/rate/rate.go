// Package rate models a thermonuclear reaction rate in the JINA REACLIB
// functional form and maps physical quantities (S-factor, resonance energy,
// resonance strength) into and out of the fit parameters.
//
// A rate is a sum of sets of seven parameters a0..a6, each set contributing
//
//	exp[ a0 + a1/T9 + a2*T9^(-1/3) + a3*T9^(1/3) + a4*T9 + a5*T9^(5/3) + a6*ln(T9) ]
//
// with T9 the temperature in GK. Set 0 carries the non-resonant
// charged-particle contribution, every further set one narrow resonance.
// Neutron-induced non-resonant rates are not supported: the charge-dependent
// a2 barrier term is always installed.
package rate

import (
	"fmt"
	"math"

	"reacfit/internal/consts"
)

// Rate is one reaction rate with fixed topology (charges, reduced mass,
// resonance count) and a mutable parameter buffer of 7*(numResonances+1)
// entries. During a fit the buffer is owned by the external fitting engine;
// a Rate supports one fitting session at a time and is not safe for
// concurrent mutation.
type Rate struct {
	name          string
	numResonances int
	z1, z2        int     // atomic numbers of target and reactant
	mu            float64 // reduced mass (amu), as given at construction
	params        []Param
	t9Min, t9Max  float64
}

// New creates a rate for a charged-particle reaction with the given number of
// narrow resonances. z1 and z2 are the atomic numbers of target and reactant,
// mu the reduced mass in amu. Inputs are taken as given: zero charges or mass
// produce degenerate parameters, not errors.
//
// The non-resonant set starts with a0 guessed for S(0) = 1 MeV b (free), a1
// fixed to 0, a2 fixed from the charges and reduced mass, a3..a5 free at 0
// and a6 fixed to -2/3. Each resonance set starts with a0 guessed for unit
// strength and a1 for a 1 MeV resonance (both free), a2..a5 fixed to 0 and
// a6 fixed to -3/2.
func New(name string, numResonances, z1, z2 int, mu float64) *Rate {
	if numResonances < 0 {
		panic(fmt.Sprintf("rate %s: negative resonance count %d", name, numResonances))
	}

	r := &Rate{
		name:          name,
		numResonances: numResonances,
		z1:            z1,
		z2:            z2,
		mu:            mu,
		params:        make([]Param, consts.SetSize*(numResonances+1)),
		t9Min:         consts.T9Min,
		t9Max:         consts.T9Max,
	}

	zz := float64(z1 * z2)
	r.SetParameter(index(0, 0), math.Log(consts.NonResNorm*math.Cbrt(zz*mu)))
	r.FixParameter(index(0, 1), 0)
	r.FixParameter(index(0, 2), -consts.Barrier*math.Cbrt(zz*zz*mu))
	// a3..a5 stay free at 0.
	r.FixParameter(index(0, 6), consts.NonResExp)

	for i := 1; i <= numResonances; i++ {
		r.SetParameter(index(i, 0), math.Log(consts.ResNorm*math.Pow(mu, -1.5)))
		r.SetParameter(index(i, 1), -consts.InvKB)
		for j := 2; j <= 5; j++ {
			r.FixParameter(index(i, j), 0)
		}
		r.FixParameter(index(i, 6), consts.ResExp)
	}

	return r
}

// Name returns the name given to the rate.
func (r *Rate) Name() string { return r.name }

// NumResonances returns the number of narrow-resonance sets.
func (r *Rate) NumResonances() int { return r.numResonances }

// Domain returns the temperature range of the fit in GK.
func (r *Rate) Domain() (t9Min, t9Max float64) { return r.t9Min, r.t9Max }

// SetSFactor fixes a0 of the non-resonant set from the S-factor at zero
// energy, s0 in MeV b:
//
//	a0 = ln[B (z1 z2 mu)^(1/3) S(0)]
//
// The parameter is fixed; call ReleaseParameter(0) afterwards to let it
// float.
func (r *Rate) SetSFactor(s0 float64) {
	zz := float64(r.z1 * r.z2)
	r.FixParameter(index(0, 0), math.Log(consts.NonResNorm*math.Cbrt(zz*r.mu)*s0))
}

// SetResonance fixes a0 and a1 of resonance id from its energy (MeV) and
// strength (MeV):
//
//	a0 = ln[D mu^(-3/2) wg]
//	a1 = -11.6045 Er
//
// Ids run 0..numResonances-1; out-of-range ids leave the buffer untouched and
// return an error. The parameters are fixed; ReleaseParameter lets them
// float.
func (r *Rate) SetResonance(id int, energy, strength float64) error {
	if id < 0 || id >= r.numResonances {
		return fmt.Errorf("rate %s: resonance id %d out of range [0, %d)", r.name, id, r.numResonances)
	}

	set := id + 1
	r.FixParameter(index(set, 0), math.Log(consts.ResNorm*math.Pow(r.mu, -1.5)*strength))
	r.FixParameter(index(set, 1), -consts.InvKB*energy)
	return nil
}

// ReducedMass inverts the a2 term of the non-resonant set back into a reduced
// mass in amu. It reflects whatever a2 currently holds, not the value the
// rate was constructed with.
func (r *Rate) ReducedMass() float64 {
	zz := float64(r.z1 * r.z2)
	return math.Pow(r.Parameter(index(0, 2))/-consts.Barrier, 3) / (zz * zz)
}

// SFactor inverts a0 of the non-resonant set back into S(0) in MeV b, using
// the reduced mass derived from a2.
func (r *Rate) SFactor() float64 {
	mu := r.ReducedMass()
	zz := float64(r.z1 * r.z2)
	return math.Exp(r.Parameter(index(0, 0))) / consts.NonResNorm / math.Cbrt(zz*mu)
}

// ResonanceEnergy inverts a1 of resonance id back into the resonance energy
// in MeV. Invalid ids return -1.
func (r *Rate) ResonanceEnergy(id int) float64 {
	if id < 0 || id >= r.numResonances {
		return -1
	}
	return r.Parameter(index(id+1, 1)) / -consts.InvKB
}

// ResonanceStrength inverts a0 of resonance id back into the resonance
// strength in MeV, using the reduced mass derived from a2 of the non-resonant
// set. Invalid ids return -1.
func (r *Rate) ResonanceStrength(id int) float64 {
	if id < 0 || id >= r.numResonances {
		return -1
	}
	mu := r.ReducedMass()
	return math.Exp(r.Parameter(index(id+1, 0))) / consts.ResNorm / math.Pow(mu, -1.5)
}

// Evaluate computes the rate at temperature t9 (GK) from the given parameter
// vector, laid out as in the Rate's own buffer. It is a pure function of its
// arguments and is the callback handed to an external fitting engine. t9 <= 0
// propagates NaN per ordinary floating-point semantics.
func (r *Rate) Evaluate(t9 float64, par []float64) float64 {
	lnT9 := math.Log(t9)

	total := 0.0
	for i := 0; i <= r.numResonances; i++ {
		component := par[index(i, 0)] + par[index(i, 6)]*lnT9
		for j := 1; j <= 5; j++ {
			// Exponents (2j-5)/3: -1, -1/3, 1/3, 1, 5/3.
			component += par[index(i, j)] * math.Pow(t9, float64(2*j-5)/3)
		}
		total += math.Exp(component)
	}
	return total
}

// At evaluates the rate at t9 using the current parameter values.
func (r *Rate) At(t9 float64) float64 {
	lnT9 := math.Log(t9)

	total := 0.0
	for i := 0; i <= r.numResonances; i++ {
		component := r.params[index(i, 0)].Value + r.params[index(i, 6)].Value*lnT9
		for j := 1; j <= 5; j++ {
			component += r.params[index(i, j)].Value * math.Pow(t9, float64(2*j-5)/3)
		}
		total += math.Exp(component)
	}
	return total
}
