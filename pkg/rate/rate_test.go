package rate

import (
	"math"
	"testing"

	"reacfit/internal/consts"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}

	diff := math.Abs(a - b)
	mag := math.Max(math.Abs(a), math.Abs(b))
	if mag > 1 {
		return diff/mag < tol
	}
	return diff < tol
}

func TestNew_ParameterCount(t *testing.T) {
	for _, n := range []int{0, 5, 20} {
		r := New("count", n, 1, 6, 0.857)
		want := 7 * (n + 1)
		if got := r.NumParameters(); got != want {
			t.Errorf("numResonances=%d: NumParameters() = %d, want %d", n, got, want)
		}
	}
}

func TestNew_NonResonantSeeds(t *testing.T) {
	z1, z2, mu := 1, 6, 0.857
	r := New("p12c", 0, z1, z2, mu)

	zz := float64(z1 * z2)
	wantA0 := math.Log(consts.NonResNorm * math.Cbrt(zz*mu))
	if got := r.Parameter(0); !almostEqual(got, wantA0, 1e-12) {
		t.Errorf("a0 = %v, want %v", got, wantA0)
	}
	if r.Fixed(0) {
		t.Error("a0 should start free")
	}

	if got := r.Parameter(1); got != 0 || !r.Fixed(1) {
		t.Errorf("a1 = %v (fixed=%v), want fixed 0", got, r.Fixed(1))
	}

	wantA2 := -consts.Barrier * math.Cbrt(zz*zz*mu)
	if got := r.Parameter(2); !almostEqual(got, wantA2, 1e-12) || !r.Fixed(2) {
		t.Errorf("a2 = %v (fixed=%v), want fixed %v", got, r.Fixed(2), wantA2)
	}

	for i := 3; i <= 5; i++ {
		if got := r.Parameter(i); got != 0 || r.Fixed(i) {
			t.Errorf("a%d = %v (fixed=%v), want free 0", i, got, r.Fixed(i))
		}
	}

	if got := r.Parameter(6); !almostEqual(got, -2.0/3.0, 1e-15) || !r.Fixed(6) {
		t.Errorf("a6 = %v (fixed=%v), want fixed -2/3", got, r.Fixed(6))
	}
}

func TestNew_ResonanceSeeds(t *testing.T) {
	mu := 0.9059
	r := New("p14n", 2, 1, 7, mu)

	for set := 1; set <= 2; set++ {
		base := 7 * set

		wantA0 := math.Log(consts.ResNorm * math.Pow(mu, -1.5))
		if got := r.Parameter(base); !almostEqual(got, wantA0, 1e-12) || r.Fixed(base) {
			t.Errorf("set %d: a0 = %v (fixed=%v), want free %v", set, got, r.Fixed(base), wantA0)
		}
		if got := r.Parameter(base + 1); !almostEqual(got, -consts.InvKB, 1e-12) || r.Fixed(base+1) {
			t.Errorf("set %d: a1 = %v (fixed=%v), want free %v", set, got, r.Fixed(base+1), -consts.InvKB)
		}
		for j := 2; j <= 5; j++ {
			if got := r.Parameter(base + j); got != 0 || !r.Fixed(base+j) {
				t.Errorf("set %d: a%d = %v (fixed=%v), want fixed 0", set, j, got, r.Fixed(base+j))
			}
		}
		if got := r.Parameter(base + 6); !almostEqual(got, -1.5, 1e-15) || !r.Fixed(base+6) {
			t.Errorf("set %d: a6 = %v (fixed=%v), want fixed -3/2", set, got, r.Fixed(base+6))
		}
	}
}

func TestNew_NegativeResonanceCountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative resonance count")
		}
	}()
	New("bad", -1, 1, 1, 0.5)
}

func TestReducedMassRoundTrip(t *testing.T) {
	cases := []struct {
		z1, z2 int
		mu     float64
	}{
		{1, 1, 0.5},
		{1, 6, 0.857},
		{2, 8, 3.2},
		{10, 13, 11.18},
	}

	for _, c := range cases {
		r := New("mu", 0, c.z1, c.z2, c.mu)
		if got := r.ReducedMass(); !almostEqual(got, c.mu, 1e-12) {
			t.Errorf("z1=%d z2=%d: ReducedMass() = %v, want %v", c.z1, c.z2, got, c.mu)
		}
	}
}

func TestSFactorRoundTrip(t *testing.T) {
	cases := []struct {
		z1, z2 int
		mu, s0 float64
	}{
		{1, 1, 0.5, 1.0},
		{1, 6, 0.857, 1.34e-3},
		{2, 8, 3.2, 250},
		{6, 6, 6.0, 7.2e15},
	}

	for _, c := range cases {
		r := New("sfac", 0, c.z1, c.z2, c.mu)
		r.SetSFactor(c.s0)
		if !r.Fixed(0) {
			t.Errorf("s0=%v: a0 should be fixed after SetSFactor", c.s0)
		}
		if got := r.SFactor(); !almostEqual(got, c.s0, 1e-5) {
			t.Errorf("s0=%v: SFactor() = %v", c.s0, got)
		}
	}
}

func TestResonanceRoundTrip(t *testing.T) {
	r := New("res", 3, 1, 7, 0.9059)

	cases := []struct {
		id               int
		energy, strength float64
	}{
		{0, 0.259, 1.3e-5},
		{1, 0.987, 3.6e-4},
		{2, 2.187, 0.011},
	}

	for _, c := range cases {
		if err := r.SetResonance(c.id, c.energy, c.strength); err != nil {
			t.Fatalf("SetResonance(%d): %v", c.id, err)
		}
		if got := r.ResonanceEnergy(c.id); !almostEqual(got, c.energy, 1e-5) {
			t.Errorf("id %d: ResonanceEnergy() = %v, want %v", c.id, got, c.energy)
		}
		if got := r.ResonanceStrength(c.id); !almostEqual(got, c.strength, 1e-5) {
			t.Errorf("id %d: ResonanceStrength() = %v, want %v", c.id, got, c.strength)
		}
	}
}

// id == numResonances would address one parameter set past the end of the
// buffer; it is rejected like any other out-of-range id, leaving the buffer
// untouched.
func TestSetResonance_InvalidID(t *testing.T) {
	r := New("res", 2, 1, 7, 0.9059)
	before := r.Values()

	for _, id := range []int{-1, 2, 3, 100} {
		if err := r.SetResonance(id, 0.5, 1e-4); err == nil {
			t.Errorf("SetResonance(%d) should fail", id)
		}
	}

	after := r.Values()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("parameter %d changed by rejected SetResonance: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestGetters_InvalidID(t *testing.T) {
	r := New("res", 2, 1, 7, 0.9059)

	for _, id := range []int{-1, 2, 3, 100} {
		if got := r.ResonanceEnergy(id); got != -1 {
			t.Errorf("ResonanceEnergy(%d) = %v, want -1", id, got)
		}
		if got := r.ResonanceStrength(id); got != -1 {
			t.Errorf("ResonanceStrength(%d) = %v, want -1", id, got)
		}
	}
}

// Evaluate must equal the sum of each set's exponential computed on its own.
func TestEvaluate_Additivity(t *testing.T) {
	exponents := []float64{-1, -1.0 / 3.0, 1.0 / 3.0, 1, 5.0 / 3.0}

	for _, n := range []int{0, 1, 3} {
		r := New("add", n, 1, 6, 0.857)
		for i := 0; i <= n; i++ {
			if i > 0 {
				if err := r.SetResonance(i-1, 0.2*float64(i), 1e-4*float64(i)); err != nil {
					t.Fatal(err)
				}
			}
			// Perturb the free polynomial slots too.
			r.SetParameter(7*i+3, 0.01*float64(i+1))
		}
		par := r.Values()

		for _, t9 := range []float64{0.05, 0.3, 1.0, 7.5} {
			want := 0.0
			for i := 0; i <= n; i++ {
				c := par[7*i] + par[7*i+6]*math.Log(t9)
				for j := 1; j <= 5; j++ {
					c += par[7*i+j] * math.Pow(t9, exponents[j-1])
				}
				want += math.Exp(c)
			}
			if got := r.Evaluate(t9, par); !almostEqual(got, want, 1e-12) {
				t.Errorf("n=%d t9=%v: Evaluate = %v, want %v", n, t9, got, want)
			}
		}
	}
}

// Closed-form check against the REACLIB expression worked out by hand for
// z1 = z2 = 1, mu = 0.5, S(0) = 1 MeV b at T9 = 1, where every power of T9
// is 1 and ln(T9) = 0.
func TestEvaluate_ClosedForm(t *testing.T) {
	r := New("pp", 0, 1, 1, 0.5)
	r.SetSFactor(1.0)

	a0 := math.Log(consts.NonResNorm * math.Cbrt(0.5))
	a2 := -consts.Barrier * math.Cbrt(0.5)
	want := math.Exp(a0 + a2)

	if got := r.Evaluate(1.0, r.Values()); !almostEqual(got, want, 1e-12) {
		t.Errorf("Evaluate(1.0) = %v, want %v", got, want)
	}
	if got := r.At(1.0); !almostEqual(got, want, 1e-12) {
		t.Errorf("At(1.0) = %v, want %v", got, want)
	}
}

func TestEvaluate_NonPositiveT9(t *testing.T) {
	r := New("nan", 0, 1, 1, 0.5)
	par := r.Values()

	if got := r.Evaluate(0, par); !math.IsNaN(got) && !math.IsInf(got, 0) && got != 0 {
		t.Errorf("Evaluate(0) = %v, want NaN, Inf or 0", got)
	}
	if got := r.Evaluate(-1, par); !math.IsNaN(got) {
		t.Errorf("Evaluate(-1) = %v, want NaN", got)
	}
}

func TestEvaluate_MatchesPerturbedVector(t *testing.T) {
	// Evaluate must read only the vector it is handed, never the stored
	// parameter values.
	r := New("pure", 1, 1, 7, 0.9059)
	par := r.Values()
	par[0] += 1.5
	par[7] -= 2.0

	got := r.Evaluate(0.5, par)
	if stored := r.At(0.5); almostEqual(got, stored, 1e-12) {
		t.Error("Evaluate ignored the supplied parameter vector")
	}

	want := 0.0
	for i := 0; i <= 1; i++ {
		c := par[7*i] + par[7*i+6]*math.Log(0.5)
		for j := 1; j <= 5; j++ {
			c += par[7*i+j] * math.Pow(0.5, float64(2*j-5)/3)
		}
		want += math.Exp(c)
	}
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("Evaluate = %v, want %v", got, want)
	}
}

func TestFixReleaseParameter(t *testing.T) {
	r := New("flags", 1, 1, 7, 0.9059)

	r.FixParameter(0, 3.25)
	if got := r.Parameter(0); got != 3.25 || !r.Fixed(0) {
		t.Errorf("after FixParameter: value %v fixed %v", got, r.Fixed(0))
	}

	r.ReleaseParameter(0)
	if r.Fixed(0) {
		t.Error("ReleaseParameter left the slot fixed")
	}
	if got := r.Parameter(0); got != 3.25 {
		t.Errorf("ReleaseParameter changed the value to %v", got)
	}

	r.SetParameter(0, -1.0)
	if r.Fixed(0) {
		t.Error("SetParameter changed the fixed flag")
	}
}
