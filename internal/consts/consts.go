package consts

const (
	NonResNorm = 7.8318e9  // Non-resonant a0 normalization, B (cm^3 s^-1 mol^-1 MeV^-1 barn^-1)
	ResNorm    = 1.5394e11 // Narrow-resonance a0 normalization, D (cm^3 s^-1 mol^-1 MeV^-1)
	InvKB      = 11.6045   // 1/kB (GK/MeV), slope of the resonance a1 term
	Barrier    = 4.2486    // Coulomb barrier coefficient of the non-resonant a2 term
)

const (
	SetSize   = 7          // parameters per REACLIB set (a0..a6)
	NonResExp = -2.0 / 3.0 // fixed a6 exponent, non-resonant set
	ResExp    = -3.0 / 2.0 // fixed a6 exponent, narrow-resonance set
	T9Min     = 0.01       // default temperature domain (GK)
	T9Max     = 10.0
)
