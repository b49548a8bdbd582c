package main // import "reacfit"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"reacfit/pkg/rate"
	"reacfit/pkg/util"
)

type resonance struct {
	energy   float64
	strength float64
}

// resonanceFlags collects repeated -res energy:strength arguments.
type resonanceFlags []resonance

func (r *resonanceFlags) String() string {
	parts := make([]string, len(*r))
	for i, res := range *r {
		parts[i] = fmt.Sprintf("%g:%g", res.energy, res.strength)
	}
	return strings.Join(parts, ",")
}

func (r *resonanceFlags) Set(s string) error {
	fields := strings.Split(s, ":")
	if len(fields) != 2 {
		return fmt.Errorf("want energy:strength, got %q", s)
	}

	energy, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("bad energy %q: %w", fields[0], err)
	}
	strength, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("bad strength %q: %w", fields[1], err)
	}

	*r = append(*r, resonance{energy: energy, strength: strength})
	return nil
}

func main() {
	var resonances resonanceFlags

	name := flag.String("name", "rate", "Name of the reaction rate")
	z1 := flag.Int("z1", 1, "Atomic number of the target")
	z2 := flag.Int("z2", 1, "Atomic number of the reactant")
	mu := flag.Float64("mu", 0.5, "Reduced mass of the reactants (amu)")
	s0 := flag.Float64("s0", 0, "S-factor at zero energy (MeV b); 0 keeps the S(0)=1 guess")
	tMin := flag.Float64("tmin", 0, "Lower T9 bound; 0 uses the model default")
	tMax := flag.Float64("tmax", 0, "Upper T9 bound; 0 uses the model default")
	points := flag.Int("n", 30, "Number of temperature points")
	logGrid := flag.Bool("log", false, "Log-spaced temperature grid")
	flag.Var(&resonances, "res", "Resonance as energy:strength in MeV, repeatable")
	flag.Parse()

	r := rate.New(*name, len(resonances), *z1, *z2, *mu)
	if *s0 > 0 {
		r.SetSFactor(*s0)
	}
	for i, res := range resonances {
		if err := r.SetResonance(i, res.energy, res.strength); err != nil {
			log.Fatalf("resonance %d: %v", i, err)
		}
	}

	lo, hi := r.Domain()
	if *tMin > 0 {
		lo = *tMin
	}
	if *tMax > 0 {
		hi = *tMax
	}

	var grid []float64
	if *logGrid {
		grid = util.T9LogGrid(lo, hi, *points)
	} else {
		grid = util.T9Grid(lo, hi, *points)
	}

	fmt.Printf("Rate: %s (z1=%d z2=%d mu=%g amu)\n", r.Name(), *z1, *z2, r.ReducedMass())
	fmt.Printf("S(0) = %s b\n", util.FormatEnergy(r.SFactor()))
	for i := 0; i < r.NumResonances(); i++ {
		fmt.Printf("Resonance %d: Er = %s, wg = %s\n",
			i, util.FormatEnergy(r.ResonanceEnergy(i)), util.FormatEnergy(r.ResonanceStrength(i)))
	}
	fmt.Println()

	if err := util.Tabulate(os.Stdout, r, grid); err != nil {
		log.Fatalf("tabulate: %v", err)
	}
}
