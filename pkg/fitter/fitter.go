// Package fitter binds a rate.Rate to the gonum optimizer: it packs the free
// parameters into the optimizer's location vector, holds the fixed ones at
// their current values, and minimizes the chi-square of the model against a
// measured dataset. The minimizer itself is gonum's; this package only
// configures it.
package fitter

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"reacfit/pkg/rate"
)

// Result summarizes a completed fit.
type Result struct {
	ChiSquare        float64
	ReducedChiSquare float64 // chi-square per degree of freedom
	RSquared         float64
	FuncEvaluations  int
	FreeParameters   int
}

// Fitter fits one Rate against one Dataset. Method and Settings are passed
// through to optimize.Minimize; both may be left nil for gonum's defaults.
// A Fitter runs one fit at a time over its Rate and is not safe for
// concurrent use.
type Fitter struct {
	Model    *rate.Rate
	Data     *Dataset
	Method   optimize.Method
	Settings *optimize.Settings
}

// New returns a Fitter for the given model and data.
func New(model *rate.Rate, data *Dataset) *Fitter {
	return &Fitter{Model: model, Data: data}
}

// freeIndices lists the buffer positions the optimizer may vary.
func (f *Fitter) freeIndices() []int {
	var free []int
	for i := 0; i < f.Model.NumParameters(); i++ {
		if !f.Model.Fixed(i) {
			free = append(free, i)
		}
	}
	return free
}

// chiSquare evaluates sum(((model-data)/sigma)^2) for a full parameter
// vector.
func (f *Fitter) chiSquare(par []float64) float64 {
	res := make([]float64, f.Data.Len())
	f.residuals(par, res)
	return floats.Dot(res, res)
}

// residuals fills dst with the weighted residual of every data point.
func (f *Fitter) residuals(par, dst []float64) {
	for i, t9 := range f.Data.T9 {
		r := f.Model.Evaluate(t9, par) - f.Data.Rate[i]
		if f.Data.Sigma != nil {
			r /= f.Data.Sigma[i]
		}
		dst[i] = r
	}
}

// Fit minimizes the chi-square over the free parameters, writes the fitted
// values back into the model and reports the fit quality. The fixed
// parameters never move; at least one parameter must be free.
func (f *Fitter) Fit() (*Result, error) {
	if err := f.Data.Validate(); err != nil {
		return nil, fmt.Errorf("fit %s: %w", f.Model.Name(), err)
	}

	free := f.freeIndices()
	if len(free) == 0 {
		return nil, fmt.Errorf("fit %s: no free parameters", f.Model.Name())
	}

	buf := f.Model.Values()
	objective := func(x []float64) float64 {
		for k, idx := range free {
			buf[idx] = x[k]
		}
		return f.chiSquare(buf)
	}

	problem := optimize.Problem{
		Func: objective,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, objective, x, nil)
		},
	}

	x0 := make([]float64, len(free))
	for k, idx := range free {
		x0[k] = f.Model.Parameter(idx)
	}

	result, err := optimize.Minimize(problem, x0, f.Settings, f.Method)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", f.Model.Name(), err)
	}

	for k, idx := range free {
		f.Model.SetParameter(idx, result.X[k])
	}

	return f.summarize(result, free), nil
}

func (f *Fitter) summarize(opt *optimize.Result, free []int) *Result {
	par := f.Model.Values()

	est := make([]float64, f.Data.Len())
	for i, t9 := range f.Data.T9 {
		est[i] = f.Model.Evaluate(t9, par)
	}

	var weights []float64
	if f.Data.Sigma != nil {
		weights = make([]float64, f.Data.Len())
		for i, s := range f.Data.Sigma {
			weights[i] = 1 / (s * s)
		}
	}

	res := &Result{
		ChiSquare:       f.chiSquare(par),
		RSquared:        stat.RSquaredFrom(est, f.Data.Rate, weights),
		FuncEvaluations: opt.FuncEvaluations,
		FreeParameters:  len(free),
	}
	if ndf := f.Data.Len() - len(free); ndf > 0 {
		res.ReducedChiSquare = res.ChiSquare / float64(ndf)
	}
	return res
}
