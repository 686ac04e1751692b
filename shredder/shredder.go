// Package shredder implements the univariate slice sampler ("Shredder")
// used for every non-conjugate conditional in package cond: gradient-aided
// bracketing to find the slice edges, falling back to bisection, plus a
// mode-finding Optimize.
package shredder

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"github.com/CraigKelly/tgibbs/rng"
)

// defaultMaxNewtonSteps is the MaxNewtonSteps every Shredder built by New
// starts with: the bound on Newton steps in edge finding before falling
// back to bisection. gibbs.Config.MaxNewtonSteps is not passed through to it.
const defaultMaxNewtonSteps = 10

// Objective evaluates the target log-density and its derivative at x.
// Every conditional sampler in package cond supplies one of these built
// from package logpdf primitives -- this is the capability-object
// re-expression of the teacher's OO Shredder-subclass hierarchy called for
// in spec.md §9: no subtyping, just a function value.
type Objective func(x float64) (lp, d float64)

// Shredder is a bounded univariate slice sampler over [Lower, Upper] for a
// target log-density with analytic gradient.
type Shredder struct {
	Lower, Upper   float64
	Tolerance      float64
	MaxNewtonSteps int
	F              Objective
}

// New creates a Shredder over [lower, upper] targeting f.
func New(lower, upper, tolerance float64, f Objective) *Shredder {
	return &Shredder{
		Lower:          lower,
		Upper:          upper,
		Tolerance:      tolerance,
		MaxNewtonSteps: defaultMaxNewtonSteps,
		F:              f,
	}
}

func assertFinite(x float64, where string) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		panic("shredder: non-finite value where finite expected (" + where + ")")
	}
}

// Sample draws one value from the slice-sampled posterior, starting the
// search at x0, per spec.md §4.B steps 1-3.
func (s *Shredder) Sample(src *rng.Source, x0 float64) float64 {
	lp0, d0 := s.F(x0)
	assertFinite(lp0, "initial lp")

	sliceHeight := math.Log(src.Uniform01()) + lp0
	assertFinite(sliceHeight, "slice height")

	xMin := s.findSliceEdge(x0, sliceHeight, lp0, d0, -1)
	xMax := s.findSliceEdge(x0, sliceHeight, lp0, d0, 1)

	x := (xMin + xMax) / 2
	for xMax-xMin > s.Tolerance {
		x = xMin + (xMax-xMin)*src.Float64()
		lp, _ := s.F(x)

		if lp >= sliceHeight {
			break
		} else if x > x0 {
			xMax = x
		} else {
			xMin = x
		}
	}

	return x
}

// Optimize runs mode-finding on the same objective. No cond sampler calls
// it: the coordinator's optimization phase drives the quantification
// handles' own Optimize and keeps slice-sampling the hyperparameters. It
// delegates to gonum's L-BFGS
// implementation on the negated objective, gradient-capped as spec.md
// requires (|d| <= 1e4), clamping the result into [Lower, Upper]. The
// optimizer itself is an out-of-scope external collaborator per spec.md
// §1 -- this is the call-site, not a reimplementation of SLSQP.
func (s *Shredder) Optimize(x0 float64) float64 {
	x0 = clamp(x0, s.Lower, s.Upper)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			lp, _ := s.F(clamp(x[0], s.Lower, s.Upper))
			return -lp
		},
		Grad: func(grad, x []float64) {
			_, d := s.F(clamp(x[0], s.Lower, s.Upper))
			grad[0] = -capGrad(d)
		},
	}

	result, err := optimize.Minimize(problem, []float64{x0}, &optimize.Settings{
		FuncEvaluations: 20,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-7,
			Iterations: 20,
		},
	}, &optimize.LBFGS{})

	if err != nil || result == nil {
		// spec.md §7: optimizer failure is a warning, caller continues with x0.
		log.Printf("shredder: optimizer failed, keeping x0=%g: %v", x0, err)
		return x0
	}

	return clamp(result.X[0], s.Lower, s.Upper)
}

func capGrad(d float64) float64 {
	const gradCap = 1e4
	if d > gradCap {
		return gradCap
	}
	if d < -gradCap {
		return -gradCap
	}
	return d
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// findSliceEdge locates where f(x) = sliceHeight on the given side,
// implementing spec.md §4.B's Newton-with-bisection-fallback algorithm.
func (s *Shredder) findSliceEdge(x0, sliceHeight, lp0, d0 float64, direction int) float64 {
	const lpEps = 1e-2
	const dEps = 1e-3

	newtonCount := 0

	lp := lp0 - sliceHeight
	d := d0
	x := x0

	var xBoundLower, xBoundUpper float64

	if direction < 0 {
		xBoundLower, xBoundUpper = s.Lower, x0
		fx, _ := s.F(s.Lower)
		if isFinite(fx) && fx >= sliceHeight {
			return s.Lower
		}
	} else {
		xBoundLower, xBoundUpper = x0, s.Upper
		fx, _ := s.F(s.Upper)
		if isFinite(fx) && fx >= sliceHeight {
			return s.Upper
		}
	}

	for math.Abs(lp) > lpEps && math.Abs(xBoundUpper-xBoundLower) > s.Tolerance {
		x1 := x - lp/d
		bisectNow := math.IsNaN(d) || d == 0.0 || math.Abs(d) < dEps || !isFinite(x1)
		if bisectNow {
			x1 = (xBoundLower + xBoundUpper) / 2
		}

		if direction < 0 && math.Abs(x-s.Lower) <= s.Tolerance && (x1 < x || lp > 0.0) {
			break
		}
		if direction > 0 && math.Abs(x-s.Upper) <= s.Tolerance && (x1 > x || lp > 0.0) {
			break
		}

		if direction < 0 {
			if lp > 0 {
				xBoundUpper = x
			} else {
				xBoundLower = x
			}
		} else {
			if lp > 0 {
				xBoundLower = x
			} else {
				xBoundUpper = x
			}
		}

		bisect := newtonCount >= s.MaxNewtonSteps ||
			x1 < xBoundLower+s.Tolerance || x1 > xBoundUpper-s.Tolerance

		if !bisect {
			x = x1
			lp, d = evalOffset(s.F, x, sliceHeight)
			bisect = !isFinite(lp) || !isFinite(d)
		}

		if bisect {
			iterationCount := 0
			for {
				x = (xBoundLower + xBoundUpper) / 2
				lp, d = evalOffset(s.F, x, sliceHeight)

				if !isFinite(lp) {
					if direction < 0 {
						xBoundLower = x
					} else {
						xBoundUpper = x
					}
				} else {
					break
				}

				iterationCount++
				if iterationCount > 50 {
					panic(errors.New("shredder: slice edge finding is not making progress").Error())
				}
			}
		} else {
			newtonCount++
		}

		assertFinite(lp, "slice edge lp")
	}

	assertFinite(x, "slice edge x")

	return x
}

func evalOffset(f Objective, x, sliceHeight float64) (lp, d float64) {
	lp, d = f(x)
	return lp - sliceHeight, d
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
