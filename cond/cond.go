// Package cond implements the non-conjugate conditional samplers of
// spec.md §4.C: one type per posterior, each taking its conditioning data
// as Draw arguments and composing a shredder.Objective in closed form from
// package logpdf primitives, with a fresh shredder.Shredder per Draw.
// Conjugate conditionals (NormalMu, NormalSigma)
// draw directly with no shredder involved.
package cond

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
