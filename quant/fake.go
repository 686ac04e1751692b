package quant

import "github.com/CraigKelly/tgibbs/rng"

// FakeHandle is a deterministic stand-in for a real quantification sampler,
// used by the coordinator's tests and by the analyze CLI command. Each
// tick it draws transcript abundances from an AltGamma-shaped jitter around
// its hyperparameter mean, normalized to sum to one, approximating what a
// real fragment-based quantifier would report without touching BAM files.
type FakeHandle struct {
	n      int
	src    *rng.Source
	hyper  *Hyperparameters
	state  []float64
	frags  int
}

// NewFakeHandle creates a FakeHandle for n transcripts and spliceLen flat
// splice-index entries, seeded from seed.
func NewFakeHandle(n, spliceLen int, seed int64) *FakeHandle {
	return &FakeHandle{
		n: n,
		src: rng.NewSource(seed),
		hyper: &Hyperparameters{
			Mean:        make([]float64, n),
			Shape:       make([]float64, n),
			SpliceMu:    make([]float64, spliceLen),
			SpliceSigma: make([]float64, spliceLen),
		},
		state: make([]float64, n),
		frags: 1000,
	}
}

func (h *FakeHandle) Start() error { return nil }

func (h *FakeHandle) Optimize() error {
	return h.draw(true)
}

func (h *FakeHandle) Sample() error {
	return h.draw(false)
}

func (h *FakeHandle) draw(optimize bool) error {
	var total float64
	for i := 0; i < h.n; i++ {
		mean := h.hyper.Mean[i]
		if mean <= 0 {
			mean = 1e-8
		}
		shape := h.hyper.Shape[i]
		if shape <= 0 {
			shape = 1.0
		}
		var v float64
		if optimize {
			v = mean
		} else {
			v = h.src.Gamma(shape, shape/mean)
		}
		h.state[i] = v
		total += v
	}
	if total > 0 {
		for i := range h.state {
			h.state[i] /= total
		}
	}
	return nil
}

func (h *FakeHandle) State() []float64 { return h.state }

func (h *FakeHandle) NumFrags() int { return h.frags }

func (h *FakeHandle) EngagePriors() error { return nil }

func (h *FakeHandle) Stop() error { return nil }

func (h *FakeHandle) Hyperparameters() *Hyperparameters { return h.hyper }

// FakeFactory creates FakeHandles, one RNG stream per sample.
type FakeFactory struct {
	N         int
	SpliceLen int
	Seed      int64
}

// NewHandle implements Factory.
func (f *FakeFactory) NewHandle(sampleIndex int, _ interface{}) (Handle, error) {
	return NewFakeHandle(f.N, f.SpliceLen, f.Seed+int64(sampleIndex)), nil
}
