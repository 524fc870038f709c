package moment

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sidechan/internal/measure"
)

// Accumulator holds the per-class central-sum tensor of shape (2, ns, 2*d)
// and the per-class sample counts used to derive the t-statistic on demand.
//
// cs is stored flat: cs[idx(c, s, k)] holds, for k==0, the running mean
// mu_{c,s}, and for k>=1, the running central sum of order k+1.
//
// Update is not safe to call concurrently with itself or with GetTTest on
// the same Accumulator; internal parallelism is only across disjoint slices
// of cs within a single call.
type Accumulator struct {
	ns int
	d  int
	cs []float64
	n  [2]uint64
}

// New creates an Accumulator for ns trace samples and t-test order d.
func New(ns, d int) (*Accumulator, error) {
	if ns <= 0 || d <= 0 {
		return nil, ErrInvalidParams
	}
	return &Accumulator{
		ns: ns,
		d:  d,
		cs: make([]float64, 2*ns*2*d),
	}, nil
}

func (a *Accumulator) idx(c, s, k int) int {
	order := 2 * a.d
	return c*a.ns*order + s*order + k
}

// combTerm is a single correction term k in the recurrence for moment j:
// cs[j-1] +-= C(j,k) * delta^k * cs[j-k-1].
type combTerm struct {
	coef float64
	k    int
}

type combEntry struct {
	j     int
	terms []combTerm
}

// buildCombTerms precomputes, for j from 2*d down to 2, the binomial
// coefficients C(j,k) for k = 1..j-2. These do not depend on n or the
// trace data and are reused for every row in a single Update call.
func buildCombTerms(d int) []combEntry {
	entries := make([]combEntry, 0, 2*d-1)
	for j := 2 * d; j >= 2; j-- {
		var terms []combTerm
		for k := 1; k <= j-2; k++ {
			terms = append(terms, combTerm{coef: binomial(j, k), k: k})
		}
		entries = append(entries, combEntry{j: j, terms: terms})
	}
	return entries
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}

// computeMults computes, for each entry in cbs, the multiplicative factor
// m_j = (n-1)^j * (1 - (-1/(n-1))^(j-1)) used when n > 1.
func computeMults(cbs []combEntry, n float64) []float64 {
	mults := make([]float64, len(cbs))
	for i, e := range cbs {
		j := e.j
		mults[i] = math.Pow(n-1, float64(j)) * (1 - math.Pow(-1/(n-1), float64(j-1)))
	}
	return mults
}

// Update folds n fresh traces of shape (n, ns) with class labels y (length
// n, each in {0,1}) into the accumulator.
func (a *Accumulator) Update(traces [][]int16, y []uint16) error {
	if len(traces) != len(y) {
		return fmt.Errorf("moment: %w: %d trace rows vs %d labels", ErrShapeMismatch, len(traces), len(y))
	}
	cbs := buildCombTerms(a.d)
	measure.Add("moment.samples", uint64(len(traces)))
	for row, trace := range traces {
		if len(trace) != a.ns {
			return fmt.Errorf("moment: %w: row %d has length %d, want %d", ErrShapeMismatch, row, len(trace), a.ns)
		}
		label := y[row]
		if label > 1 {
			return fmt.Errorf("moment: %w: row %d has label %d", ErrInvalidLabel, row, label)
		}
		c := int(label)
		a.n[c]++
		n := float64(a.n[c])
		mults := computeMults(cbs, n)
		dbg(os.Stderr, "[moment] row=%d class=%d n=%.0f\n", row, c, n)
		if err := a.updateRow(c, trace, n, cbs, mults); err != nil {
			return err
		}
	}
	return nil
}

// updateRow applies the one-pass recurrence for a single trace, fanning the
// sweep over trace-sample indices out across disjoint chunks so each worker
// owns its own slice of cs and its own scratch delta-power buffer.
func (a *Accumulator) updateRow(c int, trace []int16, n float64, cbs []combEntry, mults []float64) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > a.ns {
		workers = a.ns
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (a.ns + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < a.ns; start += chunk {
		start := start
		end := start + chunk
		if end > a.ns {
			end = a.ns
		}
		g.Go(func() error {
			deltaPows := make([]float64, 2*a.d)
			for s := start; s < end; s++ {
				a.updateSample(c, s, float64(trace[s]), n, cbs, mults, deltaPows)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *Accumulator) updateSample(c, s int, x, n float64, cbs []combEntry, mults []float64, deltaPows []float64) {
	mean := a.cs[a.idx(c, s, 0)]
	delta := (x - mean) / n

	acc := delta
	for i := range deltaPows {
		deltaPows[i] = acc
		acc *= delta
	}

	// Highest order first: the correction terms for moment j read
	// cs[j-k-1], a strictly lower moment that must still hold its
	// pre-update value.
	for i, e := range cbs {
		j := e.j
		slot := a.idx(c, s, j-1)
		if n > 1 {
			a.cs[slot] += deltaPows[j-1] * mults[i]
		}
		for _, t := range e.terms {
			other := a.cs[a.idx(c, s, j-t.k-1)]
			term := t.coef * deltaPows[t.k-1] * other
			if t.k&1 == 1 {
				a.cs[slot] -= term
			} else {
				a.cs[slot] += term
			}
		}
	}
	a.cs[a.idx(c, s, 0)] += delta
}

// GetTTest returns the t-statistic of orders 1..d for every trace sample, as
// a (d, ns) matrix T where T[D-1][s] is the order-D statistic at sample s.
//
// If either class has zero samples, the result contains NaN/Inf per IEEE-754
// division semantics; callers must ensure both classes are populated.
func (a *Accumulator) GetTTest() [][]float64 {
	t := make([][]float64, a.d)
	for i := range t {
		t[i] = make([]float64, a.ns)
	}

	n0 := float64(a.n[0])
	n1 := float64(a.n[1])

	workers := runtime.GOMAXPROCS(0)
	if workers > a.ns {
		workers = a.ns
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (a.ns + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < a.ns; start += chunk {
		start := start
		end := start + chunk
		if end > a.ns {
			end = a.ns
		}
		g.Go(func() error {
			for s := start; s < end; s++ {
				a.ttestSample(s, n0, n1, t)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	return t
}

func (a *Accumulator) ttestSample(s int, n0, n1 float64, t [][]float64) {
	for d := 1; d <= a.d; d++ {
		var u0, u1, v0, v1 float64
		switch d {
		case 1:
			u0 = a.cs[a.idx(0, s, 0)]
			u1 = a.cs[a.idx(1, s, 0)]
			v0 = a.cs[a.idx(0, s, 1)] / n0
			v1 = a.cs[a.idx(1, s, 1)] / n1
		case 2:
			u0 = a.cs[a.idx(0, s, 1)] / n0
			u1 = a.cs[a.idx(1, s, 1)] / n1
			v0 = a.cs[a.idx(0, s, 3)]/n0 - u0*u0
			v1 = a.cs[a.idx(1, s, 3)]/n1 - u1*u1
		default:
			m0d := a.cs[a.idx(0, s, d-1)] / n0
			m1d := a.cs[a.idx(1, s, d-1)] / n1
			m02 := a.cs[a.idx(0, s, 1)] / n0
			m12 := a.cs[a.idx(1, s, 1)] / n1
			u0 = m0d / math.Pow(m02, float64(d)/2)
			u1 = m1d / math.Pow(m12, float64(d)/2)
			v0 = (a.cs[a.idx(0, s, 2*d-1)]/n0 - m0d*m0d) / math.Pow(m02, float64(d))
			v1 = (a.cs[a.idx(1, s, 2*d-1)]/n1 - m1d*m1d) / math.Pow(m12, float64(d))
		}
		t[d-1][s] = (u0 - u1) / math.Sqrt(v0/n0+v1/n1)
	}
}
