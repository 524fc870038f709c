package moment

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// TestTTestMean reproduces end-to-end scenario 1: ns=1, d=1, class 0 = [1,2,3],
// class 1 = [5,6,7]. Expect means 2 and 6, central sums of squares 2 and 2,
// and t = -4 / sqrt(4/9) = -6.
func TestTTestMean(t *testing.T) {
	acc, err := New(1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	traces := [][]int16{{1}, {2}, {3}, {5}, {6}, {7}}
	labels := []uint16{0, 0, 0, 1, 1, 1}
	if err := acc.Update(traces, labels); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := acc.cs[acc.idx(0, 0, 0)]; !approxEqual(got, 2, 1e-12) {
		t.Fatalf("mean class0 = %v, want 2", got)
	}
	if got := acc.cs[acc.idx(1, 0, 0)]; !approxEqual(got, 6, 1e-12) {
		t.Fatalf("mean class1 = %v, want 6", got)
	}
	if got := acc.cs[acc.idx(0, 0, 1)]; !approxEqual(got, 2, 1e-9) {
		t.Fatalf("central sum2 class0 = %v, want 2", got)
	}
	if got := acc.cs[acc.idx(1, 0, 1)]; !approxEqual(got, 2, 1e-9) {
		t.Fatalf("central sum2 class1 = %v, want 2", got)
	}

	want := -4 / math.Sqrt(4.0/9.0)
	tt := acc.GetTTest()
	if !approxEqual(tt[0][0], want, 1e-9) {
		t.Fatalf("t = %v, want %v", tt[0][0], want)
	}
}

// TestUpdateSplitMatchesSingleBatch checks the round-trip law: running N
// samples in two halves and combined yields the same cs (within tolerance)
// as running all N in one batch.
func TestUpdateSplitMatchesSingleBatch(t *testing.T) {
	const ns, d, n = 4, 2, 64
	traces, labels := syntheticBatch(n, ns)

	whole, err := New(ns, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := whole.Update(traces, labels); err != nil {
		t.Fatalf("Update: %v", err)
	}

	split, err := New(ns, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	half := n / 2
	if err := split.Update(traces[:half], labels[:half]); err != nil {
		t.Fatalf("Update first half: %v", err)
	}
	if err := split.Update(traces[half:], labels[half:]); err != nil {
		t.Fatalf("Update second half: %v", err)
	}

	for i := range whole.cs {
		if !approxEqual(whole.cs[i], split.cs[i], 1e-6) {
			t.Fatalf("cs[%d] = %v, split = %v", i, whole.cs[i], split.cs[i])
		}
	}
}

// TestTwoPassReference checks invariant 2: cs[c,s,k] equals the batch
// central sum of order k+1 computed by a two-pass reference, within
// relative tolerance.
func TestTwoPassReference(t *testing.T) {
	const ns, d, n = 3, 3, 200
	traces, labels := syntheticBatch(n, ns)

	acc, err := New(ns, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := acc.Update(traces, labels); err != nil {
		t.Fatalf("Update: %v", err)
	}

	for c := 0; c < 2; c++ {
		for s := 0; s < ns; s++ {
			var xs []float64
			for row, trace := range traces {
				if int(labels[row]) == c {
					xs = append(xs, float64(trace[s]))
				}
			}
			mean := 0.0
			for _, x := range xs {
				mean += x
			}
			mean /= float64(len(xs))
			if got := acc.cs[acc.idx(c, s, 0)]; !approxEqual(got, mean, 1e-9) {
				t.Fatalf("class %d sample %d mean = %v, want %v", c, s, got, mean)
			}
			for k := 2; k <= 2*d; k++ {
				want := 0.0
				for _, x := range xs {
					want += math.Pow(x-mean, float64(k))
				}
				got := acc.cs[acc.idx(c, s, k-1)]
				if want != 0 {
					if rel := math.Abs(got-want) / math.Abs(want); rel > 1e-7 {
						t.Fatalf("class %d sample %d order %d = %v, want %v (rel %v)", c, s, k, got, want, rel)
					}
				} else if math.Abs(got) > 1e-6 {
					t.Fatalf("class %d sample %d order %d = %v, want ~0", c, s, k, got)
				}
			}
		}
	}
}

func TestUpdateInvalidLabel(t *testing.T) {
	acc, _ := New(1, 1)
	err := acc.Update([][]int16{{1}}, []uint16{2})
	if !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("err = %v, want ErrInvalidLabel", err)
	}
}

func TestUpdateShapeMismatch(t *testing.T) {
	acc, _ := New(2, 1)
	err := acc.Update([][]int16{{1, 2, 3}}, []uint16{0})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

// syntheticBatch builds a deterministic pseudo-random batch of n traces of
// length ns with roughly balanced labels, using a simple LCG so the test has
// no dependency on math/rand's global state.
func syntheticBatch(n, ns int) ([][]int16, []uint16) {
	traces := make([][]int16, n)
	labels := make([]uint16, n)
	state := uint64(12345)
	next := func() uint64 {
		state = state*6364136223846793005 + 1442695040888963407
		return state
	}
	for i := 0; i < n; i++ {
		row := make([]int16, ns)
		for s := 0; s < ns; s++ {
			row[s] = int16(next()%201) - 100
		}
		traces[i] = row
		labels[i] = uint16(i % 2)
	}
	return traces, labels
}
