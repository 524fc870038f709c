package bp

import "testing"

// TestRunConvergesOnShiftChain builds a small tree: a profiled variable x
// with a peaked prior, connected through an XORCST(v) node to an
// unprofiled variable y. After one iteration y's posterior should match x's
// prior XORed with v, and after a second iteration the graph should be at a
// fixed point (further iterations don't change the posteriors).
func TestRunConvergesOnShiftChain(t *testing.T) {
	const nc = 8
	const v = 3

	prior := NewDistFromRows([][]float64{{0.01, 0.01, 0.01, 0.01, 0.01, 0.9, 0.01, 0.04}})
	x := NewProfileSingleVariable([]int{0}, prior)
	y := NewNotProfileSingleVariable([]int{1}, nc)

	fn := &Function{Kind: KindXORCST, Neighbors: []int{0, 1}, Const: []uint64{v}}

	fg, err := NewFactorGraph([]*Function{fn}, []*Variable{x, y}, 2, nc, 1)
	if err != nil {
		t.Fatalf("NewFactorGraph: %v", err)
	}

	if err := fg.Run(1, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	marginals := fg.Marginals()
	yBelief := marginals[1][0]

	wantPeak := 5 ^ v
	for i, p := range yBelief {
		if i == wantPeak {
			if p < 0.5 {
				t.Fatalf("y belief at peak %d = %v, want > 0.5", wantPeak, p)
			}
		}
	}

	after1 := append([]float64(nil), yBelief...)
	if err := fg.Run(2, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	after2 := fg.Marginals()[1][0]
	rowsClose(t, after2, after1, 1e-6)
}

func TestRunCallsProgress(t *testing.T) {
	const nc = 4
	x := NewNotProfileParaVariable([]int{0}, 2, nc)
	y := NewNotProfileParaVariable([]int{1}, 2, nc)
	fn := &Function{Kind: KindXORCST, Neighbors: []int{0, 1}, Const: []uint64{1, 2}}

	fg, err := NewFactorGraph([]*Function{fn}, []*Variable{x, y}, 2, nc, 2)
	if err != nil {
		t.Fatalf("NewFactorGraph: %v", err)
	}

	var calls []int
	err = fg.Run(3, func(iteration, total int) {
		calls = append(calls, iteration)
		if total != 3 {
			t.Fatalf("total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 3 || calls[0] != 1 || calls[2] != 3 {
		t.Fatalf("calls = %v, want [1 2 3]", calls)
	}
}
