package bp

import "testing"

func rowsClose(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := got[i] - want[i]; d > eps || d < -eps {
			t.Fatalf("row = %v, want %v (diff at %d: %v)", got, want, i, d)
		}
	}
}

// TestXORUniformFixedPoint checks invariant 4: two uniform edges stay
// uniform under the XOR kernel.
func TestXORUniformFixedPoint(t *testing.T) {
	const nc = 4
	e0 := NewUniformDist(1, nc)
	e1 := NewUniformDist(1, nc)
	normalizeRow(e0.Row(0))
	normalizeRow(e1.Row(0))

	xorUpdate([]Dist{e0, e1}, nc)

	want := []float64{0.25, 0.25, 0.25, 0.25}
	rowsClose(t, e0.Row(0), want, 1e-9)
	rowsClose(t, e1.Row(0), want, 1e-9)
}

// TestXORTwoEdgeEquality reproduces the two-edge equality-constraint
// scenario: with exactly two incident edges, XOR(a,b)=0 means a=b, so each
// edge's outgoing message is simply the other edge's original (normalized)
// content.
func TestXORTwoEdgeEquality(t *testing.T) {
	const nc = 4
	e0 := NewDistFromRows([][]float64{{0.01, 0.01, 0.95, 0.03}})
	e1 := NewUniformDist(1, nc)
	normalizeRow(e1.Row(0))

	origE0 := append([]float64(nil), e0.Row(0)...)
	origE1 := append([]float64(nil), e1.Row(0)...)

	xorUpdate([]Dist{e0, e1}, nc)

	rowsClose(t, e0.Row(0), origE1, 1e-6)
	rowsClose(t, e1.Row(0), origE0, 1e-6)
}
