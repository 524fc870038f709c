package bp

import "testing"

// TestMULPrimeUniformFixedPoint checks that the prime-modulus log-trick
// kernel leaves uniform edges uniform, for a small prime alphabet.
func TestMULPrimeUniformFixedPoint(t *testing.T) {
	const nc = 5
	out := NewUniformDist(1, nc)
	in1 := NewUniformDist(1, nc)
	in2 := NewUniformDist(1, nc)
	normalizeRow(out.Row(0))
	normalizeRow(in1.Row(0))
	normalizeRow(in2.Row(0))

	logTable := genLogTable(nc)
	mulPrimeUpdate([]Dist{out, in1, in2}, nc, logTable)

	want := make([]float64, nc)
	for i := range want {
		want[i] = 1.0 / nc
	}
	rowsClose(t, out.Row(0), want, 1e-6)
	rowsClose(t, in1.Row(0), want, 1e-6)
	rowsClose(t, in2.Row(0), want, 1e-6)
}

// TestMULZeroEntryMarginal checks mulZeroEntry's closed-form output against
// a direct enumeration of the pairs where i1=0 or i2=0 (single-counted at
// (0,0)), for concrete non-uniform rows.
func TestMULZeroEntryMarginal(t *testing.T) {
	const nc = 5
	out := []float64{0.1, 0.2, 0.3, 0.2, 0.2}
	in1 := []float64{0.4, 0.1, 0.1, 0.2, 0.2}
	in2 := []float64{0.3, 0.3, 0.1, 0.1, 0.2}

	var wantOut0, wantIn1_0, wantIn2_0 float64
	for i1 := 0; i1 < nc; i1++ {
		for i2 := 0; i2 < nc; i2++ {
			if i1 != 0 && i2 != 0 {
				continue
			}
			wantOut0 += in1[i1] * in2[i2]
			if i1 == 0 {
				wantIn1_0 += in2[i2] * out[0]
			}
			if i2 == 0 {
				wantIn2_0 += in1[i1] * out[0]
			}
		}
	}

	mulZeroEntry(out, in1, in2)

	if d := out[0] - wantOut0; d > 1e-12 || d < -1e-12 {
		t.Fatalf("out[0] = %v, want %v", out[0], wantOut0)
	}
	if d := in1[0] - wantIn1_0; d > 1e-12 || d < -1e-12 {
		t.Fatalf("in1[0] = %v, want %v", in1[0], wantIn1_0)
	}
	if d := in2[0] - wantIn2_0; d > 1e-12 || d < -1e-12 {
		t.Fatalf("in2[0] = %v, want %v", in2[0], wantIn2_0)
	}
}

func sum(row []float64) float64 {
	s := 0.0
	for _, v := range row {
		s += v
	}
	return s
}
