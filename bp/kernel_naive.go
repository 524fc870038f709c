package bp

// naiveOp is the binary operation a ternary kernel enforces between its two
// input slots, mapped into the output's alphabet.
type naiveOp func(i1, i2, nc int) int

func andOp(i1, i2, nc int) int { return i1 & i2 }

func mulOp(i1, i2, nc int) int { return (i1 * i2) % nc }

// naiveUpdate runs the quadratic convolution shared by AND and
// composite-modulus MUL: for every run, and every (i1, i2) pair, scatter the
// product of the two input beliefs into the output scratch at op(i1,i2),
// and likewise scatter the other two combinations to fill in the input
// scratches. The three scratch rows are then written back in place of the
// edges' prior content.
func naiveUpdate(edges []Dist, nc int, op naiveOp) {
	out, in1, in2 := edges[0], edges[1], edges[2]
	nRuns := out.NRuns()

	outScratch := make([]float64, nc)
	in1Scratch := make([]float64, nc)
	in2Scratch := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		for i := range outScratch {
			outScratch[i] = 0
			in1Scratch[i] = 0
			in2Scratch[i] = 0
		}

		o := out.Row(run)
		a := in1.Row(run)
		b := in2.Row(run)

		for i1 := 0; i1 < nc; i1++ {
			for i2 := 0; i2 < nc; i2++ {
				res := op(i1, i2, nc)
				in1Scratch[i1] += b[i2] * o[res]
				in2Scratch[i2] += a[i1] * o[res]
				outScratch[res] += a[i1] * b[i2]
			}
		}

		copy(a, in1Scratch)
		copy(b, in2Scratch)
		copy(o, outScratch)

		clampMinRow(a, MinProba)
		clampMinRow(b, MinProba)
		clampMinRow(o, MinProba)
	}
}
