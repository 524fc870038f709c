package bp

// cstOp is the operation a CST kernel enforces between its input slot and
// the per-run constant v, mapped into the output's alphabet.
type cstOp func(i1 int, v uint64, nc int) int

func xorCstOp(i1 int, v uint64, nc int) int { return i1 ^ int(v) }
func andCstOp(i1 int, v uint64, nc int) int { return i1 & int(v) }
func addCstOp(i1 int, v uint64, nc int) int { return (i1 + int(v)) % nc }
func mulCstOp(i1 int, v uint64, nc int) int { return (i1 * int(v)) % nc }

// cstUpdate runs the binary kernel shared by the four CST function kinds:
// output = op(input, v) for a fixed per-run constant v. Unlike the ternary
// naive kernel this is linear in nc per run, since v collapses one of the
// two summed dimensions to a single value.
func cstUpdate(output, input Dist, nc int, values []uint64, op cstOp) {
	nRuns := output.NRuns()

	outScratch := make([]float64, nc)
	inScratch := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		for i := range outScratch {
			outScratch[i] = 0
			inScratch[i] = 0
		}

		o := output.Row(run)
		in := input.Row(run)
		v := values[run]

		for i1 := 0; i1 < nc; i1++ {
			res := op(i1, v, nc)
			inScratch[i1] += o[res]
			outScratch[res] += in[i1]
		}

		copy(in, inScratch)
		copy(o, outScratch)

		clampMinRow(in, MinProba)
		clampMinRow(o, MinProba)
	}
}
