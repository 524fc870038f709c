package bp

// lookupUpdate runs the LOOKUP kernel: output = table[input] for a fixed
// bijective table. Because table is a permutation, the message to input at
// i1 is simply the output message at table[i1], and vice versa through the
// inverse permutation; no accumulation across colliding indices is needed.
func lookupUpdate(output, input Dist, nc int, table []uint64) {
	nRuns := output.NRuns()

	outScratch := make([]float64, nc)
	inScratch := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		o := output.Row(run)
		in := input.Row(run)

		for i1 := 0; i1 < nc; i1++ {
			res := int(table[i1])
			inScratch[i1] = o[res]
			outScratch[res] = in[i1]
		}

		copy(in, inScratch)
		copy(o, outScratch)

		clampMinRow(in, MinProba)
		clampMinRow(o, MinProba)
	}
}
