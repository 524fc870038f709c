package bp

// xorUpdate runs the k-ary XOR kernel: the Walsh-Hadamard transform turns
// the constraint "XOR of all incident edges is 0" into a pointwise product,
// so the outgoing message on each edge is the inverse transform of the
// product of every other edge's transformed row.
func xorUpdate(edges []Dist, nc int) {
	nRuns := edges[0].NRuns()
	k := len(edges)

	transformed := make([][]float64, k)
	for i := range transformed {
		transformed[i] = make([]float64, nc)
	}
	acc := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		for i := range acc {
			acc[i] = 1
		}
		for i, e := range edges {
			row := transformed[i]
			copy(row, e.Row(run))
			fwht(row)
			clampAwayFromZero(row, MinProba)
			for j := range acc {
				acc[j] *= row[j]
			}
			normalizeRow(acc)
		}
		for i, e := range edges {
			out := e.Row(run)
			row := transformed[i]
			for j := range out {
				out[j] = acc[j] / row[j]
			}
			fwht(out)
			clampMinRow(out, MinProba)
			normalizeRow(out)
			clampMinRow(out, MinProba)
		}
	}
}
