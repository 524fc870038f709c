package bp

import "gonum.org/v1/gonum/dsp/fourier"

// mulPrimeUpdate runs the ternary MUL kernel for prime nc. Zero absorbs
// under multiplication and has no logarithm, so it is handled separately
// from the nc-1 nonzero elements, which form the cyclic group Z_nc^* and are
// remapped onto Z_{nc-1} by discrete log, letting the ADD kernel's real-FFT
// convolution stand in for multiplication.
//
// edges must be [output, input1, input2]; logTable is genLogTable(nc).
func mulPrimeUpdate(edges []Dist, nc int, logTable []uint64) {
	out, in1, in2 := edges[0], edges[1], edges[2]
	nRuns := out.NRuns()

	fft := fourier.NewFFT(nc - 1)
	halfLen := (nc-1)/2 + 1
	spectra := [3][]complex128{
		make([]complex128, halfLen),
		make([]complex128, halfLen),
		make([]complex128, halfLen),
	}
	acc := make([]complex128, halfLen)
	seqBuf := make([]float64, nc-1)
	permBuf := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		o := out.Row(run)
		a := in1.Row(run)
		b := in2.Row(run)

		mulZeroEntry(o, a, b)

		p0 := [3]float64{o[0], a[0], b[0]}
		rows := [3][]float64{o, a, b}

		for _, row := range rows {
			alignToLog(row, logTable, permBuf)
		}

		for i := range acc {
			acc[i] = 1
		}
		for i, row := range rows {
			fft.Coefficients(spectra[i], row[1:])
			clipZeroComplex(spectra[i], MinProba)
			for j := range acc {
				acc[j] *= spectra[i][j]
			}
			normalizeComplexSum(acc)
		}
		for i, row := range rows {
			spec := spectra[i]
			for j := range spec {
				spec[j] = acc[j] / spec[j]
			}
			fft.Sequence(seqBuf, spec)
			sub := row[1:]
			copy(sub, seqBuf)
			clampMinRow(sub, MinProba)
			normalizeRow(sub)
			scaleRow(sub, 1-p0[i])
			clampMinRow(sub, MinProba)
		}

		for _, row := range rows {
			unalignFromLog(row, logTable, permBuf)
		}
	}
}

// mulZeroEntry computes the contribution of the alphabet element 0 to each
// of the three messages, restricted to the pairs (i1=0, any i2) and
// (any i1, i2=0): output = in1*in2 always lands on 0 in either case, so this
// captures exactly the mass the full quadratic kernel would have scattered
// into index 0, without enumerating the (nc-1)^2 pairs that avoid it.
func mulZeroEntry(out, in1, in2 []float64) {
	var sumIn1, sumIn2 float64
	for _, v := range in1 {
		sumIn1 += v
	}
	for _, v := range in2 {
		sumIn2 += v
	}

	in1Zero, in2Zero, outZero := in1[0], in2[0], out[0]

	newOut0 := in1Zero*sumIn2 + in2Zero*(sumIn1-in1Zero)
	newIn1_0 := outZero * sumIn2
	newIn2_0 := outZero * sumIn1

	out[0] = newOut0
	in1[0] = newIn1_0
	in2[0] = newIn2_0
}

// alignToLog permutes row's entries 1..nc-1 so that position i holds the
// value originally at position logTable[i-1] = g^(i-1) mod nc, turning the
// multiplicative structure of Z_nc^* into the additive structure of
// Z_{nc-1} that the ADD-style FFT convolution expects. Position 0 is left
// untouched. scratch must have the same length as row.
func alignToLog(row []float64, logTable []uint64, scratch []float64) {
	copy(scratch, row)
	for i := 1; i < len(row); i++ {
		row[i] = scratch[logTable[i-1]]
	}
}

// unalignFromLog is the exact inverse of alignToLog.
func unalignFromLog(row []float64, logTable []uint64, scratch []float64) {
	copy(scratch, row)
	for i := 1; i < len(row); i++ {
		row[logTable[i-1]] = scratch[i]
	}
}
