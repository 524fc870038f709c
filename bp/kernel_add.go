package bp

import "gonum.org/v1/gonum/dsp/fourier"

// addUpdate runs the k-ary ADD kernel over Z_nc: a real FFT turns the
// constraint "sum of all incident edges is 0 mod nc" into a pointwise
// product of spectra, exactly mirroring xorUpdate but operating in the
// Fourier domain of Z_nc rather than the Walsh-Hadamard domain of GF(2)^n.
func addUpdate(edges []Dist, nc int) {
	fft := fourier.NewFFT(nc)
	halfLen := nc/2 + 1
	nRuns := edges[0].NRuns()
	k := len(edges)

	spectra := make([][]complex128, k)
	for i := range spectra {
		spectra[i] = make([]complex128, halfLen)
	}
	acc := make([]complex128, halfLen)
	seqBuf := make([]float64, nc)

	for run := 0; run < nRuns; run++ {
		for i := range acc {
			acc[i] = 1
		}
		for i, e := range edges {
			fft.Coefficients(spectra[i], e.Row(run))
			clipZeroComplex(spectra[i], MinProba)
			for j := range acc {
				acc[j] *= spectra[i][j]
			}
			normalizeComplexSum(acc)
		}
		for i, e := range edges {
			row := e.Row(run)
			spec := spectra[i]
			for j := range spec {
				spec[j] = acc[j] / spec[j]
			}
			fft.Sequence(seqBuf, spec)
			copy(row, seqBuf)
			clampMinRow(row, MinProba)
			normalizeRow(row)
			clampMinRow(row, MinProba)
		}
	}
}
