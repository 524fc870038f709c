package bp

// fwht computes the in-place Walsh-Hadamard transform of a, whose length
// must be a power of two. It is its own inverse up to a scale factor of
// len(a); callers that need a true inverse divide by that factor, which in
// this package happens implicitly through the post-transform row
// normalization every kernel applies.
func fwht(a []float64) {
	n := len(a)
	for h := 1; h < n; h *= 2 {
		for i := 0; i < n; i += 2 * h {
			for j := i; j < i+h; j++ {
				x, y := a[j], a[j+h]
				a[j] = x + y
				a[j+h] = x - y
			}
		}
	}
}

// clipZeroComplex replaces any spectrum entry whose real and imaginary parts
// are both exactly zero with (MinProba, MinProba), avoiding a division by
// zero in the belief-division step that follows.
func clipZeroComplex(row []complex128, min float64) {
	for i, v := range row {
		if real(v) == 0 && imag(v) == 0 {
			row[i] = complex(min, min)
		}
	}
}

func normalizeComplexSum(row []complex128) {
	var sum complex128
	for _, v := range row {
		sum += v
	}
	inv := 1 / sum
	for i := range row {
		row[i] *= inv
	}
}
