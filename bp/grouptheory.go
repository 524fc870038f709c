package bp

// primeFactors returns the ordered list of distinct prime factors of order,
// found by trial division up to sqrt(order). Unlike a partial trial-division
// pass that stops once the running quotient drops below the trial divisor,
// this keeps dividing out each discovered prime entirely before moving to
// the next candidate, and folds in a leftover cofactor greater than 1 (which
// can only itself be prime, since every smaller factor has already been
// removed) so the result is complete rather than missing a single large
// prime factor.
func primeFactors(order uint64) []uint64 {
	var factors []uint64
	n := order
	for p := uint64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		factors = append(factors, p)
		for n%p == 0 {
			n /= p
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// isPrime reports whether n is prime, via trial division up to sqrt(n).
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for p := uint64(2); p*p <= n; p++ {
		if n%p == 0 {
			return false
		}
	}
	return true
}

// modExp computes base^exp mod m via square-and-multiply.
func modExp(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % m
		}
		exp >>= 1
		base = (base * base) % m
	}
	return result
}

// testGenerator implements the primitive-root test of Katz & Lindell,
// Introduction to Modern Cryptography, Algorithm B.18: h is a generator of
// the multiplicative group of order q (i.e. the cyclic group Z_{q+1}^*) iff
// h^(q/p) != 1 mod (q+1) for every prime p dividing q.
func testGenerator(q uint64, primes []uint64, h uint64) bool {
	for _, p := range primes {
		if modExp(h, q/p, q+1) == 1 {
			return false
		}
	}
	return true
}

// findGenerator returns the smallest primitive root of Z_p^*, for prime p.
// It factors the group order p-1 and tests candidates h = 2, 3, ... with
// testGenerator until one passes.
func findGenerator(p uint64) uint64 {
	q := p - 1
	primes := primeFactors(q)
	for h := uint64(2); h < p; h++ {
		if testGenerator(q, primes, h) {
			return h
		}
	}
	// p-1 always has a generator for prime p; reaching here means p < 3,
	// where every nonzero residue is trivially a generator.
	return 1
}

// genLogTable returns the discrete-log table of Z_p^* for prime p: table[j]
// holds g^j mod p for j = 0..p-2, where g is the generator found by
// findGenerator. This is the table the MUL kernel uses to remap
// multiplication in Z_p^* onto addition modulo p-1.
func genLogTable(p uint64) []uint64 {
	g := findGenerator(p)
	table := make([]uint64, p-1)
	v := uint64(1)
	for j := range table {
		table[j] = v
		v = (v * g) % p
	}
	return table
}
