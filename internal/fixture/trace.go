// Package fixture builds deterministic synthetic inputs for the demo
// commands: leakage-trace batches for the moment estimator and small factor
// graphs for belief propagation. Nothing here is exercised by the moment or
// bp packages themselves; it exists so the demos have reproducible data
// without a dependency on a real trace file.
package fixture

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// TraceBatch generates n synthetic traces of length ns, split roughly evenly
// between class 0 and class 1, where class 1 traces carry an additional
// meanGap, truncated toward zero to a whole count, added to every sample.
// Randomness comes from a SHAKE128 XOF seeded
// by seed, so the same seed always reproduces the same batch.
func TraceBatch(seed []byte, n, ns int, meanGap float64) ([][]int16, []uint16) {
	xof := sha3.NewShake128()
	xof.Write(seed)

	traces := make([][]int16, n)
	labels := make([]uint16, n)
	buf := make([]byte, 2)

	for i := 0; i < n; i++ {
		label := uint16(i % 2)
		labels[i] = label
		row := make([]int16, ns)
		for s := 0; s < ns; s++ {
			xof.Read(buf)
			noise := int16(binary.LittleEndian.Uint16(buf)%41) - 20 // +-20 counts
			v := int(noise)
			if label == 1 {
				v += int(meanGap)
			}
			row[s] = int16(v)
		}
		traces[i] = row
	}
	return traces, labels
}
