package fixture

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"sidechan/bp"
)

// ShiftChain builds a two-variable tree: a profiled variable with a peaked
// prior over Z_nc, connected through an XORCST(v) node to an unprofiled
// variable. It's the smallest graph that exercises NewFactorGraph, the
// XORCST kernel, and a single belief-propagation sweep end to end.
func ShiftChain(nc int, peak int, v uint64) (*bp.FactorGraph, error) {
	row := make([]float64, nc)
	for i := range row {
		row[i] = 0.01
	}
	row[peak%nc] = 1
	prior := bp.NewDistFromRows([][]float64{row})

	x := bp.NewProfileSingleVariable([]int{0}, prior)
	y := bp.NewNotProfileSingleVariable([]int{1}, nc)
	fn := &bp.Function{Kind: bp.KindXORCST, Neighbors: []int{0, 1}, Const: []uint64{v}}

	return bp.NewFactorGraph([]*bp.Function{fn}, []*bp.Variable{x, y}, 2, nc, 1)
}

// XORChain builds a profiled leaf variable, a chain of XORCST nodes with
// pseudo-random per-run constants derived from seed, and an unprofiled
// variable at the far end, over nRuns independent runs. It exercises
// multi-hop propagation across several function nodes.
func XORChain(seed []byte, nc, nRuns, length int) (*bp.FactorGraph, error) {
	xof := sha3.NewShake128()
	xof.Write(seed)
	buf := make([]byte, 8)

	priorRows := make([][]float64, nRuns)
	for r := range priorRows {
		row := make([]float64, nc)
		for i := range row {
			row[i] = 0.01
		}
		xof.Read(buf)
		peak := int(binary.LittleEndian.Uint64(buf) % uint64(nc))
		row[peak] = 1
		priorRows[r] = row
	}
	prior := bp.NewDistFromRows(priorRows)

	// Edge numbering: function i has input edge 2*i and output edge 2*i+1.
	// variable 0 sees only edge 0; variable i+1 (i < length-1) sees the
	// output edge of function i and the input edge of function i+1; the
	// final variable sees only the last function's output edge.
	variables := make([]*bp.Variable, 0, length+1)
	functions := make([]*bp.Function, 0, length)

	variables = append(variables, bp.NewProfileParaVariable([]int{0}, prior))
	for i := 0; i < length; i++ {
		inEdge := 2 * i
		outEdge := 2*i + 1

		values := make([]uint64, nRuns)
		for r := range values {
			xof.Read(buf)
			values[r] = binary.LittleEndian.Uint64(buf) % uint64(nc)
		}
		functions = append(functions, &bp.Function{
			Kind:      bp.KindXORCST,
			Neighbors: []int{outEdge, inEdge},
			Const:     values,
		})

		if i == length-1 {
			variables = append(variables, bp.NewNotProfileParaVariable([]int{outEdge}, nRuns, nc))
		} else {
			nextInEdge := 2 * (i + 1)
			variables = append(variables, bp.NewNotProfileParaVariable([]int{outEdge, nextInEdge}, nRuns, nc))
		}
	}

	return bp.NewFactorGraph(functions, variables, 2*length, nc, nRuns)
}
