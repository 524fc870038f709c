package bp

import (
	"os"
	"time"

	"sidechan/internal/measure"
)

// Progress is invoked after every completed iteration of Run, reporting the
// 1-based iteration just finished out of the total requested.
type Progress func(iteration, total int)

// Run executes belief propagation for the given number of iterations,
// alternating FunctionUpdate and VariableUpdate sweeps. Edge buffers start
// uniform (all ones), then every profiled variable's prior is broadcast onto
// its incident edges before the first FunctionUpdate, so running Run a
// second time on the same graph restarts from scratch rather than
// continuing.
func (fg *FactorGraph) Run(iterations int, progress Progress) error {
	start := time.Now()
	defer measure.Track(start, "bp.run")

	for i := range fg.edges {
		fg.edges[i].fill(1)
	}
	fg.seedPriors()

	if fg.needsLogTable() && fg.logTable == nil {
		fg.logTable = genLogTable(uint64(fg.NC))
	}

	for it := 1; it <= iterations; it++ {
		if err := fg.functionUpdate(); err != nil {
			return err
		}
		if err := fg.variableUpdate(); err != nil {
			return err
		}
		measure.Incr("bp.iterations")
		dbg(os.Stderr, "[bp] iteration %d/%d complete\n", it, iterations)
		if progress != nil {
			progress(it, iterations)
		}
	}
	return nil
}

// seedPriors broadcasts every profiled variable's prior onto each of its
// incident edges, so the first FunctionUpdate sees the prior rather than a
// uniform message. ProfileSingle variables share their one prior row across
// every run.
func (fg *FactorGraph) seedPriors() {
	for _, v := range fg.Variables {
		if !v.Kind.profiled() {
			continue
		}
		single := v.Kind.single()
		for _, eid := range v.Neighbors {
			edge := fg.edges[eid]
			for run := 0; run < fg.NRuns; run++ {
				src := v.Prior.Row(0)
				if !single {
					src = v.Prior.Row(run)
				}
				copy(edge.Row(run), src)
			}
		}
	}
}

func (fg *FactorGraph) needsLogTable() bool {
	for _, f := range fg.Functions {
		if f.Kind == KindMUL && f.primeNC {
			return true
		}
	}
	return false
}

// Marginals returns the current posterior belief of every variable, in
// variable order, as (nRuns or 1, nc) row slices.
func (fg *FactorGraph) Marginals() [][][]float64 {
	out := make([][][]float64, len(fg.Variables))
	for i, v := range fg.Variables {
		out[i] = v.Current.Rows()
	}
	return out
}
