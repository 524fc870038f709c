package bp

import "golang.org/x/sync/errgroup"

// variableUpdate runs VariableUpdate for every variable node. Distinct
// variable nodes never share an edge, so the updates are safe to fan out
// across goroutines.
func (fg *FactorGraph) variableUpdate() error {
	var g errgroup.Group
	for _, v := range fg.Variables {
		v := v
		g.Go(func() error {
			fg.updateVariable(v)
			return nil
		})
	}
	return g.Wait()
}

// updateVariable resets the variable's belief to its prior (or to uniform,
// if unprofiled), absorbs every incoming edge message into it by pointwise
// product, then emits on each edge the leave-one-out belief: the product of
// every *other* incoming message, obtained by dividing the absorbed belief
// back by the one message being replaced.
//
// Single-kind variables share one belief row across every run, so the
// absorption multiplies in every neighbor's message at every run into that
// single row, and the row-by-row division below still happens once per
// (neighbor, run) pair to produce a full (nRuns, nc) outgoing message per
// edge even though the belief itself has only one row.
func (fg *FactorGraph) updateVariable(v *Variable) {
	single := v.Kind.single()

	if v.Kind.profiled() {
		v.Current.copyFrom(v.Prior)
	} else {
		v.Current.fill(1)
	}

	beliefRow := func(run int) []float64 {
		if single {
			return v.Current.Row(0)
		}
		return v.Current.Row(run)
	}

	for run := 0; run < fg.NRuns; run++ {
		cur := beliefRow(run)
		for _, eid := range v.Neighbors {
			msg := fg.edges[eid].Row(run)
			for i := range cur {
				cur[i] *= msg[i]
			}
		}
	}
	if single {
		normalizeRow(v.Current.Row(0))
	} else {
		for run := 0; run < fg.NRuns; run++ {
			normalizeRow(v.Current.Row(run))
		}
	}

	for _, eid := range v.Neighbors {
		for run := 0; run < fg.NRuns; run++ {
			cur := beliefRow(run)
			msg := fg.edges[eid].Row(run)
			for i := range msg {
				msg[i] = cur[i] / msg[i]
			}
			clampMinRow(msg, MinProba)
			normalizeRow(msg)
			clampMinRow(msg, MinProba)
		}
	}

	if single {
		clampMinRow(v.Current.Row(0), MinProba)
	} else {
		for run := 0; run < fg.NRuns; run++ {
			clampMinRow(v.Current.Row(run), MinProba)
		}
	}
}
