package bp

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// functionUpdate runs FunctionUpdate for every function node. Distinct
// function nodes never share an edge (NewFactorGraph enforces this), so the
// updates are safe to fan out across goroutines.
func (fg *FactorGraph) functionUpdate() error {
	var g errgroup.Group
	for _, f := range fg.Functions {
		f := f
		g.Go(func() error {
			return fg.updateFunction(f)
		})
	}
	return g.Wait()
}

func (fg *FactorGraph) updateFunction(f *Function) error {
	edges := make([]Dist, len(f.Neighbors))
	for i, eid := range f.Neighbors {
		edges[i] = fg.edges[eid]
	}

	switch f.Kind {
	case KindAND:
		naiveUpdate(edges, fg.NC, andOp)
	case KindXOR:
		xorUpdate(edges, fg.NC)
	case KindADD:
		addUpdate(edges, fg.NC)
	case KindMUL:
		if f.primeNC {
			mulPrimeUpdate(edges, fg.NC, fg.logTable)
		} else {
			naiveUpdate(edges, fg.NC, mulOp)
		}
	case KindXORCST:
		cstUpdate(edges[0], edges[1], fg.NC, f.Const, xorCstOp)
	case KindANDCST:
		cstUpdate(edges[0], edges[1], fg.NC, f.Const, andCstOp)
	case KindADDCST:
		cstUpdate(edges[0], edges[1], fg.NC, f.Const, addCstOp)
	case KindMULCST:
		cstUpdate(edges[0], edges[1], fg.NC, f.Const, mulCstOp)
	case KindLOOKUP:
		lookupUpdate(edges[0], edges[1], fg.NC, f.Table)
	default:
		return fmt.Errorf("bp: unknown function kind %v", f.Kind)
	}
	return nil
}
