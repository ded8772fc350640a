package kopt

import (
	"github.com/katalvlaran/lkh/tour"
)

// bridgeCut holds four tour positions x < y < z < w.
type bridgeCut struct {
	x, y, z, w int
}

// bridgeGain returns old − new for the double bridge at positions c: the
// edges after each position are removed and the four arcs
// A=(w+1..x) B=(x+1..y) C=(y+1..z) D=(z+1..w) are reconnected as A D C B:
//
//	removed: (x,x+1) (y,y+1) (z,z+1) (w,w+1)
//	added:   (x,z+1) (x+1,z) (y,w+1) (y+1,w)
func (e *Engine) bridgeGain(c bridgeCut) float64 {
	t := e.tour
	x0, x1 := t.At(c.x), t.At(c.x+1)
	y0, y1 := t.At(c.y), t.At(c.y+1)
	z0, z1 := t.At(c.z), t.At(c.z+1)
	w0, w1 := t.At(c.w), t.At(c.w+1)
	old := e.w.At(x0, x1) + e.w.At(y0, y1) + e.w.At(z0, z1) + e.w.At(w0, w1)
	nu := e.w.At(x0, z1) + e.w.At(x1, z0) + e.w.At(y0, w1) + e.w.At(y1, w0)

	return old - nu
}

// bridgeOrder realises the bridge at c through Tour.Generate.
func (e *Engine) bridgeOrder(c bridgeCut) (bool, []int) {
	t := e.tour
	x0, x1 := t.At(c.x), t.At(c.x+1)
	y0, y1 := t.At(c.y), t.At(c.y+1)
	z0, z1 := t.At(c.z), t.At(c.z+1)
	w0, w1 := t.At(c.w), t.At(c.w+1)
	removed := []tour.Edge{tour.NewEdge(x0, x1), tour.NewEdge(y0, y1), tour.NewEdge(z0, z1), tour.NewEdge(w0, w1)}
	added := []tour.Edge{tour.NewEdge(x0, z1), tour.NewEdge(x1, z0), tour.NewEdge(y0, w1), tour.NewEdge(y1, w0)}

	return t.Generate(removed, added)
}

// doubleBridge searches the configured bridge neighbourhood and returns the
// gain and order of the chosen move, or gain 0. With FastBridge the first
// improving valid bridge wins; otherwise the best one. Bridges leading to a
// tour already in memory are skipped.
func (e *Engine) doubleBridge() (float64, []int) {
	var (
		bestGain  float64
		bestOrder []int
	)
	try := func(c bridgeCut) bool {
		g := e.bridgeGain(c)
		if g <= eps || g <= bestGain {
			return false
		}
		ok, order := e.bridgeOrder(c)
		if !ok || e.memory.Contains(tour.HashOrder(order)) {
			return false
		}
		bestGain, bestOrder = g, order

		return e.opts.FastBridge
	}

	switch e.opts.Bridge {
	case BridgeExhaustive:
		e.scanExhaustive(try)
	case BridgeCandidates:
		e.scanCandidates(try)
	}

	return bestGain, bestOrder
}

// scanExhaustive visits every x < y < z < w. O(n⁴): small instances only.
func (e *Engine) scanExhaustive(try func(bridgeCut) bool) {
	n := e.tour.Len()
	var x, y, z, w int
	for x = 0; x < n; x++ {
		for y = x + 1; y < n; y++ {
			for z = y + 1; z < n; z++ {
				for w = z + 1; w < n; w++ {
					if try(bridgeCut{x, y, z, w}) {
						return
					}
				}
			}
		}
	}
}

// scanCandidates chains the cut nodes through candidate lists: y is a
// candidate of x, z of y and w of z, and their positions must increase.
func (e *Engine) scanCandidates(try func(bridgeCut) bool) {
	n := e.tour.Len()
	var ix, iy, iz, iw, x int
	for ix = 0; ix < n; ix++ {
		x = e.tour.At(ix)
		for _, cy := range e.lists.Of(x) {
			iy = e.tour.Index(cy.Node)
			if iy <= ix {
				continue
			}
			for _, cz := range e.lists.Of(cy.Node) {
				iz = e.tour.Index(cz.Node)
				if iz <= iy {
					continue
				}
				for _, cw := range e.lists.Of(cz.Node) {
					iw = e.tour.Index(cw.Node)
					if iw <= iz {
						continue
					}
					if try(bridgeCut{ix, iy, iz, iw}) {
						return
					}
				}
			}
		}
	}
}
