// Package idgroup collapses contiguous symbol-ID ranges that a grammar never
// distinguishes into single parse-table columns, keeping table width
// proportional to the number of terminal classes the grammar actually cares
// about rather than to the size of the underlying ID domain (which, for code
// points, is all of Unicode).
package idgroup

import (
	"sort"

	"github.com/dekarrin/taul/internal/taul/symbol"
)

// GroupID is the index of a collapsed cell in a Grouper.
type GroupID int

// Grouper starts as a single cell spanning its whole domain and is refined by
// AddUseCase calls made during compilation. After compilation, only
// GroupID/SymbolRange are called.
type Grouper struct {
	cells []symbol.Range
}

// New creates a Grouper whose sole cell is domain.
func New(domain symbol.Range) *Grouper {
	return &Grouper{cells: []symbol.Range{domain}}
}

// AddUseCase splits the grouper's partition so that [low, high] is covered by
// a contiguous run of whole cells, introducing a cut immediately before low
// and immediately after high wherever those points fall strictly inside an
// existing cell. A cut exactly on a cell boundary is a no-op.
func (g *Grouper) AddUseCase(low, high symbol.ID) {
	if low > high {
		low, high = high, low
	}
	for i := 0; i < len(g.cells); i++ {
		r := g.cells[i]
		hasLow := r.Includes(low) && low != r.Low
		hasHigh := r.Includes(high) && high != r.High
		mayExit := r.Includes(high)

		switch {
		case hasLow && hasHigh:
			g.cells = spliceReplace(g.cells, i,
				symbol.Range{Low: r.Low, High: low - 1},
				symbol.Range{Low: low, High: high},
				symbol.Range{Low: high + 1, High: r.High},
			)
			i += 2
		case hasLow && !hasHigh:
			g.cells = spliceReplace(g.cells, i,
				symbol.Range{Low: r.Low, High: low - 1},
				symbol.Range{Low: low, High: r.High},
			)
			i++
		case !hasLow && hasHigh:
			g.cells = spliceReplace(g.cells, i,
				symbol.Range{Low: r.Low, High: high},
				symbol.Range{Low: high + 1, High: r.High},
			)
			i++
		}
		if mayExit {
			break
		}
	}
}

func spliceReplace(cells []symbol.Range, idx int, replacement ...symbol.Range) []symbol.Range {
	out := make([]symbol.Range, 0, len(cells)+len(replacement)-1)
	out = append(out, cells[:idx]...)
	out = append(out, replacement...)
	out = append(out, cells[idx+1:]...)
	return out
}

// GroupID returns the cell index containing id, found by binary search over
// cell highs.
func (g *Grouper) GroupID(id symbol.ID) GroupID {
	i := sort.Search(len(g.cells), func(i int) bool { return g.cells[i].High >= id })
	return GroupID(i)
}

// SymbolRange returns the cell at group id gid.
func (g *Grouper) SymbolRange(gid GroupID) symbol.Range {
	return g.cells[gid]
}

// NumGroups returns the number of cells in the partition, i.e. the number of
// distinct parse-table columns this grouper produces.
func (g *Grouper) NumGroups() int { return len(g.cells) }

// invariantCheck verifies that each cell starts right after the previous one
// ends, so the cells are sorted with no gaps or overlaps between them; it
// does not compare the first and last cells against the domain's bounds. It
// exists for use from tests
// only, mirroring the debug-only assertions in the original id_grouper.h.
func (g *Grouper) invariantCheck() error {
	for i := 1; i < len(g.cells); i++ {
		if g.cells[i].Low != g.cells[i-1].High+1 {
			return errGap(g.cells[i-1], g.cells[i])
		}
	}
	return nil
}

type gapError struct {
	prev, next symbol.Range
}

func (e gapError) Error() string {
	return "idgroup: gap or overlap between cells " + e.prev.String() + " and " + e.next.String()
}

func errGap(prev, next symbol.Range) error { return gapError{prev: prev, next: next} }
