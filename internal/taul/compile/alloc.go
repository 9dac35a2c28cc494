package compile

import "github.com/dekarrin/taul/internal/taul/symbol"

// nonterminalAlloc allocates non-terminal IDs above a target domain's
// terminal IDs, tracking the boundary between main (one per declared rule)
// and helper (compiler-generated) non-terminals.
type nonterminalAlloc struct {
	definingMain bool
	next         symbol.ID

	firstHelperID symbol.ID
	names         map[symbol.ID]string
	positions     map[symbol.ID]int
}

func newNonterminalAlloc(firstID symbol.ID) *nonterminalAlloc {
	return &nonterminalAlloc{
		definingMain: true,
		next:         firstID,
		names:        map[symbol.ID]string{},
		positions:    map[symbol.ID]int{},
	}
}

// DoneDefiningMain records the main/helper boundary; called once, after every
// *_decl has been processed and before any helper is allocated.
func (a *nonterminalAlloc) DoneDefiningMain() {
	a.definingMain = false
	a.firstHelperID = a.next
}

// Define allocates the next ID, recording name and pos for debugging.
func (a *nonterminalAlloc) Define(pos int, name string) symbol.ID {
	id := a.next
	a.next++
	if name != "" {
		a.names[id] = name
	}
	a.positions[id] = pos
	return id
}

// IsMain reports whether id was allocated before DoneDefiningMain.
func (a *nonterminalAlloc) IsMain(id symbol.ID) bool {
	return id < a.firstHelperID
}

// IsHelper reports whether id was allocated as a helper; helpers are
// transparent to output.
func (a *nonterminalAlloc) IsHelper(id symbol.ID) bool {
	return id >= a.firstHelperID
}

// Name returns the debug name for id, or "" if it has none (anonymous
// helper).
func (a *nonterminalAlloc) Name(id symbol.ID) string { return a.names[id] }

// FirstHelperID returns the main/helper boundary.
func (a *nonterminalAlloc) FirstHelperID() symbol.ID { return a.firstHelperID }
