package pt

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/taul/internal/taul/idgroup"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Key identifies one entry of a Table's mapping: a main non-terminal paired
// with a terminal-group column.
type Key struct {
	Nonterminal symbol.ID
	Group       idgroup.GroupID
}

// Table is a compiled parse table: its rule vector, its ID grouper, the
// (nonterminal, group) -> rule-index mapping, and the FIRST/FOLLOW/Prefix
// sets computed for each non-terminal, helpers included.
type Table struct {
	Rules   []Rule
	Grouper *idgroup.Grouper

	mapping map[Key]int

	First  map[symbol.ID]*symbol.Set
	Follow map[symbol.ID]*symbol.Set
	Prefix map[symbol.ID]*symbol.Set
}

// NewTable creates an empty Table over the given grouper.
func NewTable(grouper *idgroup.Grouper) *Table {
	return &Table{
		Grouper: grouper,
		mapping: make(map[Key]int),
		First:   make(map[symbol.ID]*symbol.Set),
		Follow:  make(map[symbol.ID]*symbol.Set),
		Prefix:  make(map[symbol.ID]*symbol.Set),
	}
}

// AddRule appends r and returns its rule index.
func (t *Table) AddRule(r Rule) int {
	t.Rules = append(t.Rules, r)
	return len(t.Rules) - 1
}

// Map inserts (key -> ruleIndex). It reports false without inserting if the
// key is already mapped to a different rule, so that callers can collect
// ambiguity diagnostics instead of silently overwriting an entry.
func (t *Table) Map(key Key, ruleIndex int) (existing int, ok bool) {
	if cur, has := t.mapping[key]; has {
		return cur, cur == ruleIndex
	}
	t.mapping[key] = ruleIndex
	return ruleIndex, true
}

// Get returns the rule chosen for (nonterminal, group(terminalID)), and false
// if no rule is mapped.
func (t *Table) Get(nonterminal symbol.ID, terminalID symbol.ID) (Rule, int, bool) {
	gid := t.Grouper.GroupID(terminalID)
	idx, ok := t.mapping[Key{Nonterminal: nonterminal, Group: gid}]
	if !ok {
		return Rule{}, -1, false
	}
	return t.Rules[idx], idx, true
}

// GetByGroup is Get, but taking an already-resolved group ID.
func (t *Table) GetByGroup(nonterminal symbol.ID, gid idgroup.GroupID) (Rule, int, bool) {
	idx, ok := t.mapping[Key{Nonterminal: nonterminal, Group: gid}]
	if !ok {
		return Rule{}, -1, false
	}
	return t.Rules[idx], idx, true
}

// String renders the table as an aligned text dump: one row per
// (nonterminal, group) mapping, using the same rosed table-insertion idiom
// the teacher uses to dump its own LALR tables.
func (t *Table) String() string {
	data := [][]string{{"nonterminal", "group", "range", "rule"}}
	for key, idx := range t.mapping {
		data = append(data, []string{
			key.Nonterminal.String(),
			fmt.Sprintf("%d", key.Group),
			t.Grouper.SymbolRange(key.Group).String(),
			t.Rules[idx].String(),
		})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
