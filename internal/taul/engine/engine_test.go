package engine

import (
	"fmt"
	"testing"

	"github.com/dekarrin/taul/internal/taul/idgroup"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePolicy drives a tiny hand-built table over a fixed rune sequence,
// recording the terminals and non-terminal spans Run reports.
type fakePolicy struct {
	table  *pt.Table
	start  symbol.ID
	input  []symbol.ID
	pos    int
	events []string
	helper map[symbol.ID]bool
}

func (f *fakePolicy) Table() *pt.Table { return f.table }
func (f *fakePolicy) Start() symbol.ID { return f.start }
func (f *fakePolicy) Pos() int         { return f.pos }

func (f *fakePolicy) Peek() (symbol.ID, error) {
	if f.pos >= len(f.input) {
		return symbol.EndOfCPInput, nil
	}
	return f.input[f.pos], nil
}

func (f *fakePolicy) Advance() error {
	f.pos++
	return nil
}

func (f *fakePolicy) OnTerminal(id symbol.ID, matched symbol.Range, assertion bool, depth int) {
	f.events = append(f.events, fmt.Sprintf("term(%s)", id))
}

func (f *fakePolicy) OnNonterminalBegin(id symbol.ID, depth int) {
	f.events = append(f.events, fmt.Sprintf("begin(%s)", id))
}

func (f *fakePolicy) OnNonterminalEnd(id symbol.ID, depth int) {
	f.events = append(f.events, fmt.Sprintf("end(%s)", id))
}

func (f *fakePolicy) IsHelper(id symbol.ID) bool { return f.helper[id] }

func (f *fakePolicy) HandleTerminalError(want pt.Term, got symbol.ID, pos int) (bool, error) {
	return false, fmt.Errorf("terminal mismatch at %d", pos)
}

func (f *fakePolicy) HandleNonterminalError(nonterminal symbol.ID, got symbol.ID, pos int) (bool, error) {
	return false, fmt.Errorf("no rule for %s at %d", nonterminal, pos)
}

func (f *fakePolicy) HandlePrecedenceError(level, required uint32, pos int) (bool, error) {
	return false, fmt.Errorf("precedence error at %d", pos)
}

// buildDigitsTable builds: START -> '0'-'9' HELPER ; HELPER -> '0'-'9' HELPER | <empty>
func buildDigitsTable() (*pt.Table, symbol.ID, symbol.ID) {
	domain := symbol.CodePointDomain
	grouper := idgroup.New(domain)
	table := pt.NewTable(grouper)

	start := symbol.PPRID(0)
	helper := symbol.PPRID(1)

	digitRange := symbol.Range{Low: symbol.CPID('0'), High: symbol.CPID('9')}
	table.AddRule(pt.Rule{Nonterminal: start, Terms: []pt.Term{
		pt.Terminal(digitRange, false),
		pt.Nonterminal(helper, pt.NoPreced),
	}})
	table.AddRule(pt.Rule{Nonterminal: helper, Terms: []pt.Term{
		pt.Terminal(digitRange, false),
		pt.Nonterminal(helper, pt.NoPreced),
	}})
	table.AddRule(pt.Rule{Nonterminal: helper, Terms: nil})

	grouper.AddUseCase(digitRange.Low, digitRange.High)
	grouper.AddUseCase(symbol.EndOfCPInput, symbol.EndOfCPInput)

	digitGid := grouper.GroupID(digitRange.Low)
	endGid := grouper.GroupID(symbol.EndOfCPInput)

	table.Map(pt.Key{Nonterminal: start, Group: digitGid}, 0)
	table.Map(pt.Key{Nonterminal: helper, Group: digitGid}, 1)
	table.Map(pt.Key{Nonterminal: helper, Group: endGid}, 2)

	return table, start, helper
}

func TestRun_MatchesDigitSequence(t *testing.T) {
	table, start, helper := buildDigitsTable()
	input := []symbol.ID{symbol.CPID('1'), symbol.CPID('2'), symbol.CPID('3')}

	p := &fakePolicy{
		table:  table,
		start:  start,
		input:  input,
		helper: map[symbol.ID]bool{helper: true},
	}

	err := Run(p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.pos)
	assert.Contains(t, p.events, fmt.Sprintf("begin(%s)", start))
	assert.Contains(t, p.events, fmt.Sprintf("end(%s)", start))

	termCount := 0
	for _, e := range p.events {
		if e == fmt.Sprintf("term(%s)", input[0]) || e == fmt.Sprintf("term(%s)", input[1]) || e == fmt.Sprintf("term(%s)", input[2]) {
			termCount++
		}
	}
	assert.Equal(t, 3, termCount)
}

func TestRun_NonterminalEndFiresAfterAllChildTerms(t *testing.T) {
	table, start, helper := buildDigitsTable()
	input := []symbol.ID{symbol.CPID('1'), symbol.CPID('2'), symbol.CPID('3')}

	p := &fakePolicy{
		table:  table,
		start:  start,
		input:  input,
		helper: map[symbol.ID]bool{helper: true},
	}

	err := Run(p)
	require.NoError(t, err)

	beginIdx := -1
	endIdx := -1
	for i, e := range p.events {
		if e == fmt.Sprintf("begin(%s)", start) {
			beginIdx = i
		}
		if e == fmt.Sprintf("end(%s)", start) {
			endIdx = i
		}
	}
	require.NotEqual(t, -1, beginIdx)
	require.NotEqual(t, -1, endIdx)

	// begin must fire exactly once, immediately before its rule's terms are
	// matched, and end only after every one of them has been.
	assert.Equal(t, 0, beginIdx)
	assert.Equal(t, len(p.events)-1, endIdx)
	assert.Equal(t, []string{
		fmt.Sprintf("begin(%s)", start),
		fmt.Sprintf("term(%s)", input[0]),
		fmt.Sprintf("term(%s)", input[1]),
		fmt.Sprintf("term(%s)", input[2]),
		fmt.Sprintf("end(%s)", start),
	}, p.events)
}

func TestRun_UnmappedLookaheadReturnsError(t *testing.T) {
	table, start, helper := buildDigitsTable()
	input := []symbol.ID{symbol.CPID('x')}

	p := &fakePolicy{
		table:  table,
		start:  start,
		input:  input,
		helper: map[symbol.ID]bool{helper: true},
	}

	err := Run(p)
	assert.Error(t, err)
}
