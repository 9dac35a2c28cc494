package idgroup

import (
	"testing"

	"github.com/dekarrin/taul/internal/taul/symbol"
	"github.com/stretchr/testify/assert"
)

func TestGrouper_SingleCellInitially(t *testing.T) {
	g := New(symbol.CodePointDomain)
	assert.Equal(t, 1, g.NumGroups())
	assert.NoError(t, g.invariantCheck())
}

func TestGrouper_AddUseCase_SplitsInterior(t *testing.T) {
	g := New(symbol.CodePointDomain)
	g.AddUseCase(symbol.CPID('a'), symbol.CPID('z'))

	assert.Equal(t, 3, g.NumGroups())
	assert.NoError(t, g.invariantCheck())

	loGroup := g.GroupID(symbol.CPID('a'))
	hiGroup := g.GroupID(symbol.CPID('z'))
	assert.Equal(t, hiGroup, loGroup, "whole use-case range maps to one contiguous cell")
}

func TestGrouper_UseCaseRangeStability(t *testing.T) {
	g := New(symbol.CodePointDomain)
	g.AddUseCase(symbol.CPID('a'), symbol.CPID('z'))
	g.AddUseCase(symbol.CPID('0'), symbol.CPID('9'))

	lo := g.GroupID(symbol.CPID('a'))
	hi := g.GroupID(symbol.CPID('z'))
	r := g.SymbolRange(lo)
	for gid := lo; gid <= hi; gid++ {
		_ = g.SymbolRange(gid)
	}
	assert.Equal(t, symbol.CPID('a'), r.Low)
	assert.NoError(t, g.invariantCheck())
}

func TestGrouper_EndpointOnBoundaryOmitsCut(t *testing.T) {
	g := New(symbol.CodePointDomain)
	before := g.NumGroups()
	g.AddUseCase(symbol.FirstCPID, symbol.CPID('a'))
	// low coincides with the domain's low, so no cut should be introduced there
	assert.Equal(t, before+1, g.NumGroups())
}
