package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddRange_MergesAdjacent(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('c'))
	s.AddRange(CPID('d'), CPID('f'))

	assert.Equal(t, 1, len(s.Ranges()), "adjacent ranges should merge into one")
	assert.Equal(t, CPID('a'), s.Ranges()[0].Low)
	assert.Equal(t, CPID('f'), s.Ranges()[0].High)
	assert.Equal(t, 6, s.Len())
}

func TestSet_AddRange_KeepsDisjointSeparate(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('c'))
	s.AddRange(CPID('x'), CPID('z'))

	assert.Equal(t, 2, len(s.Ranges()))
}

func TestSet_RemoveRange_SplitsInterior(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('z'))
	s.RemoveRange(CPID('m'), CPID('m'))

	assert.Equal(t, 2, len(s.Ranges()))
	assert.False(t, s.IncludesID(CPID('m')))
	assert.True(t, s.IncludesID(CPID('l')))
	assert.True(t, s.IncludesID(CPID('n')))
}

func TestSet_InverseRoundTrips(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('z'))
	s.AddEpsilon()

	inv := s.Inverse()
	assert.False(t, inv.Epsilon())

	roundTrip := inv.Inverse()
	assert.True(t, roundTrip.Equal(s))
}

func TestSet_UnionWithSelfIsIdentity(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('z'))

	union := s.Copy()
	union.AddSet(s)
	assert.True(t, union.Equal(s))
}

func TestSet_DifferenceWithSelfIsEmpty(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('z'))
	s.AddEpsilon()

	diff := s.Copy()
	diff.RemoveSet(s)
	assert.True(t, diff.Empty())
}

func TestSet_IncludesSet(t *testing.T) {
	big := NewSet(CodePointDomain)
	big.AddRange(CPID('a'), CPID('z'))

	small := NewSet(CodePointDomain)
	small.AddRange(CPID('m'), CPID('p'))

	assert.True(t, big.IncludesSet(small))
	assert.False(t, small.IncludesSet(big))
}

func TestSet_EachYieldsAscendingWithoutEpsilon(t *testing.T) {
	s := NewSet(CodePointDomain)
	s.AddRange(CPID('a'), CPID('c'))
	s.AddEpsilon()

	var got []ID
	s.Each(func(id ID) { got = append(got, id) })

	assert.Equal(t, []ID{CPID('a'), CPID('b'), CPID('c')}, got)
}
