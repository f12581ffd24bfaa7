package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGenre(t *testing.T) {
	g, ok := ParseGenre("fiction")
	require.True(t, ok)
	require.Equal(t, GenreFiction, g)

	g, ok = ParseGenre("  non_fiction ")
	require.True(t, ok)
	require.Equal(t, GenreNonFiction, g)

	_, ok = ParseGenre("romance")
	require.False(t, ok)

	_, ok = ParseGenre("")
	require.False(t, ok)
}

func TestAvailabilityFor(t *testing.T) {
	require.False(t, AvailabilityFor(0))
	require.True(t, AvailabilityFor(1))
	require.True(t, AvailabilityFor(42))
}
