package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIndex() *LocalCityIndex {
	return NewLocalCityIndex(map[string]float64{
		"Hyderabad, India": 154.1,
		"Bangalore, India": 149.7,
		"Mumbai, India":    104.3,
	})
}

func TestLocalCityIndex_Lookup(t *testing.T) {
	index := newTestIndex()

	name, value, err := index.Lookup(context.Background(), "Hyderabad, India")
	require.NoError(t, err)
	require.Equal(t, "Hyderabad, India", name)
	require.Equal(t, 154.1, value)
}

func TestLocalCityIndex_LookupCaseInsensitive(t *testing.T) {
	index := newTestIndex()

	name, value, err := index.Lookup(context.Background(), "hyderabad, india")
	require.NoError(t, err)
	require.Equal(t, "Hyderabad, India", name)
	require.Equal(t, 154.1, value)
}

func TestLocalCityIndex_LookupSubstring(t *testing.T) {
	index := newTestIndex()

	name, value, err := index.Lookup(context.Background(), "bangalore")
	require.NoError(t, err)
	require.Equal(t, "Bangalore, India", name)
	require.Equal(t, 149.7, value)
}

func TestLocalCityIndex_LookupNotFound(t *testing.T) {
	index := newTestIndex()

	_, _, err := index.Lookup(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrCityNotFound)

	_, _, err = index.Lookup(context.Background(), "  ")
	require.ErrorIs(t, err, ErrCityNotFound)
}
