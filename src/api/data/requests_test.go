package data

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/greenlink-tr/greenlink/src/api/types"
	"github.com/stretchr/testify/require"
)

func TestRequestStoreSubmit(t *testing.T) {
	s := NewRequestStore(filepath.Join(t.TempDir(), "event-requests.json"))

	rec, err := s.Submit(types.EventRequest{City: "izmir", Type: "sahil-temizligi"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rec.ID, "req-"))
	require.False(t, rec.CreatedAt.IsZero())
	require.NotNil(t, rec.Motivation, "motivation defaults to an empty set")
	require.Empty(t, rec.Motivation)
}

func TestRequestStoreAppendPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event-requests.json")
	s := NewRequestStore(path)

	first, err := s.Submit(types.EventRequest{City: "ankara"})
	require.NoError(t, err)
	second, err := s.Submit(types.EventRequest{City: "izmir"})
	require.NoError(t, err)

	// Reload from disk through a fresh store.
	all := NewRequestStore(path).All()
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
	require.Equal(t, second.ID, all[1].ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestRequestStoreAllMissingFile(t *testing.T) {
	s := NewRequestStore(filepath.Join(t.TempDir(), "event-requests.json"))
	require.Empty(t, s.All())
}
