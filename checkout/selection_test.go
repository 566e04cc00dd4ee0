package checkout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	require.True(t, s.Toggle("gid://shopify/ProductVariant/1"))
	require.True(t, s.Contains("gid://shopify/ProductVariant/1"))
	require.Equal(t, 1, s.Size())

	require.False(t, s.Toggle("gid://shopify/ProductVariant/1"))
	require.False(t, s.Contains("gid://shopify/ProductVariant/1"))
	require.Equal(t, 0, s.Size())
}

func TestSelection_ToggleTwiceRestoresState(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	before := s.Snapshot()

	s.Toggle("c")
	s.Toggle("c")
	require.Equal(t, before, s.Snapshot())

	s.Toggle("a")
	s.Toggle("a")
	require.ElementsMatch(t, before, s.Snapshot())
}

func TestSelection_SnapshotIsCopy(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")

	snap := s.Snapshot()
	require.Equal(t, []string{"a", "b"}, snap)

	snap[0] = "z"
	require.True(t, s.Contains("a"))
	require.Equal(t, []string{"a", "b"}, s.Snapshot())
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	s.Clear()

	require.Equal(t, 0, s.Size())
	require.Empty(t, s.Snapshot())
	require.True(t, s.Toggle("a"))
}

func TestSelection_Prune(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("gone")
	s.Toggle("b")

	s.Prune([]CartLine{{MerchandiseID: "b", Quantity: 1}, {MerchandiseID: "a", Quantity: 3}})

	require.Equal(t, []string{"a", "b"}, s.Snapshot())
	require.False(t, s.Contains("gone"))
}

func TestSelection_Concurrent(t *testing.T) {
	s := NewSelection()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("x")
			s.Toggle("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Size())
}
