// File: internal/services/conversation/store_test.go
package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_UnknownSessionIsEmpty(t *testing.T) {
	store := NewStore()

	entries := store.Get("fresh")
	assert.Empty(t, entries)
	assert.Equal(t, 1, store.Sessions())
}

func TestAppend_PreservesOrder(t *testing.T) {
	store := NewStore()

	store.Append("s1", "user", "hello")
	store.Append("s1", "assistant", "hi there")

	entries := store.Get("s1")
	require.Len(t, entries, 2)
	assert.Equal(t, "user", entries[0].Role)
	assert.Equal(t, "hello", entries[0].Content)
	assert.Equal(t, "assistant", entries[1].Role)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAppend_EvictsOldestBeyondCap(t *testing.T) {
	store := NewStore()

	for i := 0; i < MaxEntries+5; i++ {
		store.Append("s1", "user", fmt.Sprintf("message %d", i))
	}

	entries := store.Get("s1")
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "message 5", entries[0].Content)
	assert.Equal(t, fmt.Sprintf("message %d", MaxEntries+4), entries[len(entries)-1].Content)
}

func TestGet_ReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append("s1", "user", "original")

	entries := store.Get("s1")
	entries[0].Content = "mutated"

	assert.Equal(t, "original", store.Get("s1")[0].Content)
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Append("s1", "user", "hello")
	store.Append("s2", "user", "other session")

	store.Clear("s1")

	assert.Empty(t, store.Get("s1"))
	assert.Len(t, store.Get("s2"), 1)
	// Clearing keeps the session known.
	assert.Equal(t, 2, store.Sessions())
}

func TestClear_UnknownSessionIsNoop(t *testing.T) {
	store := NewStore()
	store.Clear("ghost")
	assert.Equal(t, 0, store.Sessions())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("session-%d", n%3)
			for j := 0; j < 50; j++ {
				store.Append(sessionID, "user", "msg")
				store.Get(sessionID)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, store.Sessions())
	for i := 0; i < 3; i++ {
		assert.Len(t, store.Get(fmt.Sprintf("session-%d", i)), MaxEntries)
	}
}
