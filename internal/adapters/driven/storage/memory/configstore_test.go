package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("github.token", "ghp_abc"))
	require.NoError(t, store.Set("github.token", "ghp_def"))

	val, ok := store.Get("github.token")
	assert.True(t, ok)
	assert.Equal(t, "ghp_def", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a.int", int64(3)))
	require.NoError(t, store.Set("a.float", 1.5))
	require.NoError(t, store.Set("a.string", "x"))

	assert.Equal(t, 3, store.GetInt("a.int"))
	assert.Equal(t, 1, store.GetInt("a.float"))
	assert.Equal(t, 0, store.GetInt("a.string"))
	assert.InDelta(t, 1.5, store.GetFloat("a.float"), 0.0001)
	assert.InDelta(t, 3.0, store.GetFloat("a.int"), 0.0001)
	assert.Equal(t, 0.0, store.GetFloat("missing"))
	assert.Equal(t, "x", store.GetString("a.string"))
	assert.Equal(t, "", store.GetString("a.int"))
}

func TestConfigStore_KeysSorted(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("extract.max_emails", int64(2)))
	require.NoError(t, store.Set("cache.path", "/tmp"))

	assert.Equal(t, []string{"cache.path", "extract.max_emails"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("key", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("key")
		}()
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
