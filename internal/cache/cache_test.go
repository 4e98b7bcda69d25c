package cache

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad(t *testing.T) {
	c, err := New("test", Config{MaxSizeBytes: 1024 * 1024})
	require.NoError(t, err)

	loads := 0
	load := func() ([]byte, error) {
		loads++
		return []byte("catalog text"), nil
	}

	v, err := c.GetOrLoad(t.Context(), "id", load)
	require.NoError(t, err)
	assert.Equal(t, "catalog text", string(v))

	// Served from the cache the second time
	v, err = c.GetOrLoad(t.Context(), "id", load)
	require.NoError(t, err)
	assert.Equal(t, "catalog text", string(v))
	assert.Equal(t, 1, loads)
	assert.Equal(t, len("catalog text"), c.Size())
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c, err := New("test", Config{MaxSizeBytes: 1024})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.GetOrLoad(t.Context(), "id", func() ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	_, ok := c.Get("id")
	assert.False(t, ok)
}

func TestSizeBasedEviction(t *testing.T) {
	// Create a small cache
	c, err := New("test", Config{MaxSizeBytes: 100})
	require.NoError(t, err)

	// Total of these three would exceed our 100 byte limit
	obj1 := bytes.Repeat([]byte{1}, 40)
	obj2 := bytes.Repeat([]byte{2}, 40)
	obj3 := bytes.Repeat([]byte{3}, 40)

	require.True(t, c.Add("1", obj1))
	require.True(t, c.Add("2", obj2))

	// After adding obj3, obj1 should be evicted since it's the oldest
	require.True(t, c.Add("3", obj3))

	_, ok := c.Get("1")
	assert.False(t, ok)

	data2, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, obj2, data2)

	data3, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, obj3, data3)
	assert.Equal(t, 80, c.Size())
}

func TestOversizedValueRejected(t *testing.T) {
	c, err := New("test", Config{MaxSizeBytes: 10})
	require.NoError(t, err)

	assert.False(t, c.Add("big", make([]byte, 11)))
	assert.Equal(t, 0, c.Size())
}

func TestReplaceKeepsSizeAccurate(t *testing.T) {
	c, err := New("test", Config{MaxSizeBytes: 100})
	require.NoError(t, err)

	require.True(t, c.Add("k", make([]byte, 60)))
	require.True(t, c.Add("k", make([]byte, 30)))
	assert.Equal(t, 30, c.Size())
}
