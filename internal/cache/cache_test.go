package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k1 := Key([]byte("<xbrli:xbrl/>"))
	k2 := Key([]byte("<xbrli:xbrl/>"))
	k3 := Key([]byte("<xbrli:xbrl></xbrli:xbrl>"))

	assert.Equal(t, k1, k2, "identical content shares a key")
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "xbrlgen:v1:"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k", []byte("report"), 0))
	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("report"), val)

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)

	require.NoError(t, c.Set("k2", []byte("x"), 0))
	require.NoError(t, c.Clear())
	_, found = c.Get("k2")
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set("short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set(Key([]byte("instance")), []byte("report"), 0))
	val, found := c.Get(Key([]byte("instance")))
	require.True(t, found)
	assert.Equal(t, []byte("report"), val)

	// A second cache over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Minute)
	val, found = c2.Get(Key([]byte("instance")))
	require.True(t, found)
	assert.Equal(t, []byte("report"), val)
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	require.NoError(t, c.Set("short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}

func TestLayeredCache(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	require.NoError(t, c.Set("k", []byte("report"), 0))

	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("report"), val)

	// A fresh layered cache over the same disk directory serves the value
	// from disk and promotes it into memory.
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found = c2.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("report"), val)

	val, found = c2.memory.Get("k")
	require.True(t, found, "disk hit promoted to memory")
	assert.Equal(t, []byte("report"), val)

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)
}
