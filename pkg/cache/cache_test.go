package cache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-dominance-query/pkg/dom"
)

func result(name string) *dom.Result {
	return &dom.Result{
		FunctionName: name,
		DomTree:      map[string][]string{"entry": {"a", "b"}},
		PostDomTree:  map[string][]string{"exit": {"a", "b", "entry"}},
	}
}

func TestResultCache_Basic(t *testing.T) {
	c := New(Options{MaxSize: 3})

	c.Set("a", result("fa"))
	c.Set("b", result("fb"))
	c.Set("c", result("fc"))

	assert.Equal(t, 3, c.Len())

	val, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "fa", val.FunctionName)

	val, found = c.Get("b")
	require.True(t, found)
	assert.Equal(t, "fb", val.FunctionName)
}

func TestResultCache_LRU_Eviction(t *testing.T) {
	c := New(Options{MaxSize: 3})

	c.Set("a", result("fa"))
	c.Set("b", result("fb"))
	c.Set("c", result("fc"))

	// Access 'a' to make it most recently used
	c.Get("a")

	// Add new item - should evict 'b' (least recently used)
	c.Set("d", result("fd"))

	assert.Equal(t, 3, c.Len())

	_, found := c.Get("b")
	assert.False(t, found, "b should have been evicted")

	_, found = c.Get("a")
	assert.True(t, found, "a should still be present")

	_, found = c.Get("d")
	assert.True(t, found, "d should be present")
}

func TestResultCache_Delete(t *testing.T) {
	c := New(Options{MaxSize: 10})

	c.Set("a", result("fa"))
	c.Set("b", result("fb"))

	c.Delete("a")

	assert.Equal(t, 1, c.Len())

	_, found := c.Get("a")
	assert.False(t, found)

	c.Delete("missing") // no-op
	assert.Equal(t, 1, c.Len())
}

func TestResultCache_Update(t *testing.T) {
	c := New(Options{MaxSize: 2})

	c.Set("a", result("old"))
	c.Set("a", result("new"))

	assert.Equal(t, 1, c.Len())
	val, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "new", val.FunctionName)
}

func TestResultCache_SaveLoad(t *testing.T) {
	c := New(Options{MaxSize: 10})
	c.Set("a", result("fa"))
	c.Set("b", result("fb"))

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	restored := New(Options{MaxSize: 10})
	require.NoError(t, restored.Load(&buf))

	assert.Equal(t, 2, restored.Len())

	val, found := restored.Get("a")
	require.True(t, found)
	assert.Equal(t, "fa", val.FunctionName)
	assert.Equal(t, []string{"a", "b"}, val.DomTree["entry"])
	assert.Equal(t, []string{"a", "b", "entry"}, val.PostDomTree["exit"])
}

func TestResultCache_LoadRespectsMaxSize(t *testing.T) {
	c := New(Options{MaxSize: 10})
	c.Set("a", result("fa"))
	c.Set("b", result("fb"))
	c.Set("c", result("fc"))

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	small := New(Options{MaxSize: 2})
	require.NoError(t, small.Load(&buf))

	assert.Equal(t, 2, small.Len())
	// Most recently used entries survive.
	_, found := small.Get("c")
	assert.True(t, found)
	_, found = small.Get("a")
	assert.False(t, found)
}

func TestResultCache_LoadFileMissing(t *testing.T) {
	c := New(Options{MaxSize: 10})
	assert.NoError(t, c.LoadFile(t.TempDir()+"/missing.msgpack"))
	assert.Equal(t, 0, c.Len())
}

func TestResultCache_SaveLoadFile(t *testing.T) {
	path := t.TempDir() + "/sub/results.msgpack"

	c := New(Options{MaxSize: 10})
	c.Set("a", result("fa"))
	require.NoError(t, c.SaveFile(path))

	restored := New(Options{MaxSize: 10})
	require.NoError(t, restored.LoadFile(path))
	assert.Equal(t, 1, restored.Len())
}

func TestKey(t *testing.T) {
	k1 := Key("file.go", []byte("content"), "f")
	k2 := Key("file.go", []byte("content"), "f")
	assert.Equal(t, k1, k2, "key must be deterministic")

	assert.NotEqual(t, k1, Key("file.go", []byte("changed"), "f"),
		"editing the source must change the key")
	assert.NotEqual(t, k1, Key("file.go", []byte("content"), "g"),
		"a different function must change the key")
}
