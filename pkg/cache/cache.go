// Package cache provides an LRU cache for analysis results with msgpack
// disk persistence.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/l3aro/go-dominance-query/pkg/dom"
)

// Entry is one cached analysis result with metadata.
type Entry struct {
	Key        string      `msgpack:"key"`
	Result     *dom.Result `msgpack:"result"`
	CreatedAt  time.Time   `msgpack:"created_at"`
	AccessedAt time.Time   `msgpack:"accessed_at"`
}

// Options configures a ResultCache.
type Options struct {
	// MaxSize bounds the number of entries; 0 means unbounded.
	MaxSize int
}

// ResultCache is an in-memory LRU cache of analysis results keyed by source
// identity. Safe for concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	items   map[string]*listItem
	lru     *list
	maxSize int
}

// listItem is an item in the doubly-linked list.
type listItem struct {
	Entry
	prev *listItem
	next *listItem
}

// list is a doubly-linked list with the most recently used item at the head.
type list struct {
	head *listItem
	tail *listItem
	len  int
}

func (l *list) moveToFront(item *listItem) {
	if item == l.head {
		return
	}
	l.remove(item)
	l.pushFront(item)
}

func (l *list) pushFront(item *listItem) {
	item.prev = nil
	item.next = l.head
	if l.head != nil {
		l.head.prev = item
	}
	l.head = item
	if l.tail == nil {
		l.tail = item
	}
	l.len++
}

func (l *list) remove(item *listItem) {
	if item.prev != nil {
		item.prev.next = item.next
	} else {
		l.head = item.next
	}
	if item.next != nil {
		item.next.prev = item.prev
	} else {
		l.tail = item.prev
	}
	item.prev = nil
	item.next = nil
	l.len--
}

// New creates a ResultCache.
func New(opts Options) *ResultCache {
	return &ResultCache{
		items:   make(map[string]*listItem),
		lru:     &list{},
		maxSize: opts.MaxSize,
	}
}

// Key derives a cache key from the source content and function name, so a
// stale result can never be served for edited source.
func Key(sourcePath string, content []byte, functionName string) string {
	h := sha256.New()
	h.Write(content)
	return fmt.Sprintf("%s:%s:%s", sourcePath, functionName, hex.EncodeToString(h.Sum(nil))[:16])
}

// Get retrieves a result by key. Returns (result, true) if found.
func (c *ResultCache) Get(key string) (*dom.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	item.AccessedAt = time.Now()
	c.lru.moveToFront(item)
	return item.Result, true
}

// Set stores a result, evicting the least recently used entry when full.
func (c *ResultCache) Set(key string, result *dom.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		item.Result = result
		item.AccessedAt = time.Now()
		c.lru.moveToFront(item)
		return
	}

	item := &listItem{Entry: Entry{
		Key:        key,
		Result:     result,
		CreatedAt:  time.Now(),
		AccessedAt: time.Now(),
	}}
	c.items[key] = item
	c.lru.pushFront(item)

	if c.maxSize > 0 && c.lru.len > c.maxSize {
		if victim := c.lru.tail; victim != nil {
			c.lru.remove(victim)
			delete(c.items, victim.Key)
		}
	}
}

// Delete removes a key from the cache.
func (c *ResultCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		c.lru.remove(item)
		delete(c.items, key)
	}
}

// Len returns the number of entries in the cache.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.len
}

// Save persists the cache to a writer using msgpack, most recently used
// first.
func (c *ResultCache) Save(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, c.lru.len)
	for item := c.lru.head; item != nil; item = item.next {
		entries = append(entries, item.Entry)
	}

	enc := msgpack.NewEncoder(w)
	return enc.Encode(struct {
		Entries []Entry `msgpack:"entries"`
	}{Entries: entries})
}

// Load restores the cache from a reader. Existing entries are kept; loaded
// entries beyond MaxSize are dropped from the least recently used end.
func (c *ResultCache) Load(r io.Reader) error {
	var payload struct {
		Entries []Entry `msgpack:"entries"`
	}
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decoding cache: %w", err)
	}

	// Insert oldest first so LRU order survives the round trip.
	for i := len(payload.Entries) - 1; i >= 0; i-- {
		c.Set(payload.Entries[i].Key, payload.Entries[i].Result)
	}
	return nil
}

// SaveFile persists the cache to a file, creating parent directories.
func (c *ResultCache) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()
	return c.Save(f)
}

// LoadFile restores the cache from a file. A missing file is not an error.
func (c *ResultCache) LoadFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}
