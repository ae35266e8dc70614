// internal/storage/backend.go
package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrQuotaExceeded is returned by a Backend when a write would push total
// stored bytes past the configured budget.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Backend is the raw byte-level key-value store underneath a Store. Both
// implementations keep whole values per key; there is no partial update.
type Backend interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

// MemoryBackend is an in-process Backend used by tests and as the default
// when no storage path is configured. A maxBytes of zero means unlimited.
type MemoryBackend struct {
	mtx      sync.RWMutex
	data     map[string][]byte
	maxBytes int64
}

func NewMemoryBackend(maxBytes int64) *MemoryBackend {
	return &MemoryBackend{
		data:     make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

func (b *MemoryBackend) Load(key string) ([]byte, bool, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (b *MemoryBackend) Save(key string, value []byte) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.maxBytes > 0 {
		total := int64(len(value))
		for k, v := range b.data {
			if k == key {
				continue
			}
			total += int64(len(v))
		}
		if total > b.maxBytes {
			return ErrQuotaExceeded
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	b.data[key] = stored
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	delete(b.data, key)
	return nil
}

func (b *MemoryBackend) Keys(prefix string) ([]string, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	var keys []string
	for k := range b.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
