// internal/storage/store_test.go
package storage

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGetReturnsDefaultOnMissingKey(t *testing.T) {
	store := NewStore(NewMemoryBackend(0), testLogger(), DefaultOptions())

	assert.Equal(t, []string{"fallback"}, Get(store, "missing", []string{"fallback"}))
	assert.Equal(t, 42, Get(store, "missing", 42))
}

func TestGetReturnsDefaultOnCorruptValue(t *testing.T) {
	backend := NewMemoryBackend(0)
	store := NewStore(backend, testLogger(), DefaultOptions())

	require.NoError(t, backend.Save("bad", []byte("{not json")))
	assert.Equal(t, []int{7}, Get(store, "bad", []int{7}))
}

func TestSetGetRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend(0), testLogger(), DefaultOptions())

	type entry struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	in := []entry{{Name: "a", Price: 1.5}, {Name: "b", Price: 2}}

	require.True(t, store.Set("entries", in))
	assert.Equal(t, in, Get(store, "entries", []entry{}))
}

func TestSetRefreshesMirrorKey(t *testing.T) {
	backend := NewMemoryBackend(0)
	store := NewStore(backend, testLogger(), DefaultOptions())

	require.True(t, store.Set(KeyNFTs, []string{"nft-1"}))

	data, ok, err := backend.Load(KeyNFTsMirror)
	require.NoError(t, err)
	require.True(t, ok)

	var mirrored []string
	require.NoError(t, json.Unmarshal(data, &mirrored))
	assert.Equal(t, []string{"nft-1"}, mirrored)
}

func TestSubscribe(t *testing.T) {
	store := NewStore(NewMemoryBackend(0), testLogger(), DefaultOptions())

	var seen []string
	unsubscribe := store.Subscribe(func(key string) { seen = append(seen, key) })

	store.Set("a", 1)
	store.Set("b", 2)
	assert.Equal(t, []string{"a", "b"}, seen)

	unsubscribe()
	store.Set("c", 3)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestKeysByPrefix(t *testing.T) {
	store := NewStore(NewMemoryBackend(0), testLogger(), DefaultOptions())

	store.Set(OwnedNFTsKey("0xAA"), []string{})
	store.Set(OwnedNFTsKey("0xBB"), []string{})
	store.Set(HiddenNFTsKey("0xAA"), []string{})

	keys := store.Keys(PrefixOwnedNFTs)
	assert.Equal(t, []string{OwnedNFTsKey("0xaa"), OwnedNFTsKey("0xbb")}, keys)
}

type stampedEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Padding   string    `json:"padding"`
}

func TestQuotaCleanupAndRetry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	backend := NewMemoryBackend(4096)
	store := NewStore(backend, testLogger(), Options{
		Retention: time.Hour,
		ListCaps:  map[string]int{KeyOfferActions: 100},
		Clock:     func() time.Time { return now },
	})

	// Fill the action log with entries old enough to be pruned.
	padding := make([]byte, 100)
	for i := range padding {
		padding[i] = 'x'
	}
	var stale []stampedEntry
	for i := 0; i < 20; i++ {
		stale = append(stale, stampedEntry{
			ID:        i,
			Timestamp: now.Add(-2 * time.Hour),
			Padding:   string(padding),
		})
	}
	require.True(t, store.Set(KeyOfferActions, stale))

	// The next write exceeds the budget; the cleanup pass must free the
	// stale log entries so the retry lands.
	big := make([]byte, 1400)
	for i := range big {
		big[i] = 'y'
	}
	require.True(t, store.Set("payload", string(big)))

	assert.Empty(t, Get(store, KeyOfferActions, []stampedEntry{}))
	assert.Equal(t, string(big), Get(store, "payload", ""))
}

func TestQuotaExhaustedAfterCleanupFails(t *testing.T) {
	backend := NewMemoryBackend(64)
	store := NewStore(backend, testLogger(), DefaultOptions())

	big := make([]byte, 512)
	for i := range big {
		big[i] = 'z'
	}
	assert.False(t, store.Set("payload", string(big)))

	// failed writes leave no partial state behind
	_, ok, err := backend.Load("payload")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListCapTruncatesNewestKept(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	backend := NewMemoryBackend(2048)
	store := NewStore(backend, testLogger(), Options{
		Retention: 24 * time.Hour,
		ListCaps:  map[string]int{KeyOfferActions: 5},
		Clock:     func() time.Time { return now },
	})

	var entries []stampedEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, stampedEntry{ID: i, Timestamp: now})
	}
	require.True(t, store.Set(KeyOfferActions, entries))

	// trip the quota so the cleanup pass runs
	big := make([]byte, 1500)
	for i := range big {
		big[i] = 'y'
	}
	require.True(t, store.Set("payload", string(big)))

	kept := Get(store, KeyOfferActions, []stampedEntry{})
	require.Len(t, kept, 5)
	assert.Equal(t, 7, kept[0].ID)
	assert.Equal(t, 11, kept[4].ID)
}
