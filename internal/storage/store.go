// internal/storage/store.go
package storage

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Options tune the cleanup pass that runs when a write hits the quota.
type Options struct {
	// Retention is the age past which prunable list entries are dropped.
	Retention time.Duration
	// ListCaps maps a key or key prefix to the maximum number of entries
	// kept in the JSON array stored under matching keys.
	ListCaps map[string]int
	// Mirrors maps a canonical key to a legacy compatibility key that is
	// refreshed on every successful write of the canonical one.
	Mirrors map[string]string
	// Clock overrides time.Now, used by tests.
	Clock func() time.Time
}

// DefaultOptions caps the append-only logs and histories and mirrors the
// canonical NFT list to its legacy key.
func DefaultOptions() Options {
	return Options{
		Retention: 90 * 24 * time.Hour,
		ListCaps: map[string]int{
			KeyOfferActions:       500,
			PrefixTransferHistory: 200,
		},
		Mirrors: map[string]string{
			KeyNFTs: KeyNFTsMirror,
		},
	}
}

// Store wraps a Backend with JSON encoding, quota recovery, mirror-key
// refresh, and change notification. Reads never fail: missing or corrupt
// data yields the caller's default. Writes report success as a boolean and
// never panic.
type Store struct {
	backend Backend
	log     *logrus.Entry
	opts    Options
	now     func() time.Time

	subMtx sync.Mutex
	subs   map[int]func(key string)
	nextID int
}

func NewStore(backend Backend, log *logrus.Logger, opts Options) *Store {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Store{
		backend: backend,
		log:     log.WithField("component", "storage"),
		opts:    opts,
		now:     now,
		subs:    make(map[int]func(key string)),
	}
}

// Get returns the value stored under key, or defaultValue when the key is
// missing, unreadable, or holds data that does not decode into T.
func Get[T any](s *Store, key string, defaultValue T) T {
	data, ok, err := s.backend.Load(key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to read storage key")
		return defaultValue
	}
	if !ok {
		return defaultValue
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Discarding corrupt storage value")
		return defaultValue
	}
	return value
}

// Set serializes value under key. On a quota-exceeded write it runs one
// cleanup pass and retries exactly once. Subscribers are notified after a
// successful write; mirror keys are refreshed best-effort.
func (s *Store) Set(key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to serialize storage value")
		return false
	}

	if err := s.backend.Save(key, data); err != nil {
		if !errors.Is(err, ErrQuotaExceeded) {
			s.log.WithError(err).WithField("key", key).Error("Failed to write storage key")
			return false
		}
		s.log.WithField("key", key).Warn("Storage quota exceeded, running cleanup")
		s.cleanup()
		if err := s.backend.Save(key, data); err != nil {
			s.log.WithError(err).WithField("key", key).Error("Storage write failed after cleanup")
			return false
		}
	}

	if mirror, ok := s.opts.Mirrors[key]; ok {
		if err := s.backend.Save(mirror, data); err != nil {
			s.log.WithError(err).WithField("key", mirror).Warn("Failed to refresh mirror key")
		}
	}

	s.notify(key)
	return true
}

// Delete removes key. Missing keys delete successfully.
func (s *Store) Delete(key string) bool {
	if err := s.backend.Delete(key); err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to delete storage key")
		return false
	}
	s.notify(key)
	return true
}

// Keys lists stored keys with the given prefix.
func (s *Store) Keys(prefix string) []string {
	keys, err := s.backend.Keys(prefix)
	if err != nil {
		s.log.WithError(err).WithField("prefix", prefix).Warn("Failed to list storage keys")
		return nil
	}
	return keys
}

// Subscribe registers a callback invoked with the key of every successful
// mutation, the analog of a same-origin storage event. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(key string)) func() {
	s.subMtx.Lock()
	defer s.subMtx.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMtx.Lock()
		defer s.subMtx.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(key string) {
	s.subMtx.Lock()
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMtx.Unlock()

	for _, fn := range subs {
		fn(key)
	}
}

// prunableEntry probes list elements for the timestamp fields carried by the
// audit log and history records. Entries without any timestamp are kept.
type prunableEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	TransferredAt time.Time `json:"transferred_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e prunableEntry) age(now time.Time) time.Duration {
	stamp := e.Timestamp
	if stamp.IsZero() {
		stamp = e.TransferredAt
	}
	if stamp.IsZero() {
		stamp = e.CreatedAt
	}
	if stamp.IsZero() {
		return 0
	}
	return now.Sub(stamp)
}

// cleanup prunes capped lists: entries older than the retention window are
// dropped and each list is truncated to its cap, newest entries kept.
func (s *Store) cleanup() {
	now := s.now()
	for keyOrPrefix, limit := range s.opts.ListCaps {
		keys, err := s.backend.Keys(keyOrPrefix)
		if err != nil {
			continue
		}
		for _, key := range keys {
			s.pruneList(key, limit, now)
		}
	}
}

func (s *Store) pruneList(key string, limit int, now time.Time) {
	data, ok, err := s.backend.Load(key)
	if err != nil || !ok {
		return
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}

	kept := raw[:0]
	for _, item := range raw {
		var probe prunableEntry
		if err := json.Unmarshal(item, &probe); err == nil &&
			s.opts.Retention > 0 && probe.age(now) > s.opts.Retention {
			continue
		}
		kept = append(kept, item)
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	if len(kept) == len(raw) {
		return
	}

	pruned, err := json.Marshal(kept)
	if err != nil {
		return
	}
	if err := s.backend.Save(key, pruned); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to persist pruned list")
		return
	}
	s.log.WithFields(logrus.Fields{
		"key":     key,
		"dropped": len(raw) - len(kept),
	}).Info("Pruned storage list during cleanup")
}
