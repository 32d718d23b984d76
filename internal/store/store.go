package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"
)

// Bucket names
var (
	bucketListings = []byte("listings")
	bucketDetails  = []byte("details")
	bucketMeta     = []byte("meta")
)

var allBuckets = [][]byte{bucketListings, bucketDetails}

// schemaVersion changes whenever the JSON shape of cached values does.
// A database written under another version is emptied on open.
const schemaVersion = "1"

var keySchema = []byte("schema")

// ListingStore implements domain.Store using BoltDB.
type ListingStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewListingStore opens the cache database for the given API base URL.
// An empty baseCacheDir gives a memory-only store.
func NewListingStore(baseCacheDir, apiURL string) (*ListingStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &ListingStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if apiURL != "" {
		dir = filepath.Join(baseCacheDir, hashAPIURL(apiURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	if err := db.Update(migrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare cache: %w", err)
	}

	return &ListingStore{db: db, cache: make(map[string][]byte)}, nil
}

// migrate creates the buckets and drops cached values written under
// another schema version
func migrate(tx *bolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists(bucketMeta)
	if err != nil {
		return err
	}
	if string(meta.Get(keySchema)) != schemaVersion {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil && err != bolterrors.ErrBucketNotFound {
				return err
			}
		}
	}
	for _, bucket := range allBuckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return meta.Put(keySchema, []byte(schemaVersion))
}

func hashAPIURL(apiURL string) string {
	normalized := strings.TrimRight(strings.ToLower(apiURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ListingStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ListingStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ListingStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *ListingStore) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *ListingStore) clearBucket(bucket []byte) {
	s.mu.Lock()
	prefix := string(bucket) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Listings ===

func (s *ListingStore) GetResultSet(key string) (*domain.ResultSet, bool) {
	var rs domain.ResultSet
	if !s.get(bucketListings, key, &rs) {
		return nil, false
	}
	return &rs, true
}

func (s *ListingStore) SaveResultSet(key string, rs *domain.ResultSet) error {
	if rs == nil {
		return fmt.Errorf("nil result set for %s", key)
	}
	return s.set(bucketListings, key, rs)
}

// === Details ===

func (s *ListingStore) GetMovieDetails(id int) (*domain.MovieDetails, bool) {
	var d domain.MovieDetails
	if !s.get(bucketDetails, strconv.Itoa(id), &d) {
		return nil, false
	}
	return &d, true
}

func (s *ListingStore) SaveMovieDetails(details *domain.MovieDetails) error {
	if details == nil {
		return fmt.Errorf("nil movie details")
	}
	return s.set(bucketDetails, strconv.Itoa(details.ID), details)
}

// === Invalidation ===

// Invalidate drops one cached listing
func (s *ListingStore) Invalidate(key string) {
	s.delete(bucketListings, key)
}

// InvalidateDetails drops every cached details record
func (s *ListingStore) InvalidateDetails() {
	s.clearBucket(bucketDetails)
}

func (s *ListingStore) InvalidateAll() {
	for _, bucket := range allBuckets {
		s.clearBucket(bucket)
	}
}
