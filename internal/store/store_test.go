package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

func sampleSet() *domain.ResultSet {
	return &domain.ResultSet{
		Category: domain.CategoryNowPlaying,
		Movies: []domain.Movie{
			{ID: 1, Title: "Banner", BackdropPath: "/b.jpg"},
			{ID: 2, Title: "Second"},
		},
		Page:      1,
		FetchedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestListingStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	key := domain.CategoryNowPlaying.CacheKey()

	s, err := NewListingStore(dir, "https://api.example.test/3")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveResultSet(key, sampleSet()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = NewListingStore(dir, "https://api.example.test/3/")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok := s.GetResultSet(key)
	if !ok {
		t.Fatalf("expected cached result set after reopen")
	}
	if got.Len() != 2 || got.Movies[0].Title != "Banner" {
		t.Errorf("unexpected movies: %+v", got.Movies)
	}
	if !got.FetchedAt.Equal(sampleSet().FetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", got.FetchedAt, sampleSet().FetchedAt)
	}
}

func TestListingStore_MemoryOnly(t *testing.T) {
	s, err := NewListingStore("", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, ok := s.GetResultSet("movies:popular"); ok {
		t.Fatalf("expected miss on empty store")
	}
	if err := s.SaveResultSet("movies:popular", sampleSet()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := s.GetResultSet("movies:popular"); !ok {
		t.Fatalf("expected hit after save")
	}

	s.Invalidate("movies:popular")
	if _, ok := s.GetResultSet("movies:popular"); ok {
		t.Errorf("expected miss after invalidate")
	}
}

func TestListingStore_Details(t *testing.T) {
	s, err := NewListingStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	d := &domain.MovieDetails{
		Movie:   domain.Movie{ID: 42, Title: "Answer"},
		Runtime: 134,
		Genres:  []string{"Drama"},
	}
	if err := s.SaveMovieDetails(d); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.GetMovieDetails(42)
	if !ok {
		t.Fatalf("expected details hit")
	}
	if got.Title != "Answer" || got.Runtime != 134 {
		t.Errorf("unexpected details: %+v", got)
	}

	s.InvalidateAll()
	if _, ok := s.GetMovieDetails(42); ok {
		t.Errorf("expected details to be gone after InvalidateAll")
	}
	if err := s.SaveMovieDetails(nil); err == nil {
		t.Errorf("expected error saving nil details")
	}
}

func TestListingStore_DropsOtherSchema(t *testing.T) {
	dir := t.TempDir()
	key := domain.CategoryNowPlaying.CacheKey()

	s, err := NewListingStore(dir, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveResultSet(key, sampleSet()); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	// Pretend an older release wrote the file
	db, err := bolt.Open(filepath.Join(dir, "marquee.db"), 0600, nil)
	if err != nil {
		t.Fatalf("bolt open: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keySchema, []byte("0"))
	})
	db.Close()
	if err != nil {
		t.Fatalf("bolt update: %v", err)
	}

	s, err = NewListingStore(dir, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, ok := s.GetResultSet(key); ok {
		t.Error("values from another schema version should be dropped")
	}
	if err := s.SaveResultSet(key, sampleSet()); err != nil {
		t.Errorf("save after migration: %v", err)
	}
}
