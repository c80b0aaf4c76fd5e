package main

import (
	"context"
	"errors"
	"testing"

	"github.com/minhle/karascribe/internal/db"
)

type fakeCache struct {
	lyrics map[string]string
	err    error
}

func (f *fakeCache) GetCachedLyrics(_ context.Context, track string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	l, ok := f.lyrics[track]
	return l, ok, nil
}

type fakeBook struct {
	entries map[string]db.Entry
	bumped  []int64
}

func (f *fakeBook) FindByTrack(track string) (db.Entry, bool) {
	entry, ok := f.entries[track]
	return entry, ok
}

func (f *fakeBook) IncrementPlayCounter(id int64) error {
	f.bumped = append(f.bumped, id)
	return nil
}

func TestCachedResultMiss(t *testing.T) {
	cache := &fakeCache{lyrics: map[string]string{}}
	book := &fakeBook{entries: map[string]db.Entry{}}

	if _, ok := cachedResult(context.Background(), cache, book, "track-1"); ok {
		t.Error("cache miss reported as hit")
	}
	if len(book.bumped) != 0 {
		t.Errorf("play counter bumped on a miss: %v", book.bumped)
	}
}

func TestCachedResultHit(t *testing.T) {
	cache := &fakeCache{lyrics: map[string]string{"track-1": "la la\nla la"}}
	book := &fakeBook{entries: map[string]db.Entry{
		"track-1": {ID: 7, Track: "track-1", Language: "vi", Lyrics: "la la\nla la"},
	}}

	result, ok := cachedResult(context.Background(), cache, book, "track-1")
	if !ok {
		t.Fatal("cache hit reported as miss")
	}
	if result.Lyrics != "la la\nla la" {
		t.Errorf("lyrics = %q; want cached text", result.Lyrics)
	}
	if result.LanguageDetected != "vi" {
		t.Errorf("language = %q; want vi from the lyricsbook", result.LanguageDetected)
	}
	if len(book.bumped) != 1 || book.bumped[0] != 7 {
		t.Errorf("play counter bumps = %v; want [7]", book.bumped)
	}
}

func TestCachedResultHitWithoutBookEntry(t *testing.T) {
	cache := &fakeCache{lyrics: map[string]string{"track-1": "la la"}}
	book := &fakeBook{entries: map[string]db.Entry{}}

	result, ok := cachedResult(context.Background(), cache, book, "track-1")
	if !ok {
		t.Fatal("cache hit reported as miss")
	}
	if result.LanguageDetected != "unknown" {
		t.Errorf("language = %q; want unknown without a lyricsbook entry", result.LanguageDetected)
	}
	if len(book.bumped) != 0 {
		t.Errorf("play counter bumped without an entry: %v", book.bumped)
	}
}

func TestCachedResultErrorFallsThrough(t *testing.T) {
	cache := &fakeCache{err: errors.New("redis down")}
	book := &fakeBook{entries: map[string]db.Entry{}}

	if _, ok := cachedResult(context.Background(), cache, book, "track-1"); ok {
		t.Error("cache error must count as a miss so the job still gets formatted")
	}
}

func TestResubmittedTrackTakesCachePath(t *testing.T) {
	cache := &fakeCache{lyrics: map[string]string{}}
	book := &fakeBook{entries: map[string]db.Entry{}}

	// first job for the track: nothing cached yet, worker formats
	if _, ok := cachedResult(context.Background(), cache, book, "track-9"); ok {
		t.Fatal("first submission must not hit the cache")
	}

	// worker caches the formatted lyrics and saves the entry
	cache.lyrics["track-9"] = "verse one\nverse two"
	book.entries["track-9"] = db.Entry{ID: 3, Track: "track-9", Language: "en"}

	// second job for the same track skips formatting
	result, ok := cachedResult(context.Background(), cache, book, "track-9")
	if !ok {
		t.Fatal("re-submitted track must hit the cache")
	}
	if result.Lyrics != "verse one\nverse two" {
		t.Errorf("lyrics = %q; want the cached text", result.Lyrics)
	}
	if len(book.bumped) != 1 || book.bumped[0] != 3 {
		t.Errorf("play counter bumps = %v; want [3]", book.bumped)
	}
}
