package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"
)

// Entry is one finished extraction stored in the lyricsbook.
type Entry struct {
	ID        int64
	Track     string
	Language  string
	Lyrics    string
	WordCount int
	Counter   int
	CreatedAt time.Time
}

type LyricsbookType struct {
	entries []Entry
	mu      sync.RWMutex
}

var Lyricsbook = &LyricsbookType{}

const createLyricsbookTable = `CREATE TABLE IF NOT EXISTS lyricsbook (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	track TEXT NOT NULL,
	language TEXT,
	lyrics TEXT NOT NULL,
	word_count INTEGER DEFAULT 0,
	counter INTEGER DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

func (l *LyricsbookType) init() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := Database.ExecContext(ctx, createLyricsbookTable); err != nil {
		return fmt.Errorf("failed to create lyricsbook table: %w", err)
	}

	rows, err := Database.QueryContext(ctx, "SELECT id, track, language, lyrics, word_count, counter, created_at FROM lyricsbook")
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var language sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Track, &language, &entry.Lyrics, &entry.WordCount, &entry.Counter, &entry.CreatedAt); err != nil {
			log.Printf("error scanning row: %v", err)
			continue
		}
		entry.Language = language.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error during rows iteration: %w", err)
	}

	l.entries = entries
	return nil
}

// Save inserts a finished extraction and adds it to the in-memory copy.
func (l *LyricsbookType) Save(ctx context.Context, entry Entry) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	query := `INSERT INTO lyricsbook (track, language, lyrics, word_count) VALUES (?, ?, ?, ?)`
	result, err := Database.ExecContext(ctx, query, entry.Track, entry.Language, entry.Lyrics, entry.WordCount)
	if err != nil {
		return 0, fmt.Errorf("failed to save lyrics: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = time.Now()
	l.entries = append(l.entries, entry)
	return id, nil
}

// FindByTrack returns the most recent entry for a track.
func (l *LyricsbookType) FindByTrack(track string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Track == track {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// IncrementPlayCounter bumps the counter for an entry.
func (l *LyricsbookType) IncrementPlayCounter(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `UPDATE lyricsbook SET counter = counter + 1 WHERE id = ?`
	result, err := Database.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment play counter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no entry found with id: %d", id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Counter++
			break
		}
	}
	return nil
}
