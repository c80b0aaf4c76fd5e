package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/minhle/karascribe/internal/db"
	"github.com/minhle/karascribe/internal/jobs"
	"github.com/minhle/karascribe/internal/logger"
	"github.com/minhle/karascribe/internal/lyrics"
	"github.com/minhle/karascribe/internal/lyrics/langdetect"
	"github.com/minhle/karascribe/internal/notify"
	"github.com/minhle/karascribe/internal/queue"
	"github.com/minhle/karascribe/internal/redis"
	"github.com/minhle/karascribe/internal/transcription"
	"github.com/minhle/karascribe/internal/utils"
)

const pollInterval = 3 * time.Second

func main() {
	db.MustInit()
	defer db.Close()

	rdb, err := redis.NewManager()
	if err != nil {
		logger.Error(fmt.Sprintf("failed to connect to redis: %v", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q := queue.NewManager(rdb)
	if err := q.Init(ctx); err != nil {
		logger.Error(fmt.Sprintf("failed to load job queue: %v", err))
		os.Exit(1)
	}

	notifier := setupNotifier()
	service := lyrics.NewService(lyrics.DefaultConfig(), nil)

	logger.Info("karascribe worker started")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logStats(q, rdb)
			logger.Info("karascribe worker shutting down")
			return
		case <-ticker.C:
			processNext(ctx, q, rdb, service, notifier)
		}
	}
}

// setupNotifier wires the telegram channel when BOT_TOKEN and
// LOG_CHANNEL_ID are configured; the worker runs fine without it.
func setupNotifier() *notify.Notifier {
	env, err := utils.LoadEnv([]string{"BOT_TOKEN", "LOG_CHANNEL_ID"})
	if err != nil {
		logger.Info("notifier disabled: BOT_TOKEN / LOG_CHANNEL_ID not set")
		return nil
	}
	channelID, err := strconv.ParseInt(env["LOG_CHANNEL_ID"], 10, 64)
	if err != nil {
		logger.Error(fmt.Sprintf("invalid LOG_CHANNEL_ID: %v", err))
		return nil
	}
	notifier, err := notify.New(env["BOT_TOKEN"], channelID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to set up notifier: %v", err))
		return nil
	}
	logger.Init(notifier, channelID)
	return notifier
}

// logStats reports the queue breakdown and how many distinct tracks
// have been extracted, on the way out. The parent context is already
// canceled by the time this runs, so the redis read gets its own.
func logStats(q *queue.Manager, rdb *redis.Manager) {
	byStatus := jobs.CountByStatus(q.GetAll())
	logger.Info(fmt.Sprintf("queue at shutdown: %d queued, %d processing, %d done, %d failed",
		byStatus[jobs.StatusQueued], byStatus[jobs.StatusProcessing],
		byStatus[jobs.StatusDone], byStatus[jobs.StatusFailed]))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	counts, err := rdb.GetTrackCounts(ctx)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to read track counts: %v", err))
		return
	}
	logger.Info(fmt.Sprintf("%d distinct tracks extracted so far", len(counts)))
}

// lyricsCache and lyricsBook are the lookup halves of redis.Manager
// and db.Lyricsbook, split out so the cache path is testable without a
// live redis or libsql connection.
type lyricsCache interface {
	GetCachedLyrics(ctx context.Context, track string) (string, bool, error)
}

type lyricsBook interface {
	FindByTrack(track string) (db.Entry, bool)
	IncrementPlayCounter(id int64) error
}

// cachedResult returns the previously formatted lyrics for a track, if
// the cache holds them. A hit pulls the language from the lyricsbook
// and bumps the entry's play counter; a cache error counts as a miss so
// the job falls through to formatting.
func cachedResult(ctx context.Context, cache lyricsCache, book lyricsBook, track string) (*transcription.Result, bool) {
	lyricsText, hit, err := cache.GetCachedLyrics(ctx, track)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to read lyrics cache for %s: %v", track, err))
		return nil, false
	}
	if !hit {
		return nil, false
	}

	result := &transcription.Result{Lyrics: lyricsText, LanguageDetected: string(langdetect.Unknown)}
	if entry, ok := book.FindByTrack(track); ok {
		result.LanguageDetected = entry.Language
		if err := book.IncrementPlayCounter(entry.ID); err != nil {
			logger.Error(fmt.Sprintf("failed to bump play counter for %s: %v", track, err))
		}
	}
	return result, true
}

func processNext(ctx context.Context, q *queue.Manager, rdb *redis.Manager, service *lyrics.Service, notifier *notify.Notifier) {
	job, ok := q.NextQueued()
	if !ok {
		return
	}

	if err := q.MarkProcessing(ctx, job.ID); err != nil {
		logger.Error(fmt.Sprintf("failed to mark job #%d processing: %v", job.ID, err))
		return
	}
	logger.Debug(fmt.Sprintf("processing job #%d (%s)", job.ID, job.Track))

	// a re-submitted track skips formatting entirely
	if result, ok := cachedResult(ctx, rdb, db.Lyricsbook, job.Track); ok {
		finishJob(ctx, q, rdb, notifier, job, result, true)
		return
	}

	resp, err := transcription.ParseFile(job.SourcePath)
	if err != nil {
		failJob(ctx, q, notifier, job, fmt.Sprintf("unreadable transcription: %v", err))
		return
	}

	result := service.FormatTranscription(resp, true)

	entry := db.Entry{
		Track:     job.Track,
		Language:  result.LanguageDetected,
		Lyrics:    result.Lyrics,
		WordCount: len(result.Words),
	}
	if _, err := db.Lyricsbook.Save(ctx, entry); err != nil {
		failJob(ctx, q, notifier, job, fmt.Sprintf("failed to save lyrics: %v", err))
		return
	}

	if err := rdb.CacheLyrics(ctx, job.Track, result.Lyrics); err != nil {
		logger.Error(fmt.Sprintf("failed to cache lyrics for %s: %v", job.Track, err))
	}

	finishJob(ctx, q, rdb, notifier, job, result, false)
}

func finishJob(ctx context.Context, q *queue.Manager, rdb *redis.Manager, notifier *notify.Notifier, job jobs.Job, result *transcription.Result, fromCache bool) {
	if err := rdb.IncrementTrackCount(ctx, job.Track); err != nil {
		logger.Error(fmt.Sprintf("failed to bump track counter for %s: %v", job.Track, err))
	}

	if err := q.Complete(ctx, job.ID, result.LanguageDetected); err != nil {
		logger.Error(fmt.Sprintf("failed to complete job #%d: %v", job.ID, err))
		return
	}

	source := "formatted"
	if fromCache {
		source = "cached"
	}
	lineCount := len(strings.Split(result.Lyrics, "\n"))
	logger.Success(fmt.Sprintf("job #%d done: %s (%s, %d lines, %s)", job.ID, job.Track, result.LanguageDetected, lineCount, source))
	if notifier != nil {
		notifier.JobDone(job, result.LanguageDetected, lineCount)
	}
}

func failJob(ctx context.Context, q *queue.Manager, notifier *notify.Notifier, job jobs.Job, reason string) {
	logger.Error(fmt.Sprintf("job #%d failed: %s", job.ID, reason))
	if err := q.Fail(ctx, job.ID, reason); err != nil {
		logger.Error(fmt.Sprintf("failed to record failure of job #%d: %v", job.ID, err))
	}
	if notifier != nil {
		notifier.JobFailed(job, reason)
	}
}
