package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/minhle/karascribe/internal/jobs"
	"github.com/minhle/karascribe/internal/utils"
)

// Manager wraps the redis connection used for job-state persistence,
// the per-track lyrics cache and the play counters.
type Manager struct {
	client *redisClient.Client
}

func NewManager() (*Manager, error) {
	env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"})
	if err != nil {
		return nil, fmt.Errorf("failed to load redis env: %w", err)
	}
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", env["REDIS_PASSWORD"], env["REDIS_URL"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &Manager{client: redisClient.NewClient(opt)}, nil
}

const (
	jobsKey           = "extraction_jobs"
	lyricsCachePrefix = "lyrics:"
	lyricsCacheTTL    = 24 * time.Hour
	trackCountsKey    = "track_counts"
)

// SetJobs stores the entire job list. The queue manager mirrors its
// in-memory state here on every mutation.
func (m *Manager) SetJobs(ctx context.Context, list []jobs.Job) error {
	listJSON, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, jobsKey, listJSON, 0).Err()
}

// GetJobs retrieves the job list; a missing key is an empty list.
func (m *Manager) GetJobs(ctx context.Context) ([]jobs.Job, error) {
	data, err := m.client.Get(ctx, jobsKey).Bytes()
	if err != nil {
		if err == redisClient.Nil {
			return []jobs.Job{}, nil
		}
		return nil, err
	}
	var list []jobs.Job
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CacheLyrics stores formatted lyrics for a track so a re-submitted
// job skips formatting.
func (m *Manager) CacheLyrics(ctx context.Context, track string, lyrics string) error {
	return m.client.Set(ctx, lyricsCachePrefix+track, lyrics, lyricsCacheTTL).Err()
}

// GetCachedLyrics returns the cached lyrics for a track and whether the
// cache held them.
func (m *Manager) GetCachedLyrics(ctx context.Context, track string) (string, bool, error) {
	lyrics, err := m.client.Get(ctx, lyricsCachePrefix+track).Result()
	if err != nil {
		if err == redisClient.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return lyrics, true, nil
}

// IncrementTrackCount bumps the extraction counter for a track.
func (m *Manager) IncrementTrackCount(ctx context.Context, track string) error {
	err := m.client.HIncrBy(ctx, trackCountsKey, track, 1).Err()
	if err != nil {
		return fmt.Errorf("failed to increment count for track %s: %v", track, err)
	}
	return nil
}

// GetTrackCounts retrieves the extraction counters for all tracks.
func (m *Manager) GetTrackCounts(ctx context.Context) (map[string]int, error) {
	result := make(map[string]int)
	raw, err := m.client.HGetAll(ctx, trackCountsKey).Result()
	if err != nil {
		if err == redisClient.Nil {
			return result, nil
		}
		return nil, err
	}
	for track, count := range raw {
		countInt, err := strconv.Atoi(count)
		if err != nil {
			continue // skip invalid counts
		}
		result[track] = countInt
	}
	return result, nil
}
