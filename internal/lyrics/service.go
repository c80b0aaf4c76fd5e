package lyrics

import (
	"fmt"

	"github.com/minhle/karascribe/internal/logger"
	"github.com/minhle/karascribe/internal/lyrics/format"
	"github.com/minhle/karascribe/internal/lyrics/langdetect"
	"github.com/minhle/karascribe/internal/transcription"
)

// Config holds the knobs for one extraction run.
type Config struct {
	Format                format.Options
	Dedupe                bool
	MaxConsecutiveRepeats int
}

// DefaultConfig returns the worker's standard tuning.
func DefaultConfig() Config {
	return Config{
		Format:                format.DefaultOptions(),
		Dedupe:                true,
		MaxConsecutiveRepeats: 2,
	}
}

// Service turns recognizer output into a finished lyrics result
type Service struct {
	config   Config
	detector langdetect.Detector
}

// NewService creates a new lyrics service. A nil detector falls back to
// the character-ratio heuristic.
func NewService(config Config, detector langdetect.Detector) *Service {
	if detector == nil {
		detector = langdetect.NewCharRatio()
	}
	return &Service{config: config, detector: detector}
}

// FormatTranscription runs the full pipeline: the word-timeline
// formatter when any segment carries word timestamps, the segment
// fallback otherwise, then deduplication and language tagging. The word
// timeline is always computed on the word path; includeWords only
// controls whether it is attached to the result.
func (s *Service) FormatTranscription(resp *transcription.Response, includeWords bool) *transcription.Result {
	result := &transcription.Result{LanguageDetected: string(langdetect.Unknown)}
	if resp == nil || len(resp.Segments) == 0 {
		return result
	}

	var lyricsText string
	var words []transcription.Word
	if resp.HasWordTimestamps() {
		lyricsText, words = format.Words(resp.Segments, s.config.Format)
	} else {
		logger.Debug("no word timestamps in transcription, using segment-level formatting")
		lyricsText = format.Segments(resp.Segments)
	}

	if s.config.Dedupe {
		lyricsText = format.DedupeRepeats(lyricsText, s.config.MaxConsecutiveRepeats)
	}

	result.Lyrics = lyricsText
	result.LanguageDetected = string(s.detector.Detect(lyricsText))
	if includeWords {
		result.Words = words
	}

	logger.Debug(fmt.Sprintf("formatted transcription: %d segments, %d words, language %s",
		len(resp.Segments), len(words), result.LanguageDetected))

	return result
}
