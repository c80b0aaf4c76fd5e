package format

import (
	"strings"

	"github.com/minhle/karascribe/internal/lyrics/textclean"
	"github.com/minhle/karascribe/internal/transcription"
)

// Gap thresholds for the segment fallback. Coarser than the word path:
// with only segment-granularity timing there is no point in a tight
// tuning surface.
const (
	segmentStanzaGap = 1.0
	segmentLineGap   = 0.3
)

// Segments is the fallback path for transcriptions without word-level
// timestamps: each segment's cleaned text becomes a line fragment and
// the inter-segment silence decides whether it opens a stanza, opens a
// line or continues the previous one.
func Segments(segments []transcription.Segment) string {
	var lines []string
	prevEnd := 0.0

	for _, seg := range segments {
		text := textclean.Clean(seg.Text)
		if text == "" {
			continue
		}
		gap := seg.Start - prevEnd
		switch {
		case gap > segmentStanzaGap && len(lines) > 0:
			lines = append(lines, "", text)
		case gap > segmentLineGap || len(lines) == 0:
			lines = append(lines, text)
		default:
			lines[len(lines)-1] += " " + text
		}
		prevEnd = seg.End
	}

	return finalizeLyrics(strings.Join(lines, "\n"))
}
