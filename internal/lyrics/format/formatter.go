// Package format reconstructs the line and stanza structure of song
// lyrics from timestamped recognizer output. The word-timeline path
// walks the flat token stream once, deciding before each token whether
// the pause since the previous token, the length of the line in
// progress or a capitalization cue calls for a break; a coarser
// segment-level path covers transcriptions without word timing.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/minhle/karascribe/internal/lyrics/textclean"
	"github.com/minhle/karascribe/internal/transcription"
)

// Options control the word-timeline formatter. Gap thresholds are in
// seconds and sit well below spoken-language defaults: sung phrases run
// closer together than speech.
type Options struct {
	MaxCharsPerLine    int     // soft budget, never truncates a word
	LineGapThreshold   float64 // silence that starts a new line
	StanzaGapThreshold float64 // silence that starts a new stanza

	// The uppercase break is a fallback for vocalists who run phrases
	// together without an audible pause. It only fires once the line in
	// progress has either enough characters or enough words, so stray
	// proper nouns don't shred short lines.
	UppercaseBreak           bool
	MinCharsBeforeUpperBreak int
	MinWordsBeforeUpperBreak int
}

// DefaultOptions returns the tuning used by the extraction worker.
func DefaultOptions() Options {
	return Options{
		MaxCharsPerLine:          42,
		LineGapThreshold:         0.8,
		StanzaGapThreshold:       2.5,
		UppercaseBreak:           true,
		MinCharsBeforeUpperBreak: 18,
		MinWordsBeforeUpperBreak: 4,
	}
}

// punctuationChars are recognizer tokens that attach to the previous
// word with no separating space instead of counting as words.
const punctuationChars = ",.!?;:"

// isPunctToken reports whether the token consists purely of attaching
// punctuation.
func isPunctToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(punctuationChars, r) {
			return false
		}
	}
	return true
}

// lineState is the line in progress. chars approximates the rendered
// rune length including inter-word spaces; words counts non-punctuation
// tokens only.
type lineState struct {
	buf   []string
	chars int
	words int
}

func (l *lineState) empty() bool {
	return len(l.buf) == 0
}

func (l *lineState) reset() {
	*l = lineState{}
}

// push appends a token. Punctuation glues onto the last buffered word;
// a punctuation token arriving on an empty line is dropped, a lyrics
// line cannot open with a floating comma.
func (l *lineState) push(w string) {
	if isPunctToken(w) {
		if l.empty() {
			return
		}
		l.buf[len(l.buf)-1] += w
		l.chars += utf8.RuneCountInString(w)
		return
	}
	if !l.empty() {
		l.chars++
	}
	l.buf = append(l.buf, w)
	l.chars += utf8.RuneCountInString(w)
	l.words++
}

// join renders the buffered line. Punctuation-only elements are merged
// onto their predecessor here as well, in case one slipped into the
// buffer as a standalone entry.
func (l *lineState) join() string {
	var parts []string
	for _, tok := range l.buf {
		if isPunctToken(tok) && len(parts) > 0 {
			parts[len(parts)-1] += tok
			continue
		}
		parts = append(parts, tok)
	}
	return strings.Join(parts, " ")
}

// Words formats segments that carry word-level timestamps into lyrics
// text, and returns the flat token list alongside it. The returned list
// is a pass-through projection of the input tokens (trimmed, empties
// dropped) in their original order, independent of where the line
// breaks fell. Segments without word data are skipped.
func Words(segments []transcription.Segment, opts Options) (string, []transcription.Word) {
	var tokens []transcription.Word
	for _, seg := range segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			tokens = append(tokens, transcription.Word{Word: text, Start: w.Start, End: w.End})
		}
	}
	if len(tokens) == 0 {
		return "", []transcription.Word{}
	}

	rules := breakRules()
	var lines []string
	var line lineState
	prevEnd := 0.0

	for _, tok := range tokens {
		gap := tok.Start - prevEnd

		decision := breakNone
		for _, rule := range rules {
			if decision = rule(&line, tok.Word, gap, opts); decision != breakNone {
				break
			}
		}

		switch decision {
		case breakStanza:
			lines = append(lines, line.join(), "")
			line.reset()
		case breakLine:
			lines = append(lines, line.join())
			line.reset()
		}

		line.push(tok.Word)
		prevEnd = tok.End
	}
	if !line.empty() {
		lines = append(lines, line.join())
	}

	return finalizeLyrics(strings.Join(lines, "\n")), tokens
}

var excessiveBreaksRegex = regexp.MustCompile(`\n{3,}`)

// finalizeLyrics is the shared post-pass: each non-blank line is
// trimmed, re-swept for noise markers that leaked into word text and
// space-collapsed; blank lines pass through as stanza markers. Runs of
// blank lines then collapse to a single separator and the whole block
// is trimmed, so the result never starts or ends blank.
func finalizeLyrics(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			lines[i] = ""
			continue
		}
		line = textclean.StripNoise(line)
		line = textclean.CollapseSpaces(line)
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.Join(lines, "\n")
	out = excessiveBreaksRegex.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
