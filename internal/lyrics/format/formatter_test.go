package format

import (
	"strings"
	"testing"

	"github.com/minhle/karascribe/internal/transcription"
)

func word(text string, start, end float64) transcription.Word {
	return transcription.Word{Word: text, Start: start, End: end}
}

func segWithWords(words ...transcription.Word) transcription.Segment {
	seg := transcription.Segment{Words: words}
	if len(words) > 0 {
		seg.Start = words[0].Start
		seg.End = words[len(words)-1].End
	}
	return seg
}

// wideOpts disables every trigger except the ones a test exercises.
func wideOpts() Options {
	return Options{
		MaxCharsPerLine:          1000,
		LineGapThreshold:         100,
		StanzaGapThreshold:       200,
		UppercaseBreak:           false,
		MinCharsBeforeUpperBreak: 18,
		MinWordsBeforeUpperBreak: 4,
	}
}

func TestWordsEmptyInput(t *testing.T) {
	lyrics, words := Words(nil, DefaultOptions())
	if lyrics != "" {
		t.Errorf("lyrics = %q; want empty", lyrics)
	}
	if words == nil || len(words) != 0 {
		t.Errorf("words = %#v; want empty non-nil list", words)
	}

	lyrics, words = Words([]transcription.Segment{{Text: "no word data", Start: 0, End: 2}}, DefaultOptions())
	if lyrics != "" || len(words) != 0 {
		t.Errorf("segments without words should produce nothing, got %q / %#v", lyrics, words)
	}
}

func TestGapTriggeredLineBreak(t *testing.T) {
	opts := wideOpts()
	opts.LineGapThreshold = 0.8

	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("A", 0.0, 0.5),
		word("B", 1.5, 2.0),
	)}, opts)

	if lyrics != "A\nB" {
		t.Errorf("lyrics = %q; want %q", lyrics, "A\nB")
	}
}

func TestStanzaBreaks(t *testing.T) {
	opts := wideOpts()
	opts.StanzaGapThreshold = 2.5

	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("one", 0.0, 1.0),
		word("two", 5.0, 6.0),
		word("three", 10.0, 11.0),
	)}, opts)

	want := "one\n\ntwo\n\nthree"
	if lyrics != want {
		t.Errorf("lyrics = %q; want %q", lyrics, want)
	}
	if strings.Contains(lyrics, "\n\n\n") {
		t.Error("output contains a run of blank lines")
	}
	if strings.HasPrefix(lyrics, "\n") || strings.HasSuffix(lyrics, "\n") {
		t.Error("output starts or ends with a blank line")
	}
}

func TestUppercaseBreakHonorsThresholds(t *testing.T) {
	opts := wideOpts()
	opts.UppercaseBreak = true
	opts.MinCharsBeforeUpperBreak = 18
	opts.MinWordsBeforeUpperBreak = 4

	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("Một", 0.0, 0.2),
		word("ngày", 0.2, 0.4),
		word("nắng", 0.4, 0.6),
		word("nhẹ", 0.6, 0.8),
		word("Để", 0.8, 1.0),
		word("em", 1.0, 1.2),
		word("về", 1.2, 1.4),
	)}, opts)

	lines := strings.Split(lyrics, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines %#v; want 2", len(lines), lines)
	}
	if lines[0] != "Một ngày nắng nhẹ" {
		t.Errorf("line 1 = %q; want %q", lines[0], "Một ngày nắng nhẹ")
	}
	if lines[1] != "Để em về" {
		t.Errorf("line 2 = %q; want %q", lines[1], "Để em về")
	}
}

func TestUppercaseBreakBelowThresholds(t *testing.T) {
	opts := wideOpts()
	opts.UppercaseBreak = true

	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("Hello", 0.0, 0.1),
		word("World", 0.1, 0.2),
	)}, opts)

	if lyrics != "Hello World" {
		t.Errorf("lyrics = %q; want single line %q", lyrics, "Hello World")
	}
}

func TestPunctuationAttachment(t *testing.T) {
	lyrics, words := Words([]transcription.Segment{segWithWords(
		word("Hello", 0.0, 0.10),
		word(",", 0.10, 0.15),
		word("world", 0.20, 0.30),
		word("!", 0.30, 0.35),
	)}, wideOpts())

	if lyrics != "Hello, world!" {
		t.Errorf("lyrics = %q; want %q", lyrics, "Hello, world!")
	}
	// the pass-through list still carries the punctuation tokens
	if len(words) != 4 {
		t.Errorf("got %d words; want 4", len(words))
	}
}

func TestLeadingPunctuationDropped(t *testing.T) {
	lyrics, words := Words([]transcription.Segment{segWithWords(
		word(",", 0.0, 0.1),
		word("Hello", 0.2, 0.3),
	)}, wideOpts())

	if lyrics != "Hello" {
		t.Errorf("lyrics = %q; want %q", lyrics, "Hello")
	}
	if len(words) != 2 {
		t.Errorf("got %d words; want 2 (pass-through keeps the token)", len(words))
	}
}

func TestSoftCharacterBudget(t *testing.T) {
	opts := wideOpts()
	opts.MaxCharsPerLine = 10

	long := "supercalifragilistic"
	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word(long, 0.0, 0.5),
		word("a", 0.5, 0.6),
		word("b", 0.6, 0.7),
	)}, opts)

	lines := strings.Split(lyrics, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines %#v; want 2", len(lines), lines)
	}
	if lines[0] != long {
		t.Errorf("line 1 = %q; overlong word must never be truncated", lines[0])
	}
	if lines[1] != "a b" {
		t.Errorf("line 2 = %q; want %q", lines[1], "a b")
	}
}

func TestRuneBasedBudget(t *testing.T) {
	opts := wideOpts()
	// "nhẹ nhẹ" is 7 runes but 11 bytes; a rune-based budget of 8 keeps
	// both words on one line.
	opts.MaxCharsPerLine = 8

	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("nhẹ", 0.0, 0.1),
		word("nhẹ", 0.1, 0.2),
	)}, opts)

	if lyrics != "nhẹ nhẹ" {
		t.Errorf("lyrics = %q; want %q", lyrics, "nhẹ nhẹ")
	}
}

func TestOrderPreservationAndPassThrough(t *testing.T) {
	input := []transcription.Word{
		word("Anh", 0.0, 0.3),
		word("nhớ", 0.3, 0.6),
		word("em", 0.6, 0.9),
		word(",", 0.9, 0.95),
		word("nhiều", 2.0, 2.4),
		word("lắm", 2.4, 2.8),
		word("!", 2.8, 2.85),
		word("Ngày", 6.0, 6.4),
		word("mai", 6.4, 6.8),
	}
	opts := Options{
		MaxCharsPerLine:          20,
		LineGapThreshold:         0.8,
		StanzaGapThreshold:       2.5,
		UppercaseBreak:           true,
		MinCharsBeforeUpperBreak: 18,
		MinWordsBeforeUpperBreak: 4,
	}

	lyrics, words := Words([]transcription.Segment{segWithWords(input...)}, opts)

	if len(words) != len(input) {
		t.Fatalf("pass-through list has %d tokens; want %d", len(words), len(input))
	}
	for i := range input {
		if words[i] != input[i] {
			t.Errorf("token %d = %#v; want %#v", i, words[i], input[i])
		}
	}

	// flatten the lyrics, detach punctuation, and compare the sequence
	flat := lyrics
	for _, p := range punctuationChars {
		flat = strings.ReplaceAll(flat, string(p), " "+string(p))
	}
	got := strings.Fields(flat)
	want := make([]string, len(input))
	for i, tok := range input {
		want[i] = tok.Word
	}
	if len(got) != len(want) {
		t.Fatalf("flattened output %#v; want tokens %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flattened token %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestNoiseLeakedIntoWordText(t *testing.T) {
	lyrics, _ := Words([]transcription.Segment{segWithWords(
		word("Hello", 0.0, 0.5),
		word("[Music]", 0.5, 1.0),
	)}, wideOpts())

	if lyrics != "Hello" {
		t.Errorf("lyrics = %q; want noise marker swept out", lyrics)
	}
}

func TestTokensAcrossSegments(t *testing.T) {
	opts := wideOpts()
	opts.LineGapThreshold = 0.8

	// segment boundaries carry no weight beyond their timing gap
	lyrics, _ := Words([]transcription.Segment{
		segWithWords(word("one", 0.0, 0.5), word("two", 0.5, 1.0)),
		segWithWords(word("three", 1.1, 1.5)),
		segWithWords(word("four", 3.0, 3.5)),
	}, opts)

	want := "one two three\nfour"
	if lyrics != want {
		t.Errorf("lyrics = %q; want %q", lyrics, want)
	}
}
