package textclean

import (
	"regexp"
	"strings"
)

// Noise markers the recognizer emits for non-lyric audio, e.g. "[Music]",
// "(applause)", "[tiếng nhạc]" style tags. Matched case-insensitively
// inside either bracket flavor.
var (
	noiseBracketRegex = regexp.MustCompile(`(?i)\[[^\]]*(music|musik|applause|laugh|silence|instrumental|vocaliz|noise|cheer|nhạc)[^\]]*\]`)
	noiseParenRegex   = regexp.MustCompile(`(?i)\([^)]*(music|musik|applause|laugh|silence|instrumental|vocaliz|noise|cheer|nhạc)[^)]*\)`)
	htmlTagRegex      = regexp.MustCompile(`<[^<>]+>`)

	multiSpaceRegex = regexp.MustCompile(`[ \t]{2,}`)

	// space glued to the wrong side of punctuation. The after-punct rule
	// deliberately skips digits so "3.5" never becomes "3. 5".
	spaceBeforePunctRegex  = regexp.MustCompile(`\s+([.,!?;:])`)
	noSpaceAfterPunctRegex = regexp.MustCompile(`([.,!?;:])([^\s\d.,!?;:])`)
)

// StripNoise removes non-lyric annotation markers from a single line.
func StripNoise(line string) string {
	line = noiseBracketRegex.ReplaceAllString(line, "")
	line = noiseParenRegex.ReplaceAllString(line, "")
	line = htmlTagRegex.ReplaceAllString(line, "")
	return line
}

// CollapseSpaces squeezes runs of spaces and tabs down to one space.
func CollapseSpaces(line string) string {
	return multiSpaceRegex.ReplaceAllString(line, " ")
}

// Clean normalizes a block of recognized text: drops noise markers,
// collapses whitespace, trims every line, removes empty lines and fixes
// spacing around punctuation. Total over all strings and idempotent on
// already-clean input.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = StripNoise(text)
	text = CollapseSpaces(text)

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = spaceBeforePunctRegex.ReplaceAllString(text, "$1")
	text = noSpaceAfterPunctRegex.ReplaceAllString(text, "$1 $2")

	return strings.TrimSpace(text)
}
