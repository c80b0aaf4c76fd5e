package format

import "strings"

// DedupeRepeats caps runs of consecutive identical lines. Lines compare
// by their lowercased, trimmed form; once a line has repeated
// maxRepeats times in a row every further consecutive copy is dropped,
// and any differing line resets the run. Sung choruses love to repeat a
// hook eight times, readers don't.
func DedupeRepeats(lyrics string, maxRepeats int) string {
	if lyrics == "" || maxRepeats <= 0 {
		return lyrics
	}

	lines := strings.Split(lyrics, "\n")
	out := make([]string, 0, len(lines))

	var prevNorm string
	seen := false
	repeats := 0

	for _, line := range lines {
		norm := strings.ToLower(strings.TrimSpace(line))
		if seen && norm == prevNorm {
			repeats++
			if repeats >= maxRepeats {
				continue
			}
		} else {
			repeats = 0
		}
		prevNorm = norm
		seen = true
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
