package langdetect

import (
	"strings"
	"unicode"
)

// Language is the coarse label attached to an extraction result.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
	Mixed      Language = "mixed"
	Unknown    Language = "unknown"
)

// Detector classifies a block of text. The formatter only depends on
// this interface so the character-ratio heuristic can be swapped for a
// real language model without touching the pipeline.
type Detector interface {
	Detect(text string) Language
}

// Characters that only occur in Vietnamese orthography. Plain vowels in
// Vietnamese words count toward the "other letters" side, which is what
// keeps this a crude ratio rather than a proper model.
const vietnameseChars = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ"

// CharRatio is a character-class ratio detector: it counts Vietnamese
// diacritic characters against all other letters and thresholds the
// ratio. Known limitation: diacritic-stripped Vietnamese reads as "en".
type CharRatio struct{}

func NewCharRatio() *CharRatio {
	return &CharRatio{}
}

func (d *CharRatio) Detect(text string) Language {
	var viCount, enCount int
	for _, r := range strings.ToLower(text) {
		switch {
		case strings.ContainsRune(vietnameseChars, r):
			viCount++
		case unicode.IsLetter(r):
			enCount++
		}
	}

	total := viCount + enCount
	if total == 0 {
		return Unknown
	}

	viRatio := float64(viCount) / float64(total)
	switch {
	case viRatio > 0.3 && viRatio < 0.7:
		return Mixed
	case viRatio >= 0.7:
		return Vietnamese
	case viRatio <= 0.3 && enCount > 10:
		return English
	default:
		return Unknown
	}
}
