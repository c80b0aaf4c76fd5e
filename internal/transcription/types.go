package transcription

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Word is a single recognized word (or punctuation mark) with its time
// interval in seconds. The recognizer rounds timestamps to 2 decimals.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one recognizer inference window. Words is optional: some
// decoding modes only produce segment-level timing.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Response is the recognizer output document for one track.
type Response struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

// Result is what the job layer hands back downstream: formatted lyrics,
// the optional word timeline, and a coarse language tag.
type Result struct {
	Lyrics           string `json:"lyrics"`
	Words            []Word `json:"words"`
	LanguageDetected string `json:"language_detected"`
}

// HasWordTimestamps reports whether any segment carries word-level data.
func (r *Response) HasWordTimestamps() bool {
	for _, seg := range r.Segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

// Decode reads a recognizer response document from r.
func Decode(r io.Reader) (*Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode transcription: %w", err)
	}
	return &resp, nil
}

// ParseFile loads a recognizer response document from disk.
func ParseFile(path string) (*Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcription file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
