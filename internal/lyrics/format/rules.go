package format

import (
	"unicode"
	"unicode/utf8"
)

type breakKind int

const (
	breakNone breakKind = iota
	breakLine
	breakStanza
)

// breakRule looks at the line in progress, the incoming token and the
// silence gap before it, and votes on a break. Rules run in a fixed
// order and the first non-none answer wins, which keeps the precedence
// (stanza > gap/length > uppercase) auditable rule by rule.
type breakRule func(line *lineState, word string, gap float64, opts Options) breakKind

func breakRules() []breakRule {
	return []breakRule{
		stanzaGapRule,
		lineGapOrLengthRule,
		uppercaseRule,
	}
}

// stanzaGapRule: a long pause ends the stanza.
func stanzaGapRule(line *lineState, _ string, gap float64, opts Options) breakKind {
	if !line.empty() && gap >= opts.StanzaGapThreshold {
		return breakStanza
	}
	return breakNone
}

// lineGapOrLengthRule: a shorter pause, or a line that would outgrow
// the soft character budget, ends the line. The budget is checked
// against the pre-append count, so a single overlong word can still
// push a line past the limit; the budget steers future breaks, it
// never truncates.
func lineGapOrLengthRule(line *lineState, word string, gap float64, opts Options) breakKind {
	if line.empty() {
		return breakNone
	}
	if gap >= opts.LineGapThreshold {
		return breakLine
	}
	if line.chars+utf8.RuneCountInString(word)+1 > opts.MaxCharsPerLine {
		return breakLine
	}
	return breakNone
}

// uppercaseRule: a capitalized word hints at a phrase start when timing
// under-segments. Unicode-aware so Vietnamese capitals like "Để" count.
func uppercaseRule(line *lineState, word string, _ float64, opts Options) breakKind {
	if !opts.UppercaseBreak || line.empty() {
		return breakNone
	}
	r, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
		return breakNone
	}
	if line.chars >= opts.MinCharsBeforeUpperBreak || line.words >= opts.MinWordsBeforeUpperBreak {
		return breakLine
	}
	return breakNone
}
