package corebpe

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// SpecialScanner wraps the alternation of escaped special-token literals and
// exposes FindFrom, which the Tokenizer uses to advance past special
// occurrences that the caller has disallowed. A SpecialScanner built from an
// empty literal set never matches.
type SpecialScanner struct {
	re *regexp2.Regexp
}

// NewSpecialScanner builds the alternation pattern over literals, each
// regex-escaped so that a literal like "<|end|>" is matched verbatim.
func NewSpecialScanner(literals []string) (*SpecialScanner, error) {
	if len(literals) == 0 {
		return &SpecialScanner{}, nil
	}
	escaped := make([]string, len(literals))
	for i, lit := range literals {
		escaped[i] = regexp.QuoteMeta(lit)
	}
	re, err := regexp2.Compile(strings.Join(escaped, "|"), regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: special pattern: %s", ErrInvalidPattern, err)
	}
	return &SpecialScanner{re: re}, nil
}

// FindFrom returns the next match at or after the byte offset offset in
// text, or ok == false if there is none (including when the scanner has no
// literals at all).
//
// regexp2 works in rune (code point) units throughout: the start position
// FindStringMatchStartingAt expects, and the Index/Length it reports back,
// are all rune offsets, not byte offsets. The Tokenizer's callers think in
// bytes (they slice text and compare byte positions), so offset is
// converted to a rune index before the search and the match's rune range
// is converted back to a byte range before returning.
func (s *SpecialScanner) FindFrom(text string, offset int) (start, end int, ok bool) {
	if s.re == nil {
		return 0, 0, false
	}
	runeOffset := utf8.RuneCountInString(text[:offset])
	m, err := s.re.FindStringMatchStartingAt(text, runeOffset)
	if err != nil || m == nil {
		return 0, 0, false
	}
	start = byteOffsetOfRune(text, m.Index)
	end = byteOffsetOfRune(text, m.Index+m.Length)
	return start, end, true
}

// byteOffsetOfRune returns the byte offset of the runeIdx-th rune in text
// (0-based), or len(text) if runeIdx is at or past the end.
func byteOffsetOfRune(text string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == runeIdx {
			return i
		}
		n++
	}
	return len(text)
}
