package corebpe

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// PretokenScanner wraps the pre-token regular expression and yields
// non-overlapping, leftmost-first pretoken strings over a text slice. The
// supplied pattern may use lookaround, which is why this wraps regexp2
// rather than the standard library's RE2-based regexp.
type PretokenScanner struct {
	re *regexp2.Regexp
}

// NewPretokenScanner compiles pattern for use as a pre-token scanner.
func NewPretokenScanner(pattern string) (*PretokenScanner, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: pretoken pattern: %s", ErrInvalidPattern, err)
	}
	return &PretokenScanner{re: re}, nil
}

// PretokenIterator is the lazy sequence of matches produced by Iterate.
// Advancing it drives FindNextMatch, so it never allocates the full match
// list up front.
type PretokenIterator struct {
	re    *regexp2.Regexp
	match *regexp2.Match
	err   error
}

// Iterate begins scanning text from its start. Each call to Next on the
// returned iterator yields the next non-overlapping match.
func (s *PretokenScanner) Iterate(text string) *PretokenIterator {
	m, err := s.re.FindStringMatch(text)
	return &PretokenIterator{re: s.re, match: m, err: err}
}

// Next returns the next match's text. ok is false once the sequence is
// exhausted.
//
// regexp2 reports Match.Index and Match.Length in rune (code point) units,
// not bytes, so callers must not reconstruct the piece by slicing the
// original string with them: a multi-byte rune anywhere earlier in the
// text would desync those offsets from real byte positions. Match.String
// returns the matched text directly and sidesteps the conversion entirely.
func (it *PretokenIterator) Next() (piece string, ok bool) {
	if it.err != nil || it.match == nil {
		return "", false
	}
	piece = it.match.String()
	it.match, it.err = it.re.FindNextMatch(it.match)
	return piece, true
}
