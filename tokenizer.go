package corebpe

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

// Tokenizer holds an immutable vocabulary, special-token table, and the two
// scanners that drive encoding. Once constructed it is safe for any number
// of goroutines to call its read operations concurrently: nothing here
// mutates encoder, decoder, or the sorted token table.
//
// dlclark/regexp2's Regexp pools its own match-runners internally, so a
// single shared compiled pattern is already safe for concurrent
// FindStringMatch/FindNextMatch calls; this is option (a) from the
// concurrency design notes rather than a hand-rolled per-goroutine pool.
type Tokenizer struct {
	encoder        map[string]Rank
	decoder        tokenStore
	specialEncoder map[string]Rank
	specialDecoder map[Rank][]byte
	sortedTokens   [][]byte

	pretoken *PretokenScanner
	special  *SpecialScanner

	partsPool sync.Pool
	tokenPool sync.Pool
}

// New constructs a Tokenizer from a vocabulary (encoder), an optional
// special-token table, and a pre-token regular expression. The Tokenizer is
// immutable after construction.
func New(encoder map[string]Rank, specialEncoder map[string]Rank, pattern string) (*Tokenizer, error) {
	decoder, err := newTokenStore(encoder)
	if err != nil {
		return nil, fmt.Errorf("%w: building decoder: %s", ErrInvalidVocabulary, err)
	}
	seen := make(map[Rank]struct{}, len(encoder))
	for _, id := range encoder {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate rank %d", ErrInvalidVocabulary, id)
		}
		seen[id] = struct{}{}
	}

	specialDecoder := make(map[Rank][]byte, len(specialEncoder))
	for lit, id := range specialEncoder {
		if _, dup := specialDecoder[id]; dup {
			return nil, fmt.Errorf("%w: duplicate special rank %d", ErrInvalidVocabulary, id)
		}
		specialDecoder[id] = []byte(lit)
	}

	pretoken, err := NewPretokenScanner(pattern)
	if err != nil {
		return nil, err
	}

	literals := make([]string, 0, len(specialEncoder))
	for lit := range specialEncoder {
		literals = append(literals, lit)
	}
	special, err := NewSpecialScanner(literals)
	if err != nil {
		return nil, err
	}

	sortedTokens := make([][]byte, 0, len(encoder))
	for piece := range encoder {
		sortedTokens = append(sortedTokens, []byte(piece))
	}
	sort.Slice(sortedTokens, func(i, j int) bool {
		return string(sortedTokens[i]) < string(sortedTokens[j])
	})

	return &Tokenizer{
		encoder:        encoder,
		decoder:        decoder,
		specialEncoder: specialEncoder,
		specialDecoder: specialDecoder,
		sortedTokens:   sortedTokens,
		pretoken:       pretoken,
		special:        special,
		partsPool:      sync.Pool{New: func() any { s := make([]mergePart, 0, 64); return &s }},
		tokenPool:      sync.Pool{New: func() any { s := make([]Rank, 0, 32); return &s }},
	}, nil
}

// EncodeOrdinary tokenizes text without any special-token handling: every
// byte of text is covered by the pre-token scanner and the merge engine.
func (t *Tokenizer) EncodeOrdinary(text string) []Rank {
	var out []Rank
	it := t.pretoken.Iterate(text)
	for {
		piece, ok := it.Next()
		if !ok {
			break
		}
		if id, ok := t.encoder[piece]; ok {
			out = append(out, id)
		} else {
			out = append(out, t.bytePairEncode(piece)...)
		}
	}
	return out
}

// Encode tokenizes text, emitting a special token's rank wherever an
// allowed special literal is matched at the top level. Disallowed special
// occurrences pass through as ordinary text. See encode for the
// last-piece-length bookkeeping used by EncodeWithUnstable.
func (t *Tokenizer) Encode(text string, allowedSpecial map[string]struct{}) []Rank {
	toks, _ := t.encode(text, allowedSpecial)
	return toks
}

// EncodeWithSpecialTokens tokenizes text with every registered special
// token allowed, a convenience for callers that trust their input not to
// contain special-token literals they didn't intend to emit.
func (t *Tokenizer) EncodeWithSpecialTokens(text string) []Rank {
	allowed := make(map[string]struct{}, len(t.specialEncoder))
	for s := range t.specialEncoder {
		allowed[s] = struct{}{}
	}
	toks, _ := t.encode(text, allowed)
	return toks
}

// encode is the shared implementation behind Encode and EncodeWithUnstable.
// It returns the token sequence and the number of trailing tokens
// contributed by the final pretoken of the final interval (0 if the text
// ended with an emitted special token).
func (t *Tokenizer) encode(text string, allowedSpecial map[string]struct{}) ([]Rank, int) {
	hasSpecials := len(allowedSpecial) > 0
	var out []Rank
	lastPieceLen := 0
	start := 0
	for {
		end := len(text)
		specialStart, specialEnd, foundSpecial := 0, 0, false
		if hasSpecials {
			specialStart, specialEnd, foundSpecial = t.nextAllowedSpecial(text, start, allowedSpecial)
			if foundSpecial {
				end = specialStart
			}
		}

		it := t.pretoken.Iterate(text[start:end])
		for {
			piece, ok := it.Next()
			if !ok {
				break
			}
			if id, ok := t.encoder[piece]; ok {
				out = append(out, id)
				lastPieceLen = 1
			} else {
				toks := t.bytePairEncode(piece)
				out = append(out, toks...)
				lastPieceLen = len(toks)
			}
		}

		if !foundSpecial {
			break
		}
		out = append(out, t.specialEncoder[text[specialStart:specialEnd]])
		lastPieceLen = 0
		start = specialEnd
	}
	return out, lastPieceLen
}

// nextAllowedSpecial searches forward from pos for the next special-token
// match whose literal is in allowed, skipping over (but not consuming)
// disallowed occurrences one byte at a time per §4.4(a).
func (t *Tokenizer) nextAllowedSpecial(text string, pos int, allowed map[string]struct{}) (start, end int, ok bool) {
	for {
		s, e, found := t.special.FindFrom(text, pos)
		if !found {
			return 0, 0, false
		}
		if _, isAllowed := allowed[text[s:e]]; isAllowed {
			return s, e, true
		}
		pos = s + 1
	}
}

// EncodeBytes tokenizes arbitrary, possibly non-UTF-8 bytes. Valid UTF-8
// input delegates to EncodeOrdinary; otherwise the longest valid-UTF-8
// prefix is encoded normally and the invalid tail is merged back into the
// unstable trailing tokens before being re-tokenized.
func (t *Tokenizer) EncodeBytes(data []byte) []Rank {
	if utf8.Valid(data) {
		return t.EncodeOrdinary(string(data))
	}

	k := validUTF8PrefixLen(data)
	tokens, lastPieceLen := t.encode(string(data[:k]), nil)
	tokens, lastPieceLen = t.growWhitespace(tokens, lastPieceLen)

	var tail []byte
	if lastPieceLen > 0 {
		tail = t.decodeTokens(tokens[len(tokens)-lastPieceLen:])
		tokens = tokens[:len(tokens)-lastPieceLen]
	}
	tail = append(tail, data[k:]...)

	if id, ok := t.encoder[string(tail)]; ok {
		tokens = append(tokens, id)
	} else {
		tokens = append(tokens, t.bytePairEncodeBytes(tail)...)
	}
	return tokens
}

// validUTF8PrefixLen returns the length of the longest prefix of b that is
// valid UTF-8, mirroring Rust's str::from_utf8 error's valid_up_to().
func validUTF8PrefixLen(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// DecodeBytes concatenates the decoded bytes of every token, consulting the
// special-token table as a fallback.
func (t *Tokenizer) DecodeBytes(tokens []Rank) []byte {
	return t.decodeTokens(tokens)
}

// DecodeUTF8 is DecodeBytes with the result interpreted (without
// validation) as a UTF-8 string.
func (t *Tokenizer) DecodeUTF8(tokens []Rank) string {
	return string(t.decodeTokens(tokens))
}

func (t *Tokenizer) decodeTokens(tokens []Rank) []byte {
	var out []byte
	for _, tok := range tokens {
		if t.decoder.AppendInto(&out, tok) {
			continue
		}
		if b, ok := t.specialDecoder[tok]; ok {
			out = append(out, b...)
			continue
		}
	}
	return out
}

func (t *Tokenizer) decodeSingle(tok Rank) []byte {
	var out []byte
	if t.decoder.AppendInto(&out, tok) {
		return out
	}
	if b, ok := t.specialDecoder[tok]; ok {
		return b
	}
	return nil
}

// EncodeSingleToken returns the rank for piece, first checking the ordinary
// vocabulary and then, if piece is valid UTF-8, the special-token table.
func (t *Tokenizer) EncodeSingleToken(piece []byte) (Rank, error) {
	if id, ok := t.encoder[string(piece)]; ok {
		return id, nil
	}
	if utf8.Valid(piece) {
		if id, ok := t.specialEncoder[string(piece)]; ok {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrTokenNotFound, piece)
}

// EncodeSinglePiece returns piece's single-token rank if it is a direct
// vocabulary hit, else the merge result. It never consults the special
// vocabulary.
func (t *Tokenizer) EncodeSinglePiece(piece []byte) []Rank {
	if id, ok := t.encoder[string(piece)]; ok {
		return []Rank{id}
	}
	return t.bytePairEncodeBytes(piece)
}

// DecodeSingleTokenBytes returns the byte sequence for a single rank,
// consulting the special-token table as a fallback.
func (t *Tokenizer) DecodeSingleTokenBytes(tok Rank) ([]byte, error) {
	var out []byte
	if t.decoder.AppendInto(&out, tok) {
		return out, nil
	}
	if b, ok := t.specialDecoder[tok]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: rank %d", ErrTokenNotFound, tok)
}

// TokenByteValues returns the vocabulary's key set in lexicographic byte
// order. The returned slices must not be mutated by the caller.
func (t *Tokenizer) TokenByteValues() [][]byte {
	return t.sortedTokens
}

// bytePairEncode runs the merge engine over a single pretoken that missed
// the direct vocabulary lookup.
func (t *Tokenizer) bytePairEncode(piece string) []Rank {
	if len(piece) == 1 {
		toks, release := t.acquireTokens(1)
		toks = append(toks[:0], t.encoder[piece])
		result := append([]Rank(nil), toks...)
		release()
		return result
	}

	partsPtr := t.partsPool.Get().(*[]mergePart)
	parts := bytePairMerge([]byte(piece), t.encoder, (*partsPtr)[:0])

	toks, release := t.acquireTokens(len(parts))
	toks = toks[:0]
	for i := 0; i+1 < len(parts); i++ {
		toks = append(toks, t.encoder[piece[parts[i].start:parts[i+1].start]])
	}
	result := append([]Rank(nil), toks...)
	release()

	*partsPtr = parts[:0]
	t.partsPool.Put(partsPtr)
	return result
}

// bytePairEncodeBytes is bytePairEncode for raw bytes (used by the invalid
// UTF-8 tail path and EncodeSinglePiece, where the piece may not be valid
// UTF-8).
func (t *Tokenizer) bytePairEncodeBytes(piece []byte) []Rank {
	if len(piece) == 0 {
		return nil
	}
	return t.bytePairEncode(string(piece))
}

func (t *Tokenizer) acquireTokens(capHint int) ([]Rank, func()) {
	p := t.tokenPool.Get().(*[]Rank)
	if cap(*p) < capHint {
		buf := make([]Rank, 0, capHint)
		p = &buf
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		t.tokenPool.Put(p)
	}
	return (*p)[:0], release
}
