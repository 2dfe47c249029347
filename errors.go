package corebpe

import "errors"

// Sentinel error kinds returned by this package. Callers should compare
// against these with errors.Is; the wrapping fmt.Errorf calls attach the
// offending piece or rank.
var (
	// ErrInvalidVocabulary is returned by New when the encoder map contains
	// duplicate ranks, so it cannot be inverted into a bijective decoder.
	ErrInvalidVocabulary = errors.New("corebpe: invalid vocabulary")

	// ErrInvalidPattern is returned by New when the pre-token pattern or the
	// special-token alternation fails to compile.
	ErrInvalidPattern = errors.New("corebpe: invalid pattern")

	// ErrTokenNotFound is returned by EncodeSingleToken and
	// DecodeSingleTokenBytes when neither the ordinary nor the special
	// vocabulary contains the requested key.
	ErrTokenNotFound = errors.New("corebpe: token not found")

	// ErrUnknownPreset is returned by NewFromPreset when given a name not
	// present in Presets.
	ErrUnknownPreset = errors.New("corebpe: unknown preset")
)
