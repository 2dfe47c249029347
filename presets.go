package corebpe

// Well-known special-token literals shared across the GPT-family presets.
const (
	SpecialEndOfText   = "<|endoftext|>"
	SpecialFIMPrefix   = "<|fim_prefix|>"
	SpecialFIMMiddle   = "<|fim_middle|>"
	SpecialFIMSuffix   = "<|fim_suffix|>"
	SpecialEndOfPrompt = "<|endofprompt|>"
)

// Preset names, for callers selecting a pattern/special-token pairing by
// name rather than importing the pattern string directly.
const (
	PresetO200kBase  = "o200k_base"
	PresetCL100kBase = "cl100k_base"
	PresetP50kBase   = "p50k_base"
	PresetP50kEdit   = "p50k_edit"
	PresetR50kBase   = "r50k_base"
)

// PatternDefinition pairs a pre-token pattern with the special-token table
// that accompanies it in a given GPT-family encoding. It carries no
// mergeable-rank vocabulary: the vocabulary is loaded separately (see
// LoadVocab and LoadVocabFile), so a PatternDefinition only supplies what
// New's pattern and specialEncoder parameters need once a vocabulary has
// been loaded.
type PatternDefinition struct {
	Name          string
	PatStr        string
	SpecialTokens map[string]Rank
}

// Presets holds the pre-token pattern and special-token table for each
// well-known GPT-family encoding. The patterns are reproduced verbatim from
// the reference tiktoken encodings; Presets[name].SpecialTokens values are
// the canonical ranks reserved for those encodings' special tokens (they sit
// above the largest mergeable rank, consistent with tiktoken's allocation).
var Presets = map[string]PatternDefinition{
	PresetO200kBase: {
		Name: PresetO200kBase,
		PatStr: `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
			`|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
			`|\p{N}{1,3}` +
			`| ?[^\s\p{L}\p{N}]+[\r\n/]*` +
			`|\s*[\r\n]+` +
			`|\s+(?!\S)` +
			`|\s+`,
		SpecialTokens: map[string]Rank{
			SpecialEndOfText:   199999,
			SpecialEndOfPrompt: 200018,
		},
	},
	PresetCL100kBase: {
		Name:   PresetCL100kBase,
		PatStr: `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`,
		SpecialTokens: map[string]Rank{
			SpecialEndOfText:   100257,
			SpecialFIMPrefix:   100258,
			SpecialFIMMiddle:   100259,
			SpecialFIMSuffix:   100260,
			SpecialEndOfPrompt: 100276,
		},
	},
	PresetP50kBase: {
		Name:   PresetP50kBase,
		PatStr: `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`,
		SpecialTokens: map[string]Rank{
			SpecialEndOfText: 50256,
		},
	},
	PresetP50kEdit: {
		Name:   PresetP50kEdit,
		PatStr: `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`,
		SpecialTokens: map[string]Rank{
			SpecialEndOfText: 50256,
			SpecialFIMPrefix: 50281,
			SpecialFIMMiddle: 50282,
			SpecialFIMSuffix: 50283,
		},
	},
	PresetR50kBase: {
		Name:   PresetR50kBase,
		PatStr: `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`,
		SpecialTokens: map[string]Rank{
			SpecialEndOfText: 50256,
		},
	},
}

// NewFromPreset builds a Tokenizer for a well-known GPT-family encoding
// given its mergeable-rank vocabulary (loaded separately, e.g. via
// LoadVocabFile).
func NewFromPreset(name string, vocab map[string]Rank) (*Tokenizer, error) {
	def, ok := Presets[name]
	if !ok {
		return nil, ErrUnknownPreset
	}
	return New(vocab, def.SpecialTokens, def.PatStr)
}
