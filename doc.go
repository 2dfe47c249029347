// Package corebpe implements the core of a byte-pair-encoding tokenizer:
// deterministic text-to-token and token-to-text conversion over a supplied
// vocabulary, merge ranks, and pre-token pattern, in the shape used across
// the GPT family of models.
//
// A Tokenizer is built once from a vocabulary, an optional table of special
// tokens, and a pre-token pattern, and is thereafter immutable and safe for
// concurrent use. LoadVocab and LoadVocabFile read a local tiktoken-format
// vocabulary; fetching one over the network, language bindings, and
// CLI/configuration concerns live outside this package.
package corebpe
