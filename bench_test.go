package corebpe

import (
	"strings"
	"sync"
	"testing"
)

var (
	benchTokOnce sync.Once
	benchTok     *Tokenizer
	benchTokErr  error
)

func loadBenchTokenizer(b *testing.B) *Tokenizer {
	benchTokOnce.Do(func() {
		def := Presets[PresetCL100kBase]
		benchTok, benchTokErr = New(toyVocab(), def.SpecialTokens, def.PatStr)
	})
	if benchTokErr != nil {
		b.Fatalf("build tokenizer: %v", benchTokErr)
	}
	return benchTok
}

func BenchmarkEncodeOrdinary_Short(b *testing.B) {
	tok := loadBenchTokenizer(b)
	text := "abcd weather"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if toks := tok.EncodeOrdinary(text); len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkEncodeOrdinary_Medium(b *testing.B) {
	tok := loadBenchTokenizer(b)
	text := "abcabcabc forecast for the next five days with precipitation chances"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if toks := tok.EncodeOrdinary(text); len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkEncodeOrdinary_Large(b *testing.B) {
	tok := loadBenchTokenizer(b)
	base := "abc summarise the full itinerary including breakfast, museum visits, hikes, dinner plans. "
	text := strings.Repeat(base, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if toks := tok.EncodeOrdinary(text); len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkBytePairMerge(b *testing.B) {
	ranks := toyVocab()
	piece := []byte(strings.Repeat("abcabcabc ", 6))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if offsets := MergeBytePairs(piece, ranks); len(offsets) == 0 {
			b.Fatal("expected offsets")
		}
	}
}

func BenchmarkEncodeWithUnstable(b *testing.B) {
	tok := loadBenchTokenizer(b)
	text := "abcabcabc forecast for the next five"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if toks, _ := tok.EncodeWithUnstable(text, nil); len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}
