package corebpe

import "testing"

func TestEncodeWithUnstableTrailingSpecialHasNoCompletions(t *testing.T) {
	tok := toyTokenizer(t)
	stable, completions := tok.EncodeWithUnstable("hi <|end|>", map[string]struct{}{"<|end|>": {}})
	if len(completions) != 0 {
		t.Fatalf("expected no completions after a trailing special token, got %v", completions)
	}
	want := tok.EncodeOrdinary("hi ")
	want = append(want, 1000)
	if len(stable) != len(want) {
		t.Fatalf("stable = %v, want %v", stable, want)
	}
}

func TestEncodeWithUnstableIncludesACompletionStartingWithTail(t *testing.T) {
	tok := toyTokenizer(t)
	// "ab" is a single vocabulary entry (rank 256); encoding "a" alone leaves
	// the single byte unstable since "ab"/"abc" could still complete it.
	stable, completions := tok.EncodeWithUnstable("a", nil)
	if len(stable) != 0 {
		t.Fatalf("expected the single unstable byte to be held back, got stable=%v", stable)
	}
	found := false
	for _, c := range completions {
		if len(c) == 1 && c[0] == 256 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a completion containing token 256 (\"ab\"), got %v", completions)
	}
}

func TestEncodeWithUnstablePropertyAgainstExtension(t *testing.T) {
	tok := toyTokenizer(t)
	s := "a"
	stable, completions := tok.EncodeWithUnstable(s, nil)

	extended := tok.EncodeOrdinary(s + "b")
	if len(extended) < len(stable) {
		t.Fatalf("extended encoding shorter than stable prefix")
	}
	for i, want := range stable {
		if extended[i] != want {
			t.Fatalf("stable prefix mismatch at %d: %v vs %v", i, extended[:len(stable)], stable)
		}
	}

	suffix := extended[len(stable):]
	matched := false
	for _, c := range completions {
		if equalRanks(c, suffix) {
			matched = true
			break
		}
	}
	if !matched {
		t.Fatalf("suffix %v not found among completions %v", suffix, completions)
	}
}

func equalRanks(a, b []Rank) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGrowWhitespaceExtendsOverAllSpaceTokens(t *testing.T) {
	tok := toyTokenizer(t)
	tokens := []Rank{byteRank(' '), byteRank(' '), byteRank('x')}
	_, grown := tok.growWhitespace(tokens, 2)
	if grown != 3 {
		t.Fatalf("growWhitespace extended to %d, want 3 (all-space run plus trailing token)", grown)
	}
}

func TestGrowWhitespaceNoopWhenLastPieceNotSpace(t *testing.T) {
	tok := toyTokenizer(t)
	tokens := []Rank{byteRank(' '), byteRank('x')}
	_, grown := tok.growWhitespace(tokens, 1)
	if grown != 1 {
		t.Fatalf("growWhitespace changed lastPieceLen to %d, want 1 (unchanged)", grown)
	}
}
