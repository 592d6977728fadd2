package stringutil

import (
	"slices"
	"testing"
)

func TestSortedRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []rune
	}{
		{"ASCII word", "dog", []rune("dgo")},
		{"Repeated runes", "abab", []rune("aabb")},
		{"Chinese", "系工資", []rune("工系資")},
		{"Empty string", "", []rune{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedRunes(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SortedRunes(%q) = %q, want %q", tt.input, string(got), string(tt.want))
			}
		})
	}
}

func TestRuneFrequencies(t *testing.T) {
	got := RuneFrequencies("王小明明")
	want := map[rune]int{'王': 1, '小': 1, '明': 2}

	if len(got) != len(want) {
		t.Fatalf("RuneFrequencies() size = %d, want %d", len(got), len(want))
	}
	for r, n := range want {
		if got[r] != n {
			t.Errorf("RuneFrequencies()[%q] = %d, want %d", r, got[r], n)
		}
	}
}

func TestCutKeyword(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		wantRest string
		wantOK   bool
	}{
		{"English keyword", "unique hello", []string{"unique", "唯一"}, "hello", true},
		{"Chinese keyword", "唯一 資工系", []string{"unique", "唯一"}, "資工系", true},
		{"Case insensitive", "UNIQUE abc", []string{"unique"}, "abc", true},
		{"Keyword only", "help", []string{"help"}, "", true},
		{"Full-width space", "排列　a | b", []string{"排列"}, "a | b", true},
		{"Leading spaces", "   perm a|b", []string{"perm"}, "a|b", true},
		{"Prefix of longer word", "uniqueness abc", []string{"unique"}, "", false},
		{"No match", "hello world", []string{"unique"}, "", false},
		{"Empty text", "", []string{"help"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := CutKeyword(tt.text, tt.keywords...)
			if ok != tt.wantOK || rest != tt.wantRest {
				t.Errorf("CutKeyword(%q) = (%q, %v), want (%q, %v)", tt.text, rest, ok, tt.wantRest, tt.wantOK)
			}
		})
	}
}

func TestSplitPair(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantA  string
		wantB  string
		wantOK bool
	}{
		{"Simple", "dog | gOd", "dog ", " gOd", true},
		{"Only first separator", "a|b|c", "a", "b|c", true},
		{"Missing separator", "abc", "", "", false},
		{"Empty sides", "|", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := SplitPair(tt.text, "|")
			if a != tt.wantA || b != tt.wantB || ok != tt.wantOK {
				t.Errorf("SplitPair(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.text, a, b, ok, tt.wantA, tt.wantB, tt.wantOK)
			}
		})
	}
}
