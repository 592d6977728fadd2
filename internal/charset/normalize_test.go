package charset

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Trailing spaces", "dog          ", "dog"},
		{"Mixed case", "gOd", "god"},
		{"Tabs and newlines", "\t Abc\n", "abc"},
		{"Inner space kept", " a B ", "a b"},
		{"Non-ASCII upper", "ÉCOLE", "école"},
		{"Greek", "ΑΒΓ", "αβγ"},
		{"Only whitespace", "   ", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNFC(t *testing.T) {
	decomposed := "Café"
	precomposed := "café"

	if Normalize(decomposed) == precomposed {
		t.Fatalf("Normalize(%q) should keep the combining mark", decomposed)
	}
	if got := NormalizeNFC(decomposed); got != precomposed {
		t.Errorf("NormalizeNFC(%q) = %q, want %q", decomposed, got, precomposed)
	}
	if got := RuneCount(NormalizeNFC(decomposed)); got != 4 {
		t.Errorf("RuneCount(NormalizeNFC(%q)) = %d, want 4", decomposed, got)
	}
}
