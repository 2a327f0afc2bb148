package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"english", "en"},
		{"English", "en"},
		{"  french ", "fr"},
		{"mandarin", "zh"},
		{"castilian", "es"},
		{"haitian creole", "ht"},
		{"de", "de"},
		{"xx", "xx"}, // unknown 2-letter passes through
		{"klingon", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO2(tt.input); got != tt.want {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"english", "English"},
		{"german", "German"},
		{"zh", "Chinese"},
		{"nynorsk", "Norwegian"},
		{"haitian creole", "Haitian Creole"},
		{"klingon", "Klingon"}, // unknown, title-cased
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
