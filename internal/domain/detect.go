package domain

import (
	"regexp"
	"strings"
)

// LanguageEnglish is the fail-safe detection result: whenever the
// detection pass fails or its output cannot be parsed, processing
// proceeds as if the audio were English.
const LanguageEnglish = "english"

// Matches the line whisper prints while auto-detecting, e.g.
// "Detected language: French"
var detectedLanguagePattern = regexp.MustCompile(`Detected language:\s*(.+)`)

// ParseDetectedLanguage scans captured output lines in order for the
// recognizer's detection announcement and returns the trimmed,
// lowercased language name. The first matching line wins. When no line
// matches, it returns LanguageEnglish and false.
func ParseDetectedLanguage(lines []string) (string, bool) {
	for _, line := range lines {
		if m := detectedLanguagePattern.FindStringSubmatch(line); len(m) > 1 {
			return strings.ToLower(strings.TrimSpace(m[1])), true
		}
	}
	return LanguageEnglish, false
}
