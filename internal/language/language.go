package language

import (
	"strings"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Names whisper reports during detection
}

var languages = []entry{
	{"en", "English", []string{"english"}},
	{"zh", "Chinese", []string{"chinese", "mandarin"}},
	{"de", "German", []string{"german"}},
	{"es", "Spanish", []string{"spanish", "castilian"}},
	{"ru", "Russian", []string{"russian"}},
	{"ko", "Korean", []string{"korean"}},
	{"fr", "French", []string{"french"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"tr", "Turkish", []string{"turkish"}},
	{"pl", "Polish", []string{"polish"}},
	{"ca", "Catalan", []string{"catalan", "valencian"}},
	{"nl", "Dutch", []string{"dutch", "flemish"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"sv", "Swedish", []string{"swedish"}},
	{"it", "Italian", []string{"italian"}},
	{"id", "Indonesian", []string{"indonesian"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"fi", "Finnish", []string{"finnish"}},
	{"vi", "Vietnamese", []string{"vietnamese"}},
	{"he", "Hebrew", []string{"hebrew"}},
	{"uk", "Ukrainian", []string{"ukrainian"}},
	{"el", "Greek", []string{"greek"}},
	{"ms", "Malay", []string{"malay"}},
	{"cs", "Czech", []string{"czech"}},
	{"ro", "Romanian", []string{"romanian", "moldavian"}},
	{"da", "Danish", []string{"danish"}},
	{"hu", "Hungarian", []string{"hungarian"}},
	{"ta", "Tamil", []string{"tamil"}},
	{"no", "Norwegian", []string{"norwegian", "nynorsk"}},
	{"th", "Thai", []string{"thai"}},
	{"ur", "Urdu", []string{"urdu"}},
	{"hr", "Croatian", []string{"croatian"}},
	{"bg", "Bulgarian", []string{"bulgarian"}},
	{"lt", "Lithuanian", []string{"lithuanian"}},
	{"la", "Latin", []string{"latin"}},
	{"mi", "Maori", []string{"maori"}},
	{"ml", "Malayalam", []string{"malayalam"}},
	{"cy", "Welsh", []string{"welsh"}},
	{"sk", "Slovak", []string{"slovak"}},
	{"te", "Telugu", []string{"telugu"}},
	{"fa", "Persian", []string{"persian"}},
	{"lv", "Latvian", []string{"latvian"}},
	{"bn", "Bengali", []string{"bengali"}},
	{"sr", "Serbian", []string{"serbian"}},
	{"az", "Azerbaijani", []string{"azerbaijani"}},
	{"sl", "Slovenian", []string{"slovenian"}},
	{"kn", "Kannada", []string{"kannada"}},
	{"et", "Estonian", []string{"estonian"}},
	{"mk", "Macedonian", []string{"macedonian"}},
	{"ht", "Haitian Creole", []string{"haitian creole", "haitian"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(token string) *entry {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	if e, ok := byWord[token]; ok {
		return e
	}
	if e, ok := byCode2[token]; ok {
		return e
	}
	return nil
}

// ToISO2 converts a detected language name or code to ISO 639-1.
// Returns empty string for unrecognized input. A 2-letter token passes
// through even when unknown.
func ToISO2(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return ""
	}
	if e := lookup(token); e != nil {
		return e.code2
	}
	if len(token) == 2 {
		return token
	}
	return ""
}

var titleCaser = cases.Title(textlang.Und)

// DisplayName returns a human-readable name for a detected language
// token. Unrecognized tokens are title-cased as-is so the output still
// reads reasonably.
func DisplayName(token string) string {
	if strings.TrimSpace(token) == "" {
		return "Unknown"
	}
	if e := lookup(token); e != nil {
		return e.display
	}
	return titleCaser.String(strings.TrimSpace(token))
}
