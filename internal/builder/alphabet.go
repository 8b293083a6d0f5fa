package builder

import "strings"

// nativeLetters lists the letters beyond a-z that belong to a language's
// basic alphabet.
var nativeLetters = map[string]string{
	"en": "",
	"nl": "",
	"de": "äöüß",
	"es": "áéíñóúü",
	"fr": "àâæçéèêëîïôœùûüÿ",
	"it": "àèéìíîòóùú",
	"pt": "áâãàçéêíóôõú",
}

// alphabetFilter returns a predicate accepting words written only in the
// basic alphabet of lang. Region suffixes are ignored ("pt-br" uses "pt").
// Languages without a known alphabet accept every word.
func alphabetFilter(lang string) func(string) bool {
	base, _, _ := strings.Cut(strings.ToLower(lang), "-")
	extra, ok := nativeLetters[base]
	if !ok {
		return func(string) bool { return true }
	}
	return func(word string) bool {
		for _, r := range word {
			if (r < 'a' || r > 'z') && !strings.ContainsRune(extra, r) {
				return false
			}
		}
		return word != ""
	}
}
