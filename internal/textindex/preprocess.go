package textindex

import (
	"strings"
	"unicode"
)

// punctuation mirrors the ASCII punctuation set stripped from documents
// before tokenization.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Preprocess normalizes question text into its canonical token
// representation: lowercase, punctuation stripped, tokenized, with only
// alphabetic non-stopword tokens kept, joined by single spaces.
//
// Pure and deterministic: the same input always yields the same output.
func Preprocess(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !strings.ContainsRune(punctuation, r) {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, tok := range tokens {
		if isAlphabetic(tok) && !IsStopword(tok) {
			kept = append(kept, tok)
		}
	}

	return strings.Join(kept, " ")
}

func isAlphabetic(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(token) > 0
}
