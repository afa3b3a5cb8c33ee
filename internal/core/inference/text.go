package inference

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// fold lower-cases s and strips combining marks so "Café" and "cafe" compare
// equal. The transformer chain is stateful, so one is built per call.
func fold(s string) string {
	lowered := apostrophes.Replace(strings.ToLower(s))
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// tokenize splits folded text into word tokens. Apostrophes inside a word
// are kept so contractions like "don't" survive as one token.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// sentences splits text on terminal punctuation followed by whitespace, and
// on line breaks. Fragments without any letter or digit are dropped.
func sentences(text string) []string {
	var out []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			out = append(out, s)
		}
	}

	rs := []rune(text)
	for i, r := range rs {
		if r == '\n' || r == '\r' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(rs) || unicode.IsSpace(rs[i+1]) {
				flush()
			}
		}
	}
	flush()

	return out
}

func isNumeric(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}
