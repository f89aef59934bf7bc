package dfa

import (
	"regexp"
	"strings"
)

// Tokenizer Splits words into alphabet symbols.
//
// The symbols are joined into one alternation in their declared order and matched left to right, so
// at any position the earliest declared symbol that matches wins, even when a later symbol would match
// a longer prefix. An alphabet declaring "a" before "ab" therefore never yields "ab". Characters that
// start no symbol are dropped without error.
type Tokenizer struct {
	re *regexp.Regexp
}

// NewTokenizer Compiles a tokenizer for the alphabet. Empty symbols are ignored.
func NewTokenizer(alphabet []string) *Tokenizer {
	alts := make([]string, 0, len(alphabet))
	for _, c := range alphabet {
		if c != "" {
			alts = append(alts, regexp.QuoteMeta(c))
		}
	}
	if len(alts) == 0 {
		return &Tokenizer{}
	}
	return &Tokenizer{re: regexp.MustCompile(strings.Join(alts, "|"))}
}

// Split Returns the symbols of word in order; never nil. A nil Tokenizer splits every word into no
// symbols.
func (t *Tokenizer) Split(word string) []string {
	if t == nil || t.re == nil || word == "" {
		return []string{}
	}
	symbols := t.re.FindAllString(word, -1)
	if symbols == nil {
		return []string{}
	}
	return symbols
}

// Tokenize Splits word over alphabet. See Tokenizer for the matching rules.
func Tokenize(alphabet []string, word string) []string {
	return NewTokenizer(alphabet).Split(word)
}
