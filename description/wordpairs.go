package description

import (
	"os"
	"regexp"
	"strings"
)

// WordPair is one line of a word-pair batch.
type WordPair struct {
	First  string
	Second string
}

func (p WordPair) String() string {
	return p.First + "," + p.Second
}

var pairRe = regexp.MustCompile(`[\p{L}\p{N}_]*,[\p{L}\p{N}_]*`)

// ParseWordPairs returns every word1,word2 occurrence in text, in order. Words are made of letters,
// digits and underscores and either of them may be empty; anything else separates pairs.
func ParseWordPairs(text string) []WordPair {
	matches := pairRe.FindAllString(text, -1)
	pairs := make([]WordPair, 0, len(matches))
	for _, m := range matches {
		first, second, _ := strings.Cut(m, ",")
		pairs = append(pairs, WordPair{First: first, Second: second})
	}
	return pairs
}

// ReadWordPairs parses the word pairs of the file at path.
func ReadWordPairs(path string) ([]WordPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWordPairs(string(data)), nil
}
