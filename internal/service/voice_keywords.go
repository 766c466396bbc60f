package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var stopWords = toSet(
	// articles, determiners, pronouns
	"a", "an", "the", "some", "any", "this", "that", "these", "those",
	"i", "me", "my", "we", "our", "you", "your", "it", "its",
	// request verbs
	"want", "need", "get", "give", "have", "like", "love", "crave", "craving",
	"order", "find", "search", "looking", "show", "bring", "make",
	"would", "could", "can", "please", "just", "really", "very", "wanna",
	"gonna", "gotta", "lemme", "let", "im", "i'm", "id", "i'd",
	// fillers
	"um", "uh", "hmm", "oh", "ah", "er", "basically", "actually",
	"maybe", "probably", "think", "guess", "something", "anything", "stuff",
	"for", "to", "from", "with", "without", "and", "or", "but", "of", "in", "on", "at",
	"tonight", "today", "now", "right", "later", "soon",
	"here", "there", "nearby", "near", "close", "around", "somewhere", "anywhere",
	// food words that are not searchable
	"food", "eat", "eating", "hungry", "meal", "dinner", "lunch", "breakfast",
	"snack", "delivery", "deliver", "delivered", "ordering",
	"be", "is", "are", "was", "were", "been", "being",
	"do", "does", "did", "doing", "done",
	"go", "going", "went", "gone",
	"know", "see", "feel", "look",
	"good", "great", "nice", "best", "better",
	"one", "two", "three", "first", "second",
	"also", "too", "so", "then", "than", "as", "if",
	"yes", "no", "ok", "okay", "sure", "alright",
	"hey", "hi", "hello", "thanks", "thank",
)

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// ExtractKeywords pulls the searchable words out of a spoken sentence:
// punctuation is dropped (apostrophes are kept for names like McDonald's),
// stop words and one letter words are removed and duplicates collapsed.
func ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_' || r == '\'' {
			return r
		}
		return ' '
	}, strings.ToLower(strings.TrimSpace(text)))

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		word = strings.Trim(word, "'")
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
