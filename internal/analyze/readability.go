package analyze

import (
	"strings"
	"unicode"
)

// FleschKincaidGrade computes the standard grade-level score:
// 0.39*(words/sentences) + 11.8*(syllables/word) - 15.59. Longer sentences
// and heavier words raise the grade. The floor is 0.
func FleschKincaidGrade(text string) float64 {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	grade := 0.39*(float64(len(words))/float64(sentences)) +
		11.8*(float64(syllables)/float64(len(words))) - 15.59
	if grade < 0 {
		return 0
	}
	return grade
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	return n
}

// countSyllables estimates syllables as vowel groups, with the usual silent-e
// adjustment and a minimum of one.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	groups := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			groups++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && groups > 1 {
		groups--
	}
	if groups < 1 {
		groups = 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
