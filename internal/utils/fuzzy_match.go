package utils

import (
	"strings"
)

// ContainsAny reports whether text contains any of the keywords
func ContainsAny(text string, keywords []string) bool {
	_, ok := FirstContained(text, keywords)
	return ok
}

// FirstContained returns the first keyword, in list order, contained in text
func FirstContained(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// MatchedKeywords lists, in list order, the distinct non-empty keywords
// contained in text
func MatchedKeywords(text string, keywords []string) []string {
	matched := []string{}
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// SimilarityRatio returns the Ratcliff/Obershelp similarity of a and b in [0,1],
// computed as 2*M/T where M is the number of matched runes and T the total
// number of runes in both strings.
func SimilarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(ra, rb)) / float64(total)
}

// ClosestMatch returns the candidate most similar to word when its ratio
// reaches cutoff. On equal ratios the earlier candidate wins.
func ClosestMatch(word string, candidates []string, cutoff float64) (string, bool) {
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		score := SimilarityRatio(word, c)
		if score >= cutoff && score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore >= cutoff
}

// matchingRunes counts matched runes by recursively anchoring on the longest
// common block and matching what lies to its left and right.
func matchingRunes(a, b []rune) int {
	i, j, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:i], b[:j]) +
		matchingRunes(a[i+size:], b[j+size:])
}

// longestCommonBlock finds the longest common substring, preferring the
// earliest start in a and then in b.
func longestCommonBlock(a, b []rune) (int, int, int) {
	bestI, bestJ, bestSize := 0, 0, 0
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > bestSize {
					bestSize = curr[j]
					bestI = i - curr[j]
					bestJ = j - curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return bestI, bestJ, bestSize
}
