package match

import "unicode/utf8"

// Ratio returns a similarity score in [0, 1] between two strings:
// 1 - editDistance/maxLen, using Damerau-Levenshtein so adjacent-character
// transpositions count as one edit. Identical strings score 1.0; two empty
// strings also score 1.0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	dist := DamerauLevenshteinDistance(a, b)
	if dist >= maxLen {
		return 0.0
	}
	return 1.0 - float64(dist)/float64(maxLen)
}

// BestRatio returns the highest Ratio between s and any of the candidates,
// along with the index of the winning candidate. Ties keep the earlier
// candidate so results are deterministic. Returns (-1, 0) for no candidates.
func BestRatio(s string, candidates []string) (int, float64) {
	bestIdx := -1
	bestScore := 0.0
	for i, c := range candidates {
		score := Ratio(s, c)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx, bestScore
}
