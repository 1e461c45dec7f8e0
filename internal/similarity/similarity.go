// Package similarity scores how alike two company names are, using
// normalized Levenshtein distance. Comparison is case-insensitive.
package similarity

import (
	"strings"
	"unicode/utf8"
)

// Score returns a similarity in [0,1]: 1 for identical strings (ignoring
// case), 0 when every character differs. Defined as
// (maxLen - editDistance) / maxLen, where maxLen counts runes of the
// longer string so multibyte names normalize the same as ASCII ones.
func Score(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	if maxLen == 0 {
		return 1.0
	}

	dist := Levenshtein(strings.ToLower(a), strings.ToLower(b))
	return float64(maxLen-dist) / float64(maxLen)
}

// Levenshtein computes the edit distance between two strings with the
// standard (m+1)x(n+1) dynamic-programming matrix, unit cost for
// insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	m := len(ra)
	n := len(rb)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	matrix := make([][]int, m+1)
	for i := 0; i <= m; i++ {
		matrix[i] = make([]int, n+1)
		matrix[i][0] = i
	}
	for j := 0; j <= n; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = min3(
				matrix[i-1][j-1]+1, // substitution
				matrix[i][j-1]+1,   // insertion
				matrix[i-1][j]+1,   // deletion
			)
		}
	}

	return matrix[m][n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
