package nlp

// levenshtein is the classic two-row edit distance over runes. Byte-level
// distance would overweight multi-byte Greek letters.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// similarity maps edit distance into [0,1]: identical strings score 1.
func similarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	longest := max(len(ar), len(br))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ar, br))/float64(longest)
}

// commonPrefixRatio is the shared leading run normalized by the shorter
// string, so a full prefix earns the whole bonus.
func commonPrefixRatio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	limit := min(len(ar), len(br))
	if limit == 0 {
		return 0
	}
	n := 0
	for n < limit && ar[n] == br[n] {
		n++
	}
	return float64(n) / float64(limit)
}
