package extraction

import (
	"regexp"
	"sort"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-zA-Z가-힣][a-zA-Z가-힣0-9\-]{2,}`)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "were": {},
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {}, "has": {},
	"had": {}, "you": {}, "your": {}, "they": {}, "them": {}, "their": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "will": {}, "would": {},
	"can": {}, "could": {}, "should": {}, "about": {}, "into": {}, "over": {},
	"more": {}, "most": {}, "some": {}, "such": {}, "than": {}, "then": {},
	"there": {}, "these": {}, "those": {}, "not": {}, "but": {}, "all": {},
	"also": {}, "been": {}, "its": {}, "it's": {}, "our": {}, "out": {},
	"who": {}, "how": {}, "why": {}, "his": {}, "her": {}, "she": {},
	"him": {}, "one": {}, "two": {}, "use": {}, "used": {}, "using": {},
	"just": {}, "like": {}, "only": {}, "other": {}, "here": {}, "very": {},
	"any": {}, "each": {}, "may": {}, "after": {}, "before": {}, "while": {},
	"being": {}, "does": {}, "did": {}, "doing": {}, "because": {},
}

// Keywords returns the top-n keywords of text by frequency, most frequent
// first; ties break alphabetically so results are deterministic.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}

	counts := map[string]int{}
	for _, raw := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[raw]; skip {
			continue
		}
		counts[raw]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}
