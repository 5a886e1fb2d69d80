package compiler

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// closestMatch returns the best fuzzy match for target among candidates,
// or "" when nothing is close.
func closestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		// RankFindFold is unsorted; lowest distance wins, ties by name.
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance || (r.Distance == best.Distance && r.Target < best.Target) {
				best = r
			}
		}
		return best.Target
	}

	// Fall back to edit distance for typos such as "paragraph" -> "paragraf".
	best, bestDist := "", maxSuggestDistance(target)+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// maxSuggestDistance is the largest edit distance still worth suggesting.
func maxSuggestDistance(target string) int {
	return max(2, len(target)/3)
}

func didYouMean(target string, candidates []string) string {
	if m := closestMatch(target, candidates); m != "" && m != target {
		return fmt.Sprintf("did you mean '%s'?", m)
	}
	return ""
}

// suggestTag proposes a tag keyword for an unrecognized '#' lexeme.
func suggestTag(lexeme string) string {
	return didYouMean(lexeme, tagNames())
}

// suggestKeyword proposes an element keyword from allowed.
func suggestKeyword(lexeme string, allowed []string) string {
	if len(allowed) == 0 {
		allowed = keywordNames()
	}
	return didYouMean(lexeme, allowed)
}
