package engine

import (
	"sort"
	"strings"

	"github.com/linkai-dev/linkai/models"
)

// LexicalMatcher scores indexed documents against weighted terms by raw
// occurrence counts.
//
// Scoring policy: per document, score = Σ count(term) * weight(term) over
// all keywords, keywords visited in descending-weight order. Documents that
// match no keyword at all are dropped, not ranked last. An earlier
// iteration of this subsystem compared per-keyword count vectors
// lexicographically instead of summing; the weighted sum is the canonical
// policy here because it keeps a single comparable score per document.
type LexicalMatcher struct {
	index *PatentIndex
}

// NewLexicalMatcher creates a matcher over the given index
func NewLexicalMatcher(index *PatentIndex) *LexicalMatcher {
	return &LexicalMatcher{index: index}
}

// Match returns up to limit application numbers ranked by weighted term
// frequency. An empty keyword list matches nothing, never everything.
func (m *LexicalMatcher) Match(keywords []models.WeightedKeyword, limit int) []string {
	if len(keywords) == 0 || limit <= 0 {
		return nil
	}

	sorted := make([]models.WeightedKeyword, len(keywords))
	copy(sorted, keywords)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	type scored struct {
		appNo string
		score float64
	}
	var matches []scored

	for _, entry := range m.index.Entries() {
		var score float64
		for _, kw := range sorted {
			if count := strings.Count(entry.Text, kw.Term); count > 0 {
				score += float64(count) * kw.Weight
			}
		}
		if score == 0 {
			continue
		}
		matches = append(matches, scored{appNo: entry.AppNo, score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].appNo < matches[j].appNo
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.appNo
	}
	return result
}
