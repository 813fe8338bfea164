package engine

import "github.com/linkai-dev/linkai/models"

// MergeCandidates reconciles the two ranked lists into one bounded,
// deduplicated ranking. Lexical candidates are inserted first in their
// given order; remaining capacity is filled from the vector list, skipping
// application numbers already present. An application number in both lists
// keeps its LEXICAL position and provenance: lexical matches are treated as
// higher-precision, so a low-scoring lexical match deliberately outranks a
// high-scoring vector match.
func MergeCandidates(lexical, vector []string, targetSize int) []models.Candidate {
	if targetSize <= 0 {
		return nil
	}

	used := make(map[string]struct{}, targetSize)
	merged := make([]models.Candidate, 0, targetSize)

	for _, appNo := range lexical {
		if len(merged) >= targetSize {
			return merged
		}
		if _, ok := used[appNo]; ok {
			continue
		}
		used[appNo] = struct{}{}
		merged = append(merged, models.Candidate{Source: models.SourceLexical, AppNo: appNo})
	}

	for _, appNo := range vector {
		if len(merged) >= targetSize {
			break
		}
		if _, ok := used[appNo]; ok {
			continue
		}
		used[appNo] = struct{}{}
		merged = append(merged, models.Candidate{Source: models.SourceVector, AppNo: appNo})
	}

	return merged
}
