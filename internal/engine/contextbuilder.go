package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/linkai-dev/linkai/models"
)

const (
	contextBlockSeparator = "==========================================================================="
	// TruncationMarker terminates a context that hit the character budget.
	// The marker is appended after cutting, so the prompt consumer can see
	// the context is incomplete.
	TruncationMarker = "\n\n[컨텍스트가 길이 제한으로 잘렸습니다]"
)

// ContextBuilder renders merged candidates into the prompt context. Each
// candidate becomes a numbered PATENT block; candidates whose record is not
// in the index are skipped.
type ContextBuilder struct {
	index *PatentIndex
}

// NewContextBuilder creates a context builder over the given index
func NewContextBuilder(index *PatentIndex) *ContextBuilder {
	return &ContextBuilder{index: index}
}

// Build assembles the context string for the candidates, bounded by
// limitChars runes. When the rendered text exceeds the budget it is cut at
// a rune boundary and TruncationMarker is appended.
func (b *ContextBuilder) Build(candidates []models.Candidate, limitChars int) string {
	var sb strings.Builder
	for i, cand := range candidates {
		record, ok := b.index.Get(cand.AppNo)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s\n📄 PATENT %d\nAPPLICATION_NUMBER: %s\n%s\n\n%s\n",
			contextBlockSeparator, i+1, cand.AppNo, contextBlockSeparator, renderRecord(record)))
	}
	return truncateRunes(sb.String(), limitChars)
}

// renderRecord renders the prompt-facing view of a record: application
// number, titles, applicant, inventors, abstract and enumerated claims.
// Absent sections are omitted entirely.
func renderRecord(record models.PatentRecord) string {
	var sections []string

	if appNo := models.NormalizeApplicationNumber(record.ApplicationNumber); appNo != "" {
		sections = append(sections, "[출원번호]\n"+appNo)
	}
	if record.Title.Ko != "" || record.Title.En != "" {
		title := record.Title.Ko
		if record.Title.En != "" {
			if title != "" {
				title += "\n" + record.Title.En
			} else {
				title = record.Title.En
			}
		}
		sections = append(sections, "[발명의 명칭]\n"+title)
	}
	if record.Applicant.Name != "" {
		sections = append(sections, "[출원인]\n"+record.Applicant.Name)
	}
	if names := inventorNames(record.Inventors); names != "" {
		sections = append(sections, "[발명자]\n"+names)
	}
	if record.Abstract != "" {
		sections = append(sections, "[요약]\n"+record.Abstract)
	}
	if len(record.Claims) > 0 {
		var claims []string
		for i, claim := range record.Claims {
			claims = append(claims, fmt.Sprintf("청구항 %d: %s", i+1, claim))
		}
		sections = append(sections, "[청구항]\n"+strings.Join(claims, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// truncateRunes cuts s to at most limit runes and appends the truncation
// marker when anything was cut. A non-positive limit disables truncation.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + TruncationMarker
}
