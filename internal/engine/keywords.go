package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/provider"
)

const keywordPromptFormat = `다음 문장에서 특허 검색에 **직접 사용되는 검색 조건 키워드만** 추출하세요.

규칙:
- 특허 DB에서 검색 필드(ex 출원인/발명자/기술명 등)로 바로 사용할 수 있는 단어만 포함
- 질문에 나열된 모든 인물과 기술 키워드를 하나도 빠뜨리지 말고 각각 독립적인 행으로 추출할 것.
- '책임연구자', '교수', '박사' 등 인물을 수식하는 역할어나 질문 결과를 설명하기 위한 단어(ex 개수, 이름, 무엇, 몇 개 등)는 절대 포함하지 말 것
- 출원인·발명자 이름·출원번호가 존재할 경우 최우선
- 질문에 오타, 띄어쓰기 오류, 한영변환 오류 등으로 추정되는 것이 있다면 정제하여 답하세요.
- 문장에 실제 등장한 단어나 숫자만 사용
- 조사/어미 제거
- 가중치는 0~1 (0.1 단위)
- 형식: 단어:가중치
- 줄바꿈으로 구분
- 설명 없이 출력

문장:
%s`

// KeywordExtractor converts a free-text query into weighted search terms
// via the language model. Any upstream failure degrades to an empty list,
// which downstream components treat as "no lexical restriction".
type KeywordExtractor struct {
	provider provider.Provider
	logger   *log.Logger
}

// NewKeywordExtractor creates a keyword extractor backed by the given provider
func NewKeywordExtractor(p provider.Provider, logger *log.Logger) *KeywordExtractor {
	if logger == nil {
		logger = log.New(log.Writer(), "[KEYWORDS] ", log.LstdFlags)
	}
	return &KeywordExtractor{provider: p, logger: logger}
}

// Extract asks the model for term:weight lines and parses them. Malformed
// lines are dropped silently; the model's output order is not guaranteed to
// be stable, so callers sort by weight before scoring.
func (e *KeywordExtractor) Extract(ctx context.Context, query string) []models.WeightedKeyword {
	raw, err := e.provider.Complete(ctx, fmt.Sprintf(keywordPromptFormat, query))
	if err != nil {
		e.logger.Printf("keyword extraction failed: %v", err)
		return nil
	}
	return parseWeightedKeywords(raw)
}

// parseWeightedKeywords keeps only lines with exactly one colon and a
// parseable float weight.
func parseWeightedKeywords(raw string) []models.WeightedKeyword {
	var keywords []models.WeightedKeyword
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Count(line, ":") != 1 {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		term := strings.TrimSpace(parts[0])
		if term == "" {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		keywords = append(keywords, models.WeightedKeyword{Term: term, Weight: weight})
	}
	return keywords
}
