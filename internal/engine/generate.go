package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/linkai-dev/linkai/provider"
)

const answerPromptFormat = `당신은 산학협력단이 보유한 특허 데이터베이스를 잘 이해하고 사용하는 전문 특허 분석가입니다.

RULES:
- CONTEXT만을 근거로 하고, 외부 지식이나 새로운 사실은 절대 추가하지 말 것.
- CONTEXT를 직접 읽는 것처럼 말하지 말고, 전문가 관점에서 자연스럽게 설명하세요.
- 주어진 PATENT의 내용을 기반으로 정확한 정보만을 제공하세요.
- 주어진 PATENT에 정확한 정보가 없다면 알 수 없다고 답하세요.
- 질문의 의도를 파악하여 조건에 맞는 내용만 명료하게 답하세요.
- 질문에 오타, 띄어쓰기 오류, 한영변환 오류 등으로 추정되는 것이 있다면 정제하여 답하세요.

[CONTEXT]
%s

[QUESTION]
%s

[ANSWER]
`

const (
	// TimeoutAnswer is returned (and persisted as the assistant turn) when
	// generation exceeds its deadline.
	TimeoutAnswer = "답변 생성 시간이 초과되었습니다. 질문을 좀 더 구체적으로 다시 시도해 주세요."
	// NoInformationAnswer is returned when retrieval produced no usable
	// candidates; the generator is never called in that case.
	NoInformationAnswer = "정보가 부족합니다."
)

// AnswerGenerator turns an assembled context plus the user query into the
// final answer. It never returns an error: timeout and upstream failure
// both produce a deterministic fallback message, which the caller persists
// like any other assistant turn.
type AnswerGenerator struct {
	provider provider.Provider
	logger   *log.Logger
}

// NewAnswerGenerator creates a generator backed by the given provider
func NewAnswerGenerator(p provider.Provider, logger *log.Logger) *AnswerGenerator {
	if logger == nil {
		logger = log.New(log.Writer(), "[GENERATE] ", log.LstdFlags)
	}
	return &AnswerGenerator{provider: p, logger: logger}
}

// Generate runs the model under the given timeout. ok reports whether the
// returned text is a real model answer; fallback messages come back with
// ok=false so callers can persist them without caching them.
func (g *AnswerGenerator) Generate(ctx context.Context, query, contextText string, timeout time.Duration) (answer string, ok bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	answer, err := g.provider.Complete(ctx, fmt.Sprintf(answerPromptFormat, contextText, query))
	if err != nil {
		if isTimeout(err) {
			g.logger.Printf("generation timed out after %s", timeout)
			return TimeoutAnswer, false
		}
		g.logger.Printf("generation failed: %v", err)
		return fmt.Sprintf("답변 생성에 실패했습니다: %v", err), false
	}
	return answer, true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
