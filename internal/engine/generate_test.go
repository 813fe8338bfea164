package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateReturnsModelAnswer(t *testing.T) {
	p := &stubProvider{completeFn: func(ctx context.Context, prompt string) (string, error) {
		return "출원번호 100 특허가 해당됩니다.", nil
	}}
	g := NewAnswerGenerator(p, discardLogger())

	got, ok := g.Generate(context.Background(), "수소 엔진 특허는?", "[CONTEXT 내용]", time.Second)
	if !ok || got != "출원번호 100 특허가 해당됩니다." {
		t.Fatalf("answer = %q, ok = %v", got, ok)
	}
	if !strings.Contains(p.lastPrompt, "[CONTEXT 내용]") || !strings.Contains(p.lastPrompt, "수소 엔진 특허는?") {
		t.Fatalf("prompt missing context or question:\n%s", p.lastPrompt)
	}
}

func TestGenerateTimeoutReturnsFixedMessage(t *testing.T) {
	p := &stubProvider{completeFn: func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	g := NewAnswerGenerator(p, discardLogger())

	got, ok := g.Generate(context.Background(), "질문", "컨텍스트", 10*time.Millisecond)
	if got != TimeoutAnswer {
		t.Fatalf("answer = %q, want timeout message", got)
	}
	if ok {
		t.Fatalf("timeout fallback must not report ok")
	}
}

func TestGenerateFailureReturnsReasonMessage(t *testing.T) {
	p := &stubProvider{completeFn: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("rate limited")
	}}
	g := NewAnswerGenerator(p, discardLogger())

	got, ok := g.Generate(context.Background(), "질문", "컨텍스트", time.Second)
	if !strings.Contains(got, "답변 생성에 실패했습니다") || !strings.Contains(got, "rate limited") {
		t.Fatalf("answer = %q", got)
	}
	if ok {
		t.Fatalf("failure fallback must not report ok")
	}
}
