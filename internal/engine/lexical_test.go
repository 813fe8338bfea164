package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/linkai-dev/linkai/models"
)

func TestLexicalMatchWeightedSum(t *testing.T) {
	index := builtIndex(t,
		testRecord("100", "수소 연료 전지 엔진", "엔진 및 배터리 제어"),
		testRecord("200", "태양광 패널", "태양광 발전 효율"),
		testRecord("300", "배터리 팩", "배터리 냉각 구조"),
	)
	matcher := NewLexicalMatcher(index)

	keywords := []models.WeightedKeyword{
		{Term: "엔진", Weight: 0.8},
		{Term: "배터리", Weight: 0.5},
	}
	got := matcher.Match(keywords, 10)

	// record 100: 엔진 x2 * 0.8 + 배터리 x1 * 0.5 = 2.1
	// record 300: 배터리 x2 * 0.5 = 1.0
	// record 200 matches nothing and must be dropped, not ranked last
	want := []string{"100", "300"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match = %v, want %v", got, want)
	}
}

func TestLexicalMatchTieBreaksByAppNo(t *testing.T) {
	index := builtIndex(t,
		testRecord("222", "로봇 암", ""),
		testRecord("111", "로봇 핸드", ""),
	)
	matcher := NewLexicalMatcher(index)

	got := matcher.Match([]models.WeightedKeyword{{Term: "로봇", Weight: 1.0}}, 10)
	want := []string{"111", "222"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match = %v, want %v", got, want)
	}
}

func TestLexicalMatchLimit(t *testing.T) {
	index := builtIndex(t,
		testRecord("1", "센서", "센서 센서 센서"),
		testRecord("2", "센서", "센서 센서"),
		testRecord("3", "센서", "센서"),
	)
	matcher := NewLexicalMatcher(index)

	got := matcher.Match([]models.WeightedKeyword{{Term: "센서", Weight: 1.0}}, 2)
	want := []string{"1", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match = %v, want %v", got, want)
	}
}

func TestLexicalMatchEmptyInputs(t *testing.T) {
	index := builtIndex(t, testRecord("1", "센서", ""))
	matcher := NewLexicalMatcher(index)

	if got := matcher.Match(nil, 10); got != nil {
		t.Fatalf("nil keywords: got %v, want nil", got)
	}
	if got := matcher.Match([]models.WeightedKeyword{{Term: "센서", Weight: 1.0}}, 0); got != nil {
		t.Fatalf("zero limit: got %v, want nil", got)
	}
}

func TestLexicalMatchDoesNotPanicOnEmptyIndex(t *testing.T) {
	index := NewPatentIndex(&stubRecordSource{}, discardLogger())
	if err := index.Ensure(context.Background()); err != nil {
		t.Fatalf("build: %v", err)
	}
	matcher := NewLexicalMatcher(index)
	if got := matcher.Match([]models.WeightedKeyword{{Term: "센서", Weight: 1.0}}, 5); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
