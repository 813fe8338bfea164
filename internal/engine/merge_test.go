package engine

import (
	"reflect"
	"testing"

	"github.com/linkai-dev/linkai/models"
)

func TestMergeCandidatesLexicalFirst(t *testing.T) {
	got := MergeCandidates([]string{"a1", "a2"}, []string{"a2", "a3", "a4"}, 3)
	want := []models.Candidate{
		{Source: models.SourceLexical, AppNo: "a1"},
		{Source: models.SourceLexical, AppNo: "a2"},
		{Source: models.SourceVector, AppNo: "a3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge = %v, want %v", got, want)
	}
}

func TestMergeCandidatesDuplicateKeepsLexicalProvenance(t *testing.T) {
	got := MergeCandidates([]string{"a1"}, []string{"a1", "a2"}, 5)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Source != models.SourceLexical || got[0].AppNo != "a1" {
		t.Fatalf("got[0] = %v, want LEXICAL a1", got[0])
	}
	if got[1].Source != models.SourceVector || got[1].AppNo != "a2" {
		t.Fatalf("got[1] = %v, want VECTOR a2", got[1])
	}
}

func TestMergeCandidatesBounds(t *testing.T) {
	tests := []struct {
		name       string
		lexical    []string
		vector     []string
		targetSize int
		wantApps   []string
	}{
		{"lexical alone fills target", []string{"a1", "a2", "a3"}, nil, 2, []string{"a1", "a2"}},
		{"vector alone", nil, []string{"b1", "b2"}, 5, []string{"b1", "b2"}},
		{"both empty", nil, nil, 5, nil},
		{"zero target", []string{"a1"}, []string{"b1"}, 0, nil},
		{"negative target", []string{"a1"}, nil, -1, nil},
		{"dedupe within lexical", []string{"a1", "a1", "a2"}, nil, 5, []string{"a1", "a2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeCandidates(tt.lexical, tt.vector, tt.targetSize)
			if len(got) != len(tt.wantApps) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.wantApps), got)
			}
			for i, appNo := range tt.wantApps {
				if got[i].AppNo != appNo {
					t.Fatalf("got[%d] = %s, want %s", i, got[i].AppNo, appNo)
				}
			}
		})
	}
}

func TestMergeCandidatesNeverExceedsTarget(t *testing.T) {
	lexical := []string{"a1", "a2", "a3", "a4"}
	vector := []string{"b1", "b2", "b3", "b4"}
	for target := 0; target <= 10; target++ {
		got := MergeCandidates(lexical, vector, target)
		max := target
		if max > 8 {
			max = 8
		}
		if len(got) > target || len(got) != max {
			t.Fatalf("target %d: len = %d", target, len(got))
		}
	}
}
