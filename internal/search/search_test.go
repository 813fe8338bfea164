package search

import (
	"io"
	"log"
	"testing"

	"github.com/linkai-dev/linkai/models"
)

type mapLookup map[string]models.PatentRecord

func (m mapLookup) Get(appNo string) (models.PatentRecord, bool) {
	record, ok := m[appNo]
	return record, ok
}

func testCorpus() []models.PatentRecord {
	return []models.PatentRecord{
		{
			ApplicationNumber: "10-2020-0000001",
			Title:             models.Title{Ko: "수소 연료 전지 엔진"},
			Abstract:          "수소를 연료로 사용하는 엔진",
			Claims:            []string{"수소 공급부를 포함하는 엔진"},
			Inventors:         []models.Inventor{{Name: "김철수"}},
			Applicant:         models.Applicant{Name: "에리카 산학협력단"},
		},
		{
			ApplicationNumber: "10-2021-0000002",
			Title:             models.Title{Ko: "배터리 냉각 장치"},
			Abstract:          "배터리 팩의 냉각 구조",
			Inventors:         []models.Inventor{{Name: "이영희"}},
			Applicant:         models.Applicant{Name: "에리카 산학협력단"},
		},
		{
			ApplicationNumber: "10-2022-0000003",
			Title:             models.Title{Ko: "태양광 패널"},
			Abstract:          "태양광 발전 효율 개선",
			Inventors:         []models.Inventor{{Name: "김철수"}},
			Applicant:         models.Applicant{Name: "한양대학교"},
		},
	}
}

func builtSearchIndex(t *testing.T) *Index {
	t.Helper()
	records := testCorpus()
	lookup := mapLookup{}
	for _, r := range records {
		lookup[models.NormalizeApplicationNumber(r.ApplicationNumber)] = r
	}
	ix, err := New(lookup, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	if err := ix.Load(records); err != nil {
		t.Fatalf("load: %v", err)
	}
	return ix
}

func appNums(records []models.PatentRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[models.NormalizeApplicationNumber(r.ApplicationNumber)] = true
	}
	return set
}

func TestSearchByTechKeyword(t *testing.T) {
	ix := builtSearchIndex(t)

	res, err := ix.Search(Query{TechQ: "수소"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("total = %d, want 1", res.Total)
	}
	if !appNums(res.Records)["1020200000001"] {
		t.Fatalf("records = %v", res.Records)
	}
}

func TestSearchByInventorAndApplicant(t *testing.T) {
	ix := builtSearchIndex(t)

	res, err := ix.Search(Query{Inventor: "김철수"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("inventor total = %d, want 2", res.Total)
	}

	// conjunctive filters narrow the result
	res, err = ix.Search(Query{Inventor: "김철수", Applicant: "한양대학교"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 1 || !appNums(res.Records)["1020220000003"] {
		t.Fatalf("combined = %v (total %d)", res.Records, res.Total)
	}
}

func TestSearchByApplicationNumberNormalizes(t *testing.T) {
	ix := builtSearchIndex(t)

	res, err := ix.Search(Query{AppNum: "10-2021-0000002"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 1 || !appNums(res.Records)["1020210000002"] {
		t.Fatalf("records = %v (total %d)", res.Records, res.Total)
	}
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	ix := builtSearchIndex(t)

	res, err := ix.Search(Query{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
}

func TestSearchPaging(t *testing.T) {
	ix := builtSearchIndex(t)

	page1, err := ix.Search(Query{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := ix.Search(Query{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page1.Records) != 2 || len(page2.Records) != 1 {
		t.Fatalf("page sizes = %d, %d", len(page1.Records), len(page2.Records))
	}
	if page1.Total != 3 || page2.Total != 3 {
		t.Fatalf("totals = %d, %d", page1.Total, page2.Total)
	}
	seen := appNums(append(page1.Records, page2.Records...))
	if len(seen) != 3 {
		t.Fatalf("pages overlap: %v", seen)
	}
}

func TestSearchNoMatches(t *testing.T) {
	ix := builtSearchIndex(t)

	res, err := ix.Search(Query{TechQ: "양자컴퓨터"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 0 || len(res.Records) != 0 {
		t.Fatalf("res = %+v", res)
	}
}
