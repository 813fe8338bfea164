package search

import (
	"fmt"
	"log"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"

	"github.com/linkai-dev/linkai/models"
)

// patentDoc is the bleve view of a record. Claims and inventors are joined
// so match queries see one field each.
type patentDoc struct {
	AppNum    string `json:"app_num"`
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	Claims    string `json:"claims"`
	Inventors string `json:"inventors"`
	Applicant string `json:"applicant"`
}

// Query is a field-filtered patent search. Empty fields are ignored; all
// present fields must match.
type Query struct {
	TechQ     string
	ProdQ     string
	Inventor  string
	Applicant string
	AppNum    string
	Page      int
	Limit     int
}

// Result is one page of matches.
type Result struct {
	Total   uint64                `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	Records []models.PatentRecord `json:"data"`
}

// RecordLookup resolves a normalized application number back to its record.
type RecordLookup interface {
	Get(appNo string) (models.PatentRecord, bool)
}

// Index is an in-process advanced search index over the patent corpus.
type Index struct {
	bleve  bleve.Index
	lookup RecordLookup
	logger *log.Logger
}

// New creates an empty mem-only index
func New(lookup RecordLookup, logger *log.Logger) (*Index, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("bleve index: %w", err)
	}
	return &Index{bleve: index, lookup: lookup, logger: logger}, nil
}

// Load (re)indexes the given records. Records without a usable application
// number are skipped.
func (ix *Index) Load(records []models.PatentRecord) error {
	batch := ix.bleve.NewBatch()
	count := 0
	for _, record := range records {
		appNo := models.NormalizeApplicationNumber(record.ApplicationNumber)
		if appNo == "" {
			continue
		}
		doc := patentDoc{
			AppNum:    appNo,
			Title:     strings.TrimSpace(record.Title.Ko + " " + record.Title.En),
			Abstract:  record.Abstract,
			Claims:    strings.Join(record.Claims, "\n"),
			Inventors: joinInventors(record.Inventors),
			Applicant: record.Applicant.Name,
		}
		if err := batch.Index(appNo, doc); err != nil {
			return fmt.Errorf("index %s: %w", appNo, err)
		}
		count++
	}
	if err := ix.bleve.Batch(batch); err != nil {
		return fmt.Errorf("bleve batch: %w", err)
	}
	ix.logger.Printf("search index loaded: %d records", count)
	return nil
}

// Search runs the filtered query with paging. Page numbers start at 1.
func (ix *Index) Search(q Query) (Result, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	var conjuncts []query.Query
	if q.TechQ != "" {
		conjuncts = append(conjuncts, fieldDisjunction(q.TechQ, "title", "abstract", "claims"))
	}
	if q.ProdQ != "" {
		conjuncts = append(conjuncts, fieldDisjunction(q.ProdQ, "title", "abstract"))
	}
	if q.Inventor != "" {
		conjuncts = append(conjuncts, fieldMatch(q.Inventor, "inventors"))
	}
	if q.Applicant != "" {
		conjuncts = append(conjuncts, fieldMatch(q.Applicant, "applicant"))
	}
	if q.AppNum != "" {
		conjuncts = append(conjuncts, fieldMatch(models.NormalizeApplicationNumber(q.AppNum), "app_num"))
	}

	var root query.Query
	switch len(conjuncts) {
	case 0:
		root = bleve.NewMatchAllQuery()
	case 1:
		root = conjuncts[0]
	default:
		root = bleve.NewConjunctionQuery(conjuncts...)
	}

	req := bleve.NewSearchRequestOptions(root, q.Limit, (q.Page-1)*q.Limit, false)
	res, err := ix.bleve.Search(req)
	if err != nil {
		return Result{}, fmt.Errorf("bleve search: %w", err)
	}

	records := make([]models.PatentRecord, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if record, ok := ix.lookup.Get(hit.ID); ok {
			records = append(records, record)
		}
	}
	return Result{Total: res.Total, Page: q.Page, Limit: q.Limit, Records: records}, nil
}

// Close releases the underlying index
func (ix *Index) Close() error {
	return ix.bleve.Close()
}

func fieldMatch(text, field string) query.Query {
	q := bleve.NewMatchQuery(text)
	q.SetField(field)
	return q
}

func fieldDisjunction(text string, fields ...string) query.Query {
	qs := make([]query.Query, 0, len(fields))
	for _, field := range fields {
		qs = append(qs, fieldMatch(text, field))
	}
	return bleve.NewDisjunctionQuery(qs...)
}

func joinInventors(inventors []models.Inventor) string {
	names := make([]string, 0, len(inventors))
	for _, inv := range inventors {
		if inv.Name != "" {
			names = append(names, inv.Name)
		}
	}
	return strings.Join(names, " ")
}
